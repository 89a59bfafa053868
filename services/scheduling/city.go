package scheduling

import (
	"strings"

	"khidma/models"
)

// Supported cities, in canonical capitalized-first-letter form.
const (
	CityRiyadh models.CityCode = "Riyadh"
	CityJeddah models.CityCode = "Jeddah"
	CityMecca  models.CityCode = "Mecca"
	CityMedina models.CityCode = "Medina"
	CityDammam models.CityCode = "Dammam"
	CityKhobar models.CityCode = "Khobar"
	CityTaif   models.CityCode = "Taif"
	CityAbha   models.CityCode = "Abha"
)

// SupportedCities is the closed set of cities the marketplace operates in.
var SupportedCities = []models.CityCode{
	CityRiyadh,
	CityJeddah,
	CityMecca,
	CityMedina,
	CityDammam,
	CityKhobar,
	CityTaif,
	CityAbha,
}

// NormalizeCity matches input case-insensitively against the supported
// city set and returns the canonical code.
func NormalizeCity(input string) (models.CityCode, error) {
	trimmed := strings.TrimSpace(input)
	for _, c := range SupportedCities {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", ErrUnsupportedCity
}
