package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"khidma/config"
	"khidma/services/scheduling"
	"khidma/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUnavailableDates handles
// GET /api/services/:serviceId/unavailable-dates?city=...
// Responses are cached briefly in redis; allocation invalidates the
// affected service's entries.
func (h *RequestHandler) GetUnavailableDates(c *gin.Context) {
	serviceID := c.Param("serviceId")
	city := c.Query("city")

	cacheKey := utils.UnavailableDatesCachePrefix + serviceID + ":" + city
	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				utils.JSONData(c, http.StatusOK, "unavailable dates", dates)
				return
			}
		}
	}

	dates, err := h.Svc.GetUnavailableDates(c.Request.Context(), serviceID, city)
	if err != nil {
		abortSchedulingError(c, err)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(scheduling.BookingDateFormat))
	}

	if h.Cache != nil {
		if payload, err := json.Marshal(formatted); err == nil {
			ttl := time.Duration(config.AppConfig.AvailabilityCacheS) * time.Second
			if err := h.Cache.Set(c.Request.Context(), cacheKey, payload, ttl).Err(); err != nil {
				h.Logger.Debug("failed to cache unavailable dates", zap.String("serviceId", serviceID), zap.Error(err))
			}
		}
	}

	utils.JSONData(c, http.StatusOK, "unavailable dates", formatted)
}
