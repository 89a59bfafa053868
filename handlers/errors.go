package handlers

import (
	"errors"
	"net/http"

	"khidma/services/scheduling"
	"khidma/utils"

	"github.com/gin-gonic/gin"
)

// schedulingErrorStatus maps the scheduling error taxonomy onto HTTP
// statuses: validation 400, not-found 404, business conflicts 409.
// Anything unrecognized is an infrastructure failure and surfaces as 500.
func schedulingErrorStatus(err error) int {
	switch {
	case errors.Is(err, scheduling.ErrInvalidDateFormat),
		errors.Is(err, scheduling.ErrInvalidCalendarDate),
		errors.Is(err, scheduling.ErrDateInPast),
		errors.Is(err, scheduling.ErrDateTooFarInFuture),
		errors.Is(err, scheduling.ErrUnsupportedCity):
		return http.StatusBadRequest
	case errors.Is(err, scheduling.ErrServiceNotFound),
		errors.Is(err, scheduling.ErrProviderNotFound),
		errors.Is(err, scheduling.ErrCustomerNotFound),
		errors.Is(err, scheduling.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, scheduling.ErrLocationNotServed),
		errors.Is(err, scheduling.ErrServiceClosedForDate),
		errors.Is(err, scheduling.ErrInsufficientWorkers):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortSchedulingError(c *gin.Context, err error) {
	status := schedulingErrorStatus(err)
	var schedErr *scheduling.Error
	if errors.As(err, &schedErr) {
		utils.JSONError(c, status, schedErr.Code, schedErr.Message)
		return
	}
	utils.JSONError(c, status, "internalError", err.Error())
}
