package handlers

import (
	"net/http"

	"khidma/services/scheduling"
	"khidma/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderDayHandler exposes the provider-facing manual closure toggle.
type ProviderDayHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

// NewProviderDayHandler constructs a ProviderDayHandler.
func NewProviderDayHandler(svc scheduling.SchedulingService, logger *zap.Logger) *ProviderDayHandler {
	return &ProviderDayHandler{Svc: svc, Logger: logger}
}

// SetDayClosed handles PUT /api/providers/:providerId/days/closed with a
// body naming the day and the desired flag. The day row is created on
// first touch, like every other provider day.
func (h *ProviderDayHandler) SetDayClosed(c *gin.Context) {
	var input struct {
		Date   string `json:"date" binding:"required"` // DD/MM/YYYY
		Closed *bool  `json:"closed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", err.Error())
		return
	}

	providerID := c.Param("providerId")
	day, err := h.Svc.SetProviderDayClosed(c.Request.Context(), providerID, input.Date, *input.Closed)
	if err != nil {
		abortSchedulingError(c, err)
		return
	}

	h.Logger.Info("provider day closure updated",
		zap.String("providerId", providerID),
		zap.String("date", input.Date),
		zap.Bool("closed", *input.Closed),
	)
	utils.JSONData(c, http.StatusOK, "provider day updated", day)
}
