package routes

import (
	"khidma/handlers"
	"khidma/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints of the scheduling core.
func RegisterRoutes(r *gin.Engine, requestHandler *handlers.RequestHandler, providerDayHandler *handlers.ProviderDayHandler) {
	api := r.Group("/api")

	// Availability is public: customers browse before authenticating.
	api.GET("/services/:serviceId/unavailable-dates", requestHandler.GetUnavailableDates)

	authed := api.Group("/")
	authed.Use(middleware.CustomerAuthMiddleware())
	{
		authed.POST("/requests", requestHandler.CreateRequest)
		authed.GET("/requests/:id", requestHandler.GetRequest)
		authed.PUT("/providers/:providerId/days/closed", providerDayHandler.SetDayClosed)
	}
}
