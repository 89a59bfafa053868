package handlers

import (
	"context"
	"net/http"

	"khidma/middleware"
	"khidma/models"
	"khidma/services/scheduling"
	"khidma/services/tasks"
	"khidma/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RequestHandler exposes the allocation engine over HTTP.
type RequestHandler struct {
	Svc        scheduling.SchedulingService
	TaskClient *asynq.Client
	Cache      *redis.Client
	Logger     *zap.Logger
}

// NewRequestHandler constructs a RequestHandler.
func NewRequestHandler(svc scheduling.SchedulingService, taskClient *asynq.Client, cache *redis.Client, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{Svc: svc, TaskClient: taskClient, Cache: cache, Logger: logger}
}

// CreateRequest handles POST /api/requests: it allocates capacity for
// the authenticated customer and, on success, invalidates the cached
// availability of the service and enqueues the status notification.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input models.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", err.Error())
		return
	}
	customerID := middleware.AuthenticatedCustomerID(c)
	if customerID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing authenticated customer")
		return
	}

	req, err := h.Svc.Allocate(c.Request.Context(), customerID, input)
	if err != nil {
		abortSchedulingError(c, err)
		return
	}

	h.invalidateAvailabilityCache(c.Request.Context(), req.ServiceID)
	h.enqueueStatusNotification(req)

	utils.JSONData(c, http.StatusCreated, "request created", req)
}

// GetRequest handles GET /api/requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	req, err := h.Svc.GetRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortSchedulingError(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, "request", req)
}

// invalidateAvailabilityCache drops the cached unavailable-dates
// responses of one service, walking the keyspace with SCAN to avoid
// blocking redis. Sibling services of the same provider age out through
// the TTL instead.
func (h *RequestHandler) invalidateAvailabilityCache(ctx context.Context, serviceID string) {
	if h.Cache == nil {
		return
	}
	pattern := utils.UnavailableDatesCachePrefix + serviceID + ":*"
	iter := h.Cache.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		h.Logger.Warn("failed to scan availability cache", zap.String("serviceId", serviceID), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := h.Cache.Del(ctx, keys...).Err(); err != nil {
		h.Logger.Warn("failed to invalidate availability cache", zap.String("serviceId", serviceID), zap.Error(err))
	}
}

func (h *RequestHandler) enqueueStatusNotification(req *models.Request) {
	if h.TaskClient == nil {
		return
	}
	task, err := tasks.NewStatusNotifyTask(models.StatusNotification{
		RequestID:  req.ID,
		CustomerID: req.CustomerID,
		ProviderID: req.ProviderID,
		Status:     req.Status,
	})
	if err != nil {
		h.Logger.Warn("failed to build status task", zap.String("requestId", req.ID), zap.Error(err))
		return
	}
	if _, err := h.TaskClient.Enqueue(task); err != nil {
		h.Logger.Warn("failed to enqueue status task", zap.String("requestId", req.ID), zap.Error(err))
	}
}
