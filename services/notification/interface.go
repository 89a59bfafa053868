package notification

import (
	"context"

	"khidma/models"
	"khidma/utils"

	"go.uber.org/zap"
)

// Gateway delivers request status transitions to the parties involved.
// Actual transport (push, socket) lives outside this repository; the
// scheduling core only hands over the final request state.
type Gateway interface {
	NotifyStatusChange(ctx context.Context, n models.StatusNotification) error
}

// LogGateway is the default gateway: it records the transition and does
// nothing else.
type LogGateway struct{}

func (LogGateway) NotifyStatusChange(_ context.Context, n models.StatusNotification) error {
	utils.GetLogger().Info("request status change",
		zap.String("requestId", n.RequestID),
		zap.String("customerId", n.CustomerID),
		zap.String("providerId", n.ProviderID),
		zap.String("status", n.Status),
	)
	return nil
}
