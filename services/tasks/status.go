package tasks

import (
	"encoding/json"

	"khidma/config"
	"khidma/models"

	"github.com/hibiken/asynq"
)

// TypeStatusNotify is the task type for request status notifications.
const TypeStatusNotify = "request:status"

// NewStatusNotifyTask builds the asynq task carrying one status transition.
func NewStatusNotifyTask(n models.StatusNotification) (*asynq.Task, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStatusNotify, b), nil
}

// NewClient returns an asynq client on the configured redis queue DB.
func NewClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
}
