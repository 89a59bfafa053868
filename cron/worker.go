package cron

import (
	"context"
	"encoding/json"
	"log"

	"khidma/config"
	"khidma/models"
	"khidma/services/notification"
	"khidma/services/tasks"

	"github.com/hibiken/asynq"
)

// InitStatusWorker runs the async status-notification worker in the
// background. Delivery failures are retried by asynq's own policy.
func InitStatusWorker(gateway notification.Gateway) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeStatusNotify, handleStatusTask(gateway))

	go func() {
		log.Println("[StatusWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[StatusWorker] worker stopped: %v", err)
		}
	}()
}

func handleStatusTask(gateway notification.Gateway) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n models.StatusNotification
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			log.Printf("[StatusWorker] invalid payload: %v", err)
			return err
		}
		return gateway.NotifyStatusChange(ctx, n)
	}
}
