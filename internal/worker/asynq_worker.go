package worker

import (
	"context"
	"encoding/json"

	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/provider"
	"github.com/loopiify-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationSend, c.handleNotificationSend)
	mux.HandleFunc(queue.TaskBlastSend, c.handleBlastSend)
}

func (c *Consumer) handleNotificationSend(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_send_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_send_unmarshal_failed", "error", err)
		return err
	}
	if payload.JobID == 0 {
		logger.Debugw("worker_notification_send_skip_invalid_payload", "job_id", payload.JobID)
		return nil
	}
	if err := c.NotificationService.DeliverJob(ctx, payload.JobID); err != nil {
		logger.Warnw("worker_notification_send_failed",
			"job_id", payload.JobID,
			"event", payload.Event,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleBlastSend(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_blast_send_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BlastSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_blast_send_unmarshal_failed", "error", err)
		return err
	}
	if payload.JobID == 0 {
		logger.Debugw("worker_blast_send_skip_invalid_payload", "job_id", payload.JobID)
		return nil
	}
	if err := c.NotificationService.DeliverJob(ctx, payload.JobID); err != nil {
		logger.Warnw("worker_blast_send_failed", "job_id", payload.JobID, "error", err)
		return err
	}
	return nil
}
