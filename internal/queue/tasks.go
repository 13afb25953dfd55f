package queue

import (
	"encoding/json"

	"github.com/loopiify-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationSend WhatsApp 通知发送任务
	TaskNotificationSend = constants.TaskNotificationSend
	// TaskBlastSend 群发消息发送任务
	TaskBlastSend = constants.TaskBlastSend
)

// NotificationSendPayload 通知发送任务载荷，任务只携带落库后的消息任务 ID
type NotificationSendPayload struct {
	JobID uint   `json:"job_id"`
	Event string `json:"event"`
}

// BlastSendPayload 群发发送任务载荷
type BlastSendPayload struct {
	JobID uint `json:"job_id"`
}

// NewNotificationSendTask 创建通知发送任务
func NewNotificationSendTask(payload NotificationSendPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationSend, body), nil
}

// NewBlastSendTask 创建群发发送任务
func NewBlastSendTask(payload BlastSendPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBlastSend, body), nil
}
