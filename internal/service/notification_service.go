package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/queue"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/whatsapp"

	"github.com/hibiken/asynq"
)

// NotificationService WhatsApp 通知服务。
// 所有出站消息先落库为 WhatsAppJob 再投递，便于追溯与重试。
type NotificationService struct {
	storeRepo    repository.StoreRepository
	customerRepo repository.CustomerRepository
	jobRepo      repository.WhatsAppJobRepository
	queueClient  *queue.Client
	sender       whatsapp.Sender
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	storeRepo repository.StoreRepository,
	customerRepo repository.CustomerRepository,
	jobRepo repository.WhatsAppJobRepository,
	queueClient *queue.Client,
	sender whatsapp.Sender,
) *NotificationService {
	return &NotificationService{
		storeRepo:    storeRepo,
		customerRepo: customerRepo,
		jobRepo:      jobRepo,
		queueClient:  queueClient,
		sender:       sender,
	}
}

// NotifyCustomer 立即通知顾客。
// 队列可用时异步投递，否则同步发送。
func (s *NotificationService) NotifyCustomer(ctx context.Context, event string, storeID, customerID uint, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	job := &models.WhatsAppJob{
		StoreID:      storeID,
		CustomerID:   customerID,
		Status:       constants.JobStatusScheduled,
		Message:      message,
		ScheduledFor: time.Now(),
	}
	if err := s.jobRepo.Create(job); err != nil {
		return err
	}

	if !s.queueClient.Enabled() {
		return s.DeliverJob(ctx, job.ID)
	}
	return s.queueClient.EnqueueNotificationSend(queue.NotificationSendPayload{
		JobID: job.ID,
		Event: event,
	}, asynq.MaxRetry(3))
}

// EnqueueJob 将已落库的消息任务投递到发送队列
func (s *NotificationService) EnqueueJob(ctx context.Context, jobID uint, event string) error {
	if !s.queueClient.Enabled() {
		return s.DeliverJob(ctx, jobID)
	}
	return s.queueClient.EnqueueNotificationSend(queue.NotificationSendPayload{
		JobID: jobID,
		Event: event,
	}, asynq.MaxRetry(3))
}

// DeliverJob 实际发送一条消息任务并回写状态
func (s *NotificationService) DeliverJob(ctx context.Context, jobID uint) error {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFound
	}
	if job.Status == constants.JobStatusSent {
		return nil
	}

	store, err := s.storeRepo.GetByID(job.StoreID)
	if err != nil {
		return err
	}
	if store == nil {
		return s.failJob(job, ErrStoreNotFound)
	}
	customer, err := s.customerRepo.GetByID(job.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return s.failJob(job, ErrCustomerNotFound)
	}

	sendErr := s.sender.Send(ctx, store.OnSendAPIKey, whatsapp.Message{
		PhoneNumber: customer.Phone,
		Message:     job.Message,
		Type:        constants.MessageTypeText,
	})
	if sendErr != nil {
		return s.failJob(job, sendErr)
	}

	if err := s.jobRepo.MarkSent(job.ID, time.Now()); err != nil {
		return err
	}
	logger.Infow("whatsapp_job_sent",
		"job_id", job.ID,
		"store_id", job.StoreID,
		"customer_id", job.CustomerID,
	)
	return nil
}

func (s *NotificationService) failJob(job *models.WhatsAppJob, cause error) error {
	if err := s.jobRepo.MarkFailed(job.ID, cause.Error()); err != nil {
		logger.Errorw("whatsapp_job_mark_failed_error",
			"job_id", job.ID,
			"error", err,
		)
	}
	logger.Warnw("whatsapp_job_send_failed",
		"job_id", job.ID,
		"store_id", job.StoreID,
		"customer_id", job.CustomerID,
		"error", cause,
	)
	return fmt.Errorf("send whatsapp job %d: %w", job.ID, cause)
}
