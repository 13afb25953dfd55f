package worker

import (
	"context"
	"testing"
	"time"

	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/provider"
	"github.com/loopiify-next/internal/queue"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/service"
	"github.com/loopiify-next/internal/whatsapp"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type captureSender struct {
	sent []whatsapp.Message
	keys []string
}

func (s *captureSender) Send(_ context.Context, apiKey string, msg whatsapp.Message) error {
	s.keys = append(s.keys, apiKey)
	s.sent = append(s.sent, msg)
	return nil
}

func setupConsumerTest(t *testing.T) (*Consumer, *captureSender, *provider.Container) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Store{}, &models.Customer{}, &models.WhatsAppJob{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	sender := &captureSender{}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	c := &provider.Container{
		StoreRepo:    repository.NewStoreRepository(db),
		CustomerRepo: repository.NewCustomerRepository(db),
		JobRepo:      repository.NewWhatsAppJobRepository(db),
	}
	c.NotificationService = service.NewNotificationService(c.StoreRepo, c.CustomerRepo, c.JobRepo, queueClient, sender)
	return NewConsumer(c), sender, c
}

func TestHandleNotificationSendDeliversJob(t *testing.T) {
	consumer, sender, c := setupConsumerTest(t)

	store := &models.Store{Name: "Worker Store A", WebhookAPIKey: "wh-worker-1", OnSendAPIKey: "onsend-worker", WhatsAppInterval: 30}
	if err := c.StoreRepo.Create(store); err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	customer := &models.Customer{StoreID: store.ID, Phone: "60123477001", FirstName: "Mei"}
	if err := c.CustomerRepo.Create(customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	job := &models.WhatsAppJob{
		StoreID:      store.ID,
		CustomerID:   customer.ID,
		Status:       "scheduled",
		Message:      "Hello Mei",
		ScheduledFor: time.Now(),
	}
	if err := c.JobRepo.Create(job); err != nil {
		t.Fatalf("create job failed: %v", err)
	}

	task, err := queue.NewNotificationSendTask(queue.NotificationSendPayload{JobID: job.ID, Event: "followup"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleNotificationSend(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent want 1 got %d", len(sender.sent))
	}
	if sender.sent[0].PhoneNumber != customer.Phone {
		t.Fatalf("phone want %s got %s", customer.Phone, sender.sent[0].PhoneNumber)
	}
	if sender.keys[0] != store.OnSendAPIKey {
		t.Fatalf("api key want %s got %s", store.OnSendAPIKey, sender.keys[0])
	}

	updated, err := c.JobRepo.GetByID(job.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload job failed: %v", err)
	}
	if updated.Status != "sent" || updated.SentAt == nil {
		t.Fatalf("job status want sent got %s", updated.Status)
	}
}

func TestHandleNotificationSendInvalidPayload(t *testing.T) {
	consumer, sender, _ := setupConsumerTest(t)

	task, err := queue.NewNotificationSendTask(queue.NotificationSendPayload{JobID: 0})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	// 无效载荷直接吞掉，避免 asynq 无限重试
	if err := consumer.handleNotificationSend(context.Background(), task); err != nil {
		t.Fatalf("invalid payload should not error, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("no message expected, got %d", len(sender.sent))
	}
}
