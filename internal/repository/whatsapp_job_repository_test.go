package repository

import (
	"testing"
	"time"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupWhatsAppJobRepositoryTest(t *testing.T) (*GormWhatsAppJobRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.WhatsAppJob{}); err != nil {
		t.Fatalf("migrate whatsapp job failed: %v", err)
	}
	return NewWhatsAppJobRepository(db), db
}

func createJob(t *testing.T, repo *GormWhatsAppJobRepository, storeID uint, scheduledFor time.Time) *models.WhatsAppJob {
	t.Helper()
	job := &models.WhatsAppJob{
		StoreID:      storeID,
		CustomerID:   1,
		Message:      "您好，这是一条跟进消息",
		ScheduledFor: scheduledFor,
	}
	if err := repo.Create(job); err != nil {
		t.Fatalf("create job failed: %v", err)
	}
	return job
}

func TestListDueReturnsOnlyPendingPastJobs(t *testing.T) {
	repo, _ := setupWhatsAppJobRepositoryTest(t)
	now := time.Now()

	due := createJob(t, repo, 40, now.Add(-time.Minute))
	earlier := createJob(t, repo, 40, now.Add(-time.Hour))
	createJob(t, repo, 40, now.Add(time.Hour)) // 未到期

	scheduled := createJob(t, repo, 40, now.Add(-time.Minute))
	if err := repo.MarkScheduled(scheduled.ID); err != nil {
		t.Fatalf("mark scheduled failed: %v", err)
	}

	jobs, err := repo.ListDue(now, 0)
	if err != nil {
		t.Fatalf("list due failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("due count want 2 got %d", len(jobs))
	}
	if jobs[0].ID != earlier.ID || jobs[1].ID != due.ID {
		t.Fatalf("due jobs must be ordered by scheduled_for asc")
	}
}

func TestMarkScheduledIsSingleShot(t *testing.T) {
	repo, _ := setupWhatsAppJobRepositoryTest(t)
	job := createJob(t, repo, 41, time.Now())

	if err := repo.MarkScheduled(job.ID); err != nil {
		t.Fatalf("mark scheduled failed: %v", err)
	}
	if err := repo.MarkScheduled(job.ID); err == nil {
		t.Fatalf("expect error when job already left pending state")
	}
}

func TestMarkSentAndMarkFailed(t *testing.T) {
	repo, db := setupWhatsAppJobRepositoryTest(t)
	sentJob := createJob(t, repo, 42, time.Now())
	failedJob := createJob(t, repo, 42, time.Now())

	sentAt := time.Now()
	if err := repo.MarkSent(sentJob.ID, sentAt); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	if err := repo.MarkFailed(failedJob.ID, "onsend request timeout"); err != nil {
		t.Fatalf("mark failed failed: %v", err)
	}

	var got models.WhatsAppJob
	if err := db.First(&got, sentJob.ID).Error; err != nil {
		t.Fatalf("reload sent job failed: %v", err)
	}
	if got.Status != constants.JobStatusSent || got.SentAt == nil {
		t.Fatalf("sent job status want sent with sent_at, got status=%s", got.Status)
	}

	got = models.WhatsAppJob{}
	if err := db.First(&got, failedJob.ID).Error; err != nil {
		t.Fatalf("reload failed job failed: %v", err)
	}
	if got.Status != constants.JobStatusFailed || got.ErrorMessage != "onsend request timeout" {
		t.Fatalf("failed job status want failed with reason, got status=%s reason=%s", got.Status, got.ErrorMessage)
	}
}
