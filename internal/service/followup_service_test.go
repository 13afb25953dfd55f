package service

import (
	"context"
	"testing"
	"time"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/models"
)

func (env *serviceTestEnv) newFollowupService() *FollowupService {
	return NewFollowupService(env.flowRepo, env.jobRepo, env.notification)
}

func TestScheduleFlowsCreatesJobsPerStep(t *testing.T) {
	env := setupServiceTest(t)
	store := env.createStore(t, "followup-schedule")
	customer := env.createCustomer(t, store.ID, "60150000001", 100)
	svc := env.newFollowupService()

	flow, err := svc.CreateFlow(FlowInput{
		StoreID:  store.ID,
		Name:     "回访流程",
		IsActive: true,
		Steps: []FlowStepInput{
			{DelayHours: 0, Message: "Thanks {first_name}!"},
			{DelayHours: 48, Message: "How was everything, {first_name}?"},
		},
	})
	if err != nil {
		t.Fatalf("create flow failed: %v", err)
	}
	if len(flow.Steps) != 2 {
		t.Fatalf("steps want 2 got %d", len(flow.Steps))
	}

	// 停用的流程不参与排期
	if _, err := svc.CreateFlow(FlowInput{
		StoreID:  store.ID,
		Name:     "停用流程",
		IsActive: false,
		Steps:    []FlowStepInput{{DelayHours: 1, Message: "inactive"}},
	}); err != nil {
		t.Fatalf("create inactive flow failed: %v", err)
	}

	if err := svc.ScheduleFlows(store, customer); err != nil {
		t.Fatalf("schedule flows failed: %v", err)
	}

	var jobs []models.WhatsAppJob
	if err := env.db.Where("store_id = ?", store.ID).Order("scheduled_for ASC").Find(&jobs).Error; err != nil {
		t.Fatalf("load jobs failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs want 2 got %d", len(jobs))
	}
	if jobs[0].Message != "Thanks Mei!" {
		t.Fatalf("step message should render, got %q", jobs[0].Message)
	}
	gap := jobs[1].ScheduledFor.Sub(jobs[0].ScheduledFor)
	if gap < 47*time.Hour || gap > 49*time.Hour {
		t.Fatalf("second step should be 48h later, gap=%v", gap)
	}
	if jobs[0].FlowID == nil || *jobs[0].FlowID != flow.ID {
		t.Fatalf("job should reference its flow")
	}
}

func TestProcessDueJobsSendsAndMarks(t *testing.T) {
	env := setupServiceTest(t)
	store := env.createStore(t, "followup-due")
	customer := env.createCustomer(t, store.ID, "60151000001", 100)
	svc := env.newFollowupService()

	now := time.Now()
	dueJob := &models.WhatsAppJob{
		StoreID:      store.ID,
		CustomerID:   customer.ID,
		Status:       constants.JobStatusPending,
		Message:      "due message",
		ScheduledFor: now.Add(-time.Minute),
	}
	futureJob := &models.WhatsAppJob{
		StoreID:      store.ID,
		CustomerID:   customer.ID,
		Status:       constants.JobStatusPending,
		Message:      "future message",
		ScheduledFor: now.Add(time.Hour),
	}
	if err := env.jobRepo.Create(dueJob); err != nil {
		t.Fatalf("create due job failed: %v", err)
	}
	if err := env.jobRepo.Create(futureJob); err != nil {
		t.Fatalf("create future job failed: %v", err)
	}

	processed, err := svc.ProcessDueJobs(context.Background())
	if err != nil {
		t.Fatalf("process due jobs failed: %v", err)
	}
	if processed != 1 {
		t.Fatalf("processed want 1 got %d", processed)
	}

	// 队列未启用时同步发送
	if len(env.sender.sent) != 1 || env.sender.sent[0].Message != "due message" {
		t.Fatalf("due job should be sent, sent=%v", env.sender.sent)
	}

	got, err := env.jobRepo.GetByID(dueJob.ID)
	if err != nil || got == nil {
		t.Fatalf("reload due job failed: %v", err)
	}
	if got.Status != constants.JobStatusSent || got.SentAt == nil {
		t.Fatalf("due job status want sent got %s", got.Status)
	}

	got, _ = env.jobRepo.GetByID(futureJob.ID)
	if got.Status != constants.JobStatusPending {
		t.Fatalf("future job must stay pending, got %s", got.Status)
	}

	// 再次轮询不会重复发送
	processed, err = svc.ProcessDueJobs(context.Background())
	if err != nil {
		t.Fatalf("second poll failed: %v", err)
	}
	if processed != 0 || len(env.sender.sent) != 1 {
		t.Fatalf("second poll must not resend, processed=%d sent=%d", processed, len(env.sender.sent))
	}
}
