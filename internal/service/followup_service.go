package service

import (
	"context"
	"time"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/repository"
)

// followupBatchSize 单次轮询处理的到期任务上限
const followupBatchSize = 200

// FollowupService 跟进消息服务。
// 顾客完成订单后按启用中的流程排期后续消息，由定时轮询触发投递。
type FollowupService struct {
	flowRepo        repository.WhatsAppFlowRepository
	jobRepo         repository.WhatsAppJobRepository
	notificationSvc *NotificationService
}

// NewFollowupService 创建跟进服务
func NewFollowupService(
	flowRepo repository.WhatsAppFlowRepository,
	jobRepo repository.WhatsAppJobRepository,
	notificationSvc *NotificationService,
) *FollowupService {
	return &FollowupService{
		flowRepo:        flowRepo,
		jobRepo:         jobRepo,
		notificationSvc: notificationSvc,
	}
}

// ScheduleFlows 为顾客排期门店所有启用中的跟进流程。
// 每个步骤生成一条任务，计划时间为当前时间加步骤延迟。
func (s *FollowupService) ScheduleFlows(store *models.Store, customer *models.Customer) error {
	if store == nil || customer == nil {
		return nil
	}
	flows, err := s.flowRepo.ListActiveWithSteps(store.ID)
	if err != nil {
		return err
	}
	if len(flows) == 0 {
		return nil
	}

	now := time.Now()
	vars := CustomerTemplateVars(customer)
	var jobs []models.WhatsAppJob
	for i := range flows {
		flowID := flows[i].ID
		for _, step := range flows[i].Steps {
			jobs = append(jobs, models.WhatsAppJob{
				StoreID:      store.ID,
				CustomerID:   customer.ID,
				FlowID:       &flowID,
				Status:       constants.JobStatusPending,
				Message:      RenderMessageTemplate(step.Message, vars),
				ScheduledFor: now.Add(time.Duration(step.DelayHours) * time.Hour),
			})
		}
	}
	if len(jobs) == 0 {
		return nil
	}
	if err := s.jobRepo.CreateBatch(jobs); err != nil {
		return err
	}
	logger.Infow("followup_flows_scheduled",
		"store_id", store.ID,
		"customer_id", customer.ID,
		"job_count", len(jobs),
	)
	return nil
}

// FlowStepInput 流程步骤参数
type FlowStepInput struct {
	StepOrder  int    `json:"step_order"`
	DelayHours int    `json:"delay_hours"`
	Message    string `json:"message" binding:"required"`
}

// FlowInput 流程参数
type FlowInput struct {
	StoreID  uint            `json:"store_id" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	IsActive bool            `json:"is_active"`
	Steps    []FlowStepInput `json:"steps" binding:"required"`
}

// CreateFlow 创建跟进流程及步骤
func (s *FollowupService) CreateFlow(input FlowInput) (*models.WhatsAppFlow, error) {
	flow := &models.WhatsAppFlow{
		StoreID:  input.StoreID,
		Name:     input.Name,
		IsActive: input.IsActive,
		Steps:    buildFlowSteps(input.Steps),
	}
	if err := s.flowRepo.CreateWithSteps(flow); err != nil {
		return nil, err
	}
	logger.Infow("whatsapp_flow_created", "flow_id", flow.ID, "store_id", flow.StoreID)
	return flow, nil
}

// UpdateFlow 更新流程并整体替换步骤
func (s *FollowupService) UpdateFlow(id uint, input FlowInput) (*models.WhatsAppFlow, error) {
	flow, err := s.flowRepo.GetWithSteps(id)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return nil, ErrFlowNotFound
	}
	flow.Name = input.Name
	flow.IsActive = input.IsActive
	if err := s.flowRepo.Update(flow); err != nil {
		return nil, err
	}
	if err := s.flowRepo.ReplaceSteps(flow.ID, buildFlowSteps(input.Steps)); err != nil {
		return nil, err
	}
	return s.flowRepo.GetWithSteps(id)
}

// ListFlows 流程列表
func (s *FollowupService) ListFlows(filter repository.FlowListFilter) ([]models.WhatsAppFlow, int64, error) {
	return s.flowRepo.List(filter)
}

// GetFlow 流程详情
func (s *FollowupService) GetFlow(id uint) (*models.WhatsAppFlow, error) {
	flow, err := s.flowRepo.GetWithSteps(id)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return nil, ErrFlowNotFound
	}
	return flow, nil
}

// DeleteFlow 删除流程
func (s *FollowupService) DeleteFlow(id uint) error {
	return s.flowRepo.Delete(id)
}

// ListJobs 消息任务列表
func (s *FollowupService) ListJobs(filter repository.JobListFilter) ([]models.WhatsAppJob, int64, error) {
	return s.jobRepo.List(filter)
}

func buildFlowSteps(inputs []FlowStepInput) []models.WhatsAppFlowStep {
	steps := make([]models.WhatsAppFlowStep, 0, len(inputs))
	for i, item := range inputs {
		order := item.StepOrder
		if order <= 0 {
			order = i + 1
		}
		delay := item.DelayHours
		if delay < 0 {
			delay = 0
		}
		steps = append(steps, models.WhatsAppFlowStep{
			StepOrder:  order,
			DelayHours: delay,
			Message:    item.Message,
		})
	}
	return steps
}

// ProcessDueJobs 轮询到期任务并投递发送。
// 任务先标记为已入队，标记失败说明已被其他轮询周期处理过，跳过即可。
func (s *FollowupService) ProcessDueJobs(ctx context.Context) (int, error) {
	jobs, err := s.jobRepo.ListDue(time.Now(), followupBatchSize)
	if err != nil {
		return 0, err
	}
	processed := 0
	for i := range jobs {
		if err := s.jobRepo.MarkScheduled(jobs[i].ID); err != nil {
			continue
		}
		if err := s.notificationSvc.EnqueueJob(ctx, jobs[i].ID, constants.NotificationEventFollowup); err != nil {
			logger.Warnw("followup_job_enqueue_failed", "job_id", jobs[i].ID, "error", err)
			continue
		}
		processed++
	}
	if processed > 0 {
		logger.Infow("followup_due_jobs_processed", "count", processed)
	}
	return processed, nil
}
