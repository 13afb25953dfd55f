package service

import (
	"strings"
	"time"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/queue"
	"github.com/loopiify-next/internal/repository"
)

// BlastInput 群发参数
type BlastInput struct {
	StoreID  uint          `json:"store_id" binding:"required"`
	Message  string        `json:"message" binding:"required"`
	MinSpend *models.Money `json:"min_spend"` // 可选，只发给累计消费达标的顾客
}

// BlastResult 群发排期结果
type BlastResult struct {
	Recipients      int `json:"recipients"`
	IntervalSeconds int `json:"interval_seconds"`
}

// BlastService 群发服务。
// 按门店配置的发送间隔把消息错峰排期，避免触发 WhatsApp 风控。
type BlastService struct {
	storeRepo    repository.StoreRepository
	customerRepo repository.CustomerRepository
	jobRepo      repository.WhatsAppJobRepository
	queueClient  *queue.Client
}

// NewBlastService 创建群发服务
func NewBlastService(
	storeRepo repository.StoreRepository,
	customerRepo repository.CustomerRepository,
	jobRepo repository.WhatsAppJobRepository,
	queueClient *queue.Client,
) *BlastService {
	return &BlastService{
		storeRepo:    storeRepo,
		customerRepo: customerRepo,
		jobRepo:      jobRepo,
		queueClient:  queueClient,
	}
}

// Send 创建一次群发。
// 每个接收人生成一条消息任务，第 i 个接收人延迟 i×interval 秒发送；
// 队列可用时直接投递延迟任务，否则由定时轮询按计划时间发送。
func (s *BlastService) Send(input BlastInput) (*BlastResult, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrBlastMessageEmpty
	}
	store, err := s.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	interval := blastInterval(store.WhatsAppInterval)

	minSpend := models.Money{}
	if input.MinSpend != nil {
		minSpend = *input.MinSpend
	}
	recipients, err := s.customerRepo.ListEligible(store.ID, minSpend)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrBlastNoRecipients
	}

	now := time.Now()
	jobs := make([]models.WhatsAppJob, 0, len(recipients))
	for i, customer := range recipients {
		jobs = append(jobs, models.WhatsAppJob{
			StoreID:      store.ID,
			CustomerID:   customer.ID,
			Status:       constants.JobStatusPending,
			Message:      RenderMessageTemplate(message, CustomerTemplateVars(&recipients[i])),
			ScheduledFor: now.Add(time.Duration(i) * time.Duration(interval) * time.Second),
		})
	}
	if err := s.jobRepo.CreateBatch(jobs); err != nil {
		return nil, err
	}

	if s.queueClient.Enabled() {
		for i := range jobs {
			if err := s.jobRepo.MarkScheduled(jobs[i].ID); err != nil {
				logger.Warnw("blast_job_mark_scheduled_failed", "job_id", jobs[i].ID, "error", err)
				continue
			}
			delay := time.Duration(i) * time.Duration(interval) * time.Second
			if err := s.queueClient.EnqueueBlastSend(queue.BlastSendPayload{JobID: jobs[i].ID}, delay); err != nil {
				logger.Warnw("blast_job_enqueue_failed", "job_id", jobs[i].ID, "error", err)
			}
		}
	}

	logger.Infow("blast_scheduled",
		"store_id", store.ID,
		"recipients", len(jobs),
		"interval_seconds", interval,
	)
	return &BlastResult{
		Recipients:      len(jobs),
		IntervalSeconds: interval,
	}, nil
}

// blastInterval 归一化发送间隔，只允许 30 或 60 秒
func blastInterval(seconds int) int {
	if seconds == constants.BlastIntervalLongSeconds {
		return constants.BlastIntervalLongSeconds
	}
	return constants.BlastIntervalShortSeconds
}
