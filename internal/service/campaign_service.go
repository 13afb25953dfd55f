package service

import (
	"math"
	"strings"
	"time"

	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/repository"
)

// probabilitySumTolerance 概率合计允许的浮点误差
const probabilitySumTolerance = 0.01

// CampaignPrizeInput 创建活动时的奖品参数
type CampaignPrizeInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" binding:"required"`
	Probability float64 `json:"probability"`
}

// CampaignCreateInput 创建抽奖活动参数
type CampaignCreateInput struct {
	StoreID       uint                 `json:"store_id" binding:"required"`
	Name          string               `json:"name" binding:"required"`
	Description   string               `json:"description"`
	MinSpend      models.Money         `json:"min_spend"`
	WinnerMessage string               `json:"winner_message"`
	StartDate     *time.Time           `json:"start_date"`
	EndDate       *time.Time           `json:"end_date"`
	Prizes        []CampaignPrizeInput `json:"prizes" binding:"required"`
}

// CampaignService 抽奖活动管理服务
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	entryRepo    repository.EntryRepository
}

// NewCampaignService 创建活动管理服务
func NewCampaignService(campaignRepo repository.CampaignRepository, entryRepo repository.EntryRepository) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		entryRepo:    entryRepo,
	}
}

// Create 创建抽奖活动。
// 要求至少一个奖品、奖品数量为正、概率合计等于 100（允许 0.01 误差）。
func (s *CampaignService) Create(input CampaignCreateInput) (*models.LuckyDrawCampaign, error) {
	if strings.TrimSpace(input.Name) == "" || input.StoreID == 0 {
		return nil, ErrPrizeConfigInvalid
	}
	if len(input.Prizes) == 0 {
		return nil, ErrPrizeConfigInvalid
	}

	total := 0.0
	prizes := make([]models.LuckyDrawPrize, 0, len(input.Prizes))
	for _, item := range input.Prizes {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 || item.Probability < 0 {
			return nil, ErrPrizeConfigInvalid
		}
		total += item.Probability
		prizes = append(prizes, models.LuckyDrawPrize{
			Name:              strings.TrimSpace(item.Name),
			Description:       strings.TrimSpace(item.Description),
			Quantity:          item.Quantity,
			RemainingQuantity: item.Quantity,
			Probability:       item.Probability,
		})
	}
	if math.Abs(total-100) > probabilitySumTolerance {
		return nil, ErrProbabilityInvalid
	}

	campaign := &models.LuckyDrawCampaign{
		StoreID:       input.StoreID,
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		MinSpend:      input.MinSpend,
		WinnerMessage: strings.TrimSpace(input.WinnerMessage),
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Prizes:        prizes,
	}
	if err := s.campaignRepo.CreateWithPrizes(campaign); err != nil {
		return nil, err
	}
	logger.Infow("lucky_draw_campaign_created",
		"campaign_id", campaign.ID,
		"store_id", campaign.StoreID,
		"prize_count", len(campaign.Prizes),
	)
	return campaign, nil
}

// List 活动列表
func (s *CampaignService) List(filter repository.CampaignListFilter) ([]models.LuckyDrawCampaign, int64, error) {
	return s.campaignRepo.List(filter)
}

// Get 活动详情（含奖品）
func (s *CampaignService) Get(id uint) (*models.LuckyDrawCampaign, error) {
	campaign, err := s.campaignRepo.GetWithPrizes(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

// End 结束活动。已结束的活动不可恢复。
func (s *CampaignService) End(id uint) error {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	if campaign.IsEnded {
		return ErrCampaignEnded
	}
	if err := s.campaignRepo.End(id); err != nil {
		return err
	}
	logger.Infow("lucky_draw_campaign_ended", "campaign_id", id)
	return nil
}

// ListEntries 活动抽奖记录
func (s *CampaignService) ListEntries(filter repository.EntryListFilter) ([]models.LuckyDrawEntry, int64, error) {
	return s.entryRepo.List(filter)
}
