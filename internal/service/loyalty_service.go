package service

import (
	"errors"
	"strings"
	"time"

	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/repository"

	"gorm.io/gorm"
)

// StampCardInput 印花卡计划参数
type StampCardInput struct {
	StoreID          uint         `json:"store_id" binding:"required"`
	PromotionName    string       `json:"promotion_name" binding:"required"`
	Tagline          string       `json:"tagline"`
	MinSpendPerStamp models.Money `json:"min_spend_per_stamp"`
	TotalStamps      int          `json:"total_stamps"`
	Reward           string       `json:"reward"`
	Terms            string       `json:"terms"`
	StartDate        *time.Time   `json:"start_date"`
	EndDate          *time.Time   `json:"end_date"`
}

// PointsConfigInput 积分计划参数
type PointsConfigInput struct {
	StoreID           uint         `json:"store_id" binding:"required"`
	PointsPerRM       models.Money `json:"points_per_rm"`
	RewardDescription string       `json:"reward_description"`
	Terms             string       `json:"terms"`
	MinSpend          models.Money `json:"min_spend"`
	StartDate         *time.Time   `json:"start_date"`
	EndDate           *time.Time   `json:"end_date"`
}

// LoyaltyService 会员计划管理服务
type LoyaltyService struct {
	programRepo repository.LoyaltyProgramRepository
	cardRepo    repository.LoyaltyCardRepository
}

// NewLoyaltyService 创建会员计划服务
func NewLoyaltyService(programRepo repository.LoyaltyProgramRepository, cardRepo repository.LoyaltyCardRepository) *LoyaltyService {
	return &LoyaltyService{
		programRepo: programRepo,
		cardRepo:    cardRepo,
	}
}

// ActiveProgram 门店当前生效的会员计划
func (s *LoyaltyService) ActiveProgram(storeID uint) (repository.Program, error) {
	return s.programRepo.GetActiveProgram(storeID)
}

// CreateStampCard 创建印花卡计划，新计划默认不生效
func (s *LoyaltyService) CreateStampCard(input StampCardInput) (*models.LoyaltyStampCard, error) {
	if input.StoreID == 0 || strings.TrimSpace(input.PromotionName) == "" {
		return nil, ErrProgramConfigInvalid
	}
	totalStamps := input.TotalStamps
	if totalStamps <= 0 {
		totalStamps = 10
	}
	card := &models.LoyaltyStampCard{
		StoreID:          input.StoreID,
		PromotionName:    strings.TrimSpace(input.PromotionName),
		Tagline:          strings.TrimSpace(input.Tagline),
		MinSpendPerStamp: input.MinSpendPerStamp,
		TotalStamps:      totalStamps,
		Reward:           strings.TrimSpace(input.Reward),
		Terms:            strings.TrimSpace(input.Terms),
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
	}
	if err := s.programRepo.CreateStampCard(card); err != nil {
		return nil, err
	}
	return card, nil
}

// CreatePointsConfig 创建积分计划，新计划默认不生效
func (s *LoyaltyService) CreatePointsConfig(input PointsConfigInput) (*models.LoyaltyPointsConfig, error) {
	if input.StoreID == 0 {
		return nil, ErrProgramConfigInvalid
	}
	if input.PointsPerRM.Decimal.IsNegative() || input.PointsPerRM.Decimal.IsZero() {
		return nil, ErrProgramConfigInvalid
	}
	config := &models.LoyaltyPointsConfig{
		StoreID:           input.StoreID,
		PointsPerRM:       input.PointsPerRM,
		RewardDescription: strings.TrimSpace(input.RewardDescription),
		Terms:             strings.TrimSpace(input.Terms),
		MinSpend:          input.MinSpend,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
	}
	if err := s.programRepo.CreatePointsConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ListStampCards 门店印花卡计划列表
func (s *LoyaltyService) ListStampCards(storeID uint) ([]models.LoyaltyStampCard, error) {
	return s.programRepo.ListStampCards(storeID)
}

// ListPointsConfigs 门店积分计划列表
func (s *LoyaltyService) ListPointsConfigs(storeID uint) ([]models.LoyaltyPointsConfig, error) {
	return s.programRepo.ListPointsConfigs(storeID)
}

// ActivateStampCard 启用印花卡计划。同一门店同时只有一个计划生效。
func (s *LoyaltyService) ActivateStampCard(storeID, id uint) error {
	err := s.programRepo.ActivateStampCard(storeID, id)
	if err != nil {
		return wrapProgramNotFound(err)
	}
	return nil
}

// ActivatePointsConfig 启用积分计划。同一门店同时只有一个计划生效。
func (s *LoyaltyService) ActivatePointsConfig(storeID, id uint) error {
	err := s.programRepo.ActivatePointsConfig(storeID, id)
	if err != nil {
		return wrapProgramNotFound(err)
	}
	return nil
}

// DeactivatePrograms 停用门店的全部会员计划，累计回到静默跳过状态
func (s *LoyaltyService) DeactivatePrograms(storeID uint) error {
	return s.programRepo.DeactivateAll(storeID)
}

// CustomerCard 查询顾客在门店的会员卡，未产生过累计时返回 nil
func (s *LoyaltyService) CustomerCard(storeID, customerID uint) (*models.LoyaltyCard, error) {
	return s.cardRepo.GetByStoreCustomer(storeID, customerID)
}

func wrapProgramNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProgramNotFound
	}
	return err
}
