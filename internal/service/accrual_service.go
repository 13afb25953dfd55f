package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/whatsapp"
)

// OrderCustomerInput 回调里的顾客信息
type OrderCustomerInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
}

// CompletedOrderInput 一笔订单的累计入参
type CompletedOrderInput struct {
	OrderID   string
	Status    string
	Customer  OrderCustomerInput
	Total     models.Money
	Currency  string
	OrderDate time.Time
}

// AccrualResult 一次累计的结果
type AccrualResult struct {
	Customer     *models.Customer `json:"customer"`
	ProgramKind  string           `json:"program_kind"`
	StampsAdded  int              `json:"stamps_added"`
	TotalStamps  int              `json:"total_stamps,omitempty"`
	NewStamps    int              `json:"new_stamps,omitempty"`
	RewardEarned bool             `json:"reward_earned"`
	PointsAdded  int64            `json:"points_added"`
	NewPoints    int64            `json:"new_points,omitempty"`
}

// AccrualService 消费累计引擎。
// 接收已完成订单，维护顾客画像并按门店当前生效的会员计划累计印花或积分。
// 同一订单重复回调会重复累计，回调方需保证只推送一次。
type AccrualService struct {
	customerRepo    repository.CustomerRepository
	cardRepo        repository.LoyaltyCardRepository
	programRepo     repository.LoyaltyProgramRepository
	notificationSvc *NotificationService
}

// NewAccrualService 创建累计服务
func NewAccrualService(
	customerRepo repository.CustomerRepository,
	cardRepo repository.LoyaltyCardRepository,
	programRepo repository.LoyaltyProgramRepository,
	notificationSvc *NotificationService,
) *AccrualService {
	return &AccrualService{
		customerRepo:    customerRepo,
		cardRepo:        cardRepo,
		programRepo:     programRepo,
		notificationSvc: notificationSvc,
	}
}

// ProcessOrder 处理一笔订单。
// 只接受 completed 状态；门店未配置会员计划时静默跳过累计，只更新顾客画像。
func (s *AccrualService) ProcessOrder(ctx context.Context, store *models.Store, input CompletedOrderInput) (*AccrualResult, error) {
	if store == nil {
		return nil, ErrStoreNotFound
	}
	if strings.ToLower(strings.TrimSpace(input.Status)) != constants.OrderStatusCompleted {
		return nil, ErrOrderIgnored
	}
	phone := whatsapp.NormalizePhone(input.Customer.Phone)
	if phone == "" {
		return nil, ErrPhoneMissing
	}
	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	customer, err := s.upsertCustomer(store.ID, phone, input)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.ApplyOrderAggregates(customer.ID, input.Total, orderDate); err != nil {
		return nil, err
	}

	result := &AccrualResult{Customer: customer}

	program, err := s.programRepo.GetActiveProgram(store.ID)
	if err != nil {
		return nil, err
	}
	result.ProgramKind = program.Kind

	switch program.Kind {
	case constants.ProgramKindStamps:
		err = s.accrueStamp(ctx, store, customer, program.Stamps, input.Total, result)
	case constants.ProgramKindPoints:
		err = s.accruePoints(ctx, store, customer, program.Points, input.Total, result)
	default:
		// 未配置会员计划，静默跳过
	}
	if err != nil {
		return nil, err
	}

	logger.Infow("order_accrued",
		"store_id", store.ID,
		"customer_id", customer.ID,
		"order_id", input.OrderID,
		"program_kind", result.ProgramKind,
		"stamps_added", result.StampsAdded,
		"points_added", result.PointsAdded,
		"reward_earned", result.RewardEarned,
	)
	return result, nil
}

// upsertCustomer 按 (store, phone) 查找顾客，不存在则创建，存在则刷新画像字段
func (s *AccrualService) upsertCustomer(storeID uint, phone string, input CompletedOrderInput) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByStorePhone(storeID, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &models.Customer{
			StoreID:      storeID,
			Phone:        phone,
			FirstName:    strings.TrimSpace(input.Customer.FirstName),
			LastName:     strings.TrimSpace(input.Customer.LastName),
			Email:        strings.TrimSpace(input.Customer.Email),
			AddressLine1: strings.TrimSpace(input.Customer.AddressLine1),
			AddressLine2: strings.TrimSpace(input.Customer.AddressLine2),
			City:         strings.TrimSpace(input.Customer.City),
			State:        strings.TrimSpace(input.Customer.State),
			Postcode:     strings.TrimSpace(input.Customer.Postcode),
			Country:      strings.TrimSpace(input.Customer.Country),
		}
		if err := s.customerRepo.Create(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	changed := false
	assign := func(dst *string, src string) {
		src = strings.TrimSpace(src)
		if src != "" && *dst != src {
			*dst = src
			changed = true
		}
	}
	assign(&customer.FirstName, input.Customer.FirstName)
	assign(&customer.LastName, input.Customer.LastName)
	assign(&customer.Email, input.Customer.Email)
	assign(&customer.AddressLine1, input.Customer.AddressLine1)
	assign(&customer.AddressLine2, input.Customer.AddressLine2)
	assign(&customer.City, input.Customer.City)
	assign(&customer.State, input.Customer.State)
	assign(&customer.Postcode, input.Customer.Postcode)
	assign(&customer.Country, input.Customer.Country)
	if changed {
		if err := s.customerRepo.Update(customer); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

// accrueStamp 印花累计。单笔金额达到门槛加一枚，集满阈值即获得奖励。
func (s *AccrualService) accrueStamp(ctx context.Context, store *models.Store, customer *models.Customer, config *models.LoyaltyStampCard, amount models.Money, result *AccrualResult) error {
	if config == nil {
		return ErrProgramConfigInvalid
	}
	result.TotalStamps = config.TotalStamps
	if amount.Decimal.LessThan(config.MinSpendPerStamp.Decimal) {
		return nil
	}

	card, err := s.cardRepo.GetOrCreate(store.ID, customer.ID)
	if err != nil {
		return err
	}
	if err := s.cardRepo.IncrementStamps(card.ID, 1); err != nil {
		return err
	}
	newStamps := card.Stamps + 1
	result.StampsAdded = 1
	result.NewStamps = newStamps
	result.RewardEarned = newStamps >= config.TotalStamps

	vars := CustomerTemplateVars(customer)
	var message string
	if result.RewardEarned {
		vars["reward"] = config.Reward
		message = RenderMessageTemplate(
			"Congratulations {first_name}! You've collected all your stamps. Your reward: {reward}", vars)
	} else {
		message = RenderMessageTemplate(
			fmt.Sprintf("Hi {first_name}! You've earned a stamp. You now have %d of %d stamps.", newStamps, config.TotalStamps), vars)
	}
	s.notify(ctx, constants.NotificationEventStampEarned, store.ID, customer.ID, message)
	return nil
}

// accruePoints 积分累计。积分 = floor(金额 × 每 RM 积分数)。
func (s *AccrualService) accruePoints(ctx context.Context, store *models.Store, customer *models.Customer, config *models.LoyaltyPointsConfig, amount models.Money, result *AccrualResult) error {
	if config == nil {
		return ErrProgramConfigInvalid
	}
	if amount.Decimal.LessThan(config.MinSpend.Decimal) {
		return nil
	}
	earned := amount.Decimal.Mul(config.PointsPerRM.Decimal).Floor().IntPart()
	if earned <= 0 {
		return nil
	}

	card, err := s.cardRepo.GetOrCreate(store.ID, customer.ID)
	if err != nil {
		return err
	}
	if err := s.cardRepo.AddPoints(card.ID, earned); err != nil {
		return err
	}
	result.PointsAdded = earned
	result.NewPoints = card.Points + earned

	vars := CustomerTemplateVars(customer)
	message := RenderMessageTemplate(
		fmt.Sprintf("Hi {first_name}! You've earned %d points. Your balance is now %d points.", earned, result.NewPoints), vars)
	s.notify(ctx, constants.NotificationEventPointsEarned, store.ID, customer.ID, message)
	return nil
}

// notify 尽力投递通知，失败不影响累计结果
func (s *AccrualService) notify(ctx context.Context, event string, storeID, customerID uint, message string) {
	if s.notificationSvc == nil {
		return
	}
	if err := s.notificationSvc.NotifyCustomer(ctx, event, storeID, customerID, message); err != nil {
		logger.Warnw("accrual_notify_failed",
			"event", event,
			"store_id", storeID,
			"customer_id", customerID,
			"error", err,
		)
	}
}
