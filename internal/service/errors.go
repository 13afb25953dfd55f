package service

import "errors"

// 门店与回调
var (
	ErrStoreNotFound     = errors.New("store not found")
	ErrWebhookKeyInvalid = errors.New("webhook api key invalid")
	ErrOrderIgnored      = errors.New("order status not accruable")
	ErrPhoneMissing      = errors.New("customer phone missing")
)

// 抽奖
var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrCampaignEnded       = errors.New("campaign already ended")
	ErrPrizeConfigInvalid  = errors.New("prize configuration invalid")
	ErrProbabilityInvalid  = errors.New("prize probabilities must sum to 100")
	ErrPrizesExhausted     = errors.New("all prizes exhausted")
	ErrNoEligibleCustomers = errors.New("no eligible customers")
)

// 会员计划
var (
	ErrProgramNotFound      = errors.New("loyalty program not found")
	ErrProgramConfigInvalid = errors.New("loyalty program configuration invalid")
	ErrCustomerNotFound     = errors.New("customer not found")
)

// WhatsApp 消息
var (
	ErrFlowNotFound       = errors.New("whatsapp flow not found")
	ErrJobNotFound        = errors.New("whatsapp job not found")
	ErrBlastMessageEmpty  = errors.New("blast message empty")
	ErrBlastNoRecipients  = errors.New("blast has no recipients")
	ErrIntervalNotAllowed = errors.New("whatsapp interval must be 30 or 60 seconds")
)
