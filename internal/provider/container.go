package provider

import (
	"github.com/loopiify-next/internal/cache"
	"github.com/loopiify-next/internal/config"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/queue"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/service"
	"github.com/loopiify-next/internal/whatsapp"
	"github.com/loopiify-next/internal/woocommerce"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StoreRepo    repository.StoreRepository
	CustomerRepo repository.CustomerRepository
	CardRepo     repository.LoyaltyCardRepository
	ProgramRepo  repository.LoyaltyProgramRepository
	CampaignRepo repository.CampaignRepository
	PrizeRepo    repository.PrizeRepository
	EntryRepo    repository.EntryRepository
	FlowRepo     repository.WhatsAppFlowRepository
	JobRepo      repository.WhatsAppJobRepository

	// Clients
	Sender    whatsapp.Sender
	WooClient woocommerce.OrderLister

	// Services
	StoreService        *service.StoreService
	LoyaltyService      *service.LoyaltyService
	CampaignService     *service.CampaignService
	DrawService         *service.DrawService
	AccrualService      *service.AccrualService
	NotificationService *service.NotificationService
	BlastService        *service.BlastService
	FollowupService     *service.FollowupService
	SyncService         *service.WooCommerceSyncService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化外部客户端
	c.Sender = whatsapp.NewOnSendClient(&cfg.WhatsApp)
	c.WooClient = woocommerce.NewClient(&cfg.WooCommerce)

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StoreRepo = repository.NewStoreRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CardRepo = repository.NewLoyaltyCardRepository(db)
	c.ProgramRepo = repository.NewLoyaltyProgramRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.PrizeRepo = repository.NewPrizeRepository(db)
	c.EntryRepo = repository.NewEntryRepository(db)
	c.FlowRepo = repository.NewWhatsAppFlowRepository(db)
	c.JobRepo = repository.NewWhatsAppJobRepository(db)
}

func (c *Container) initServices() {
	c.NotificationService = service.NewNotificationService(c.StoreRepo, c.CustomerRepo, c.JobRepo, c.QueueClient, c.Sender)
	c.StoreService = service.NewStoreService(c.StoreRepo)
	c.LoyaltyService = service.NewLoyaltyService(c.ProgramRepo, c.CardRepo)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.EntryRepo)
	c.DrawService = service.NewDrawService(c.CampaignRepo, c.CustomerRepo, c.PrizeRepo, c.EntryRepo, c.NotificationService)
	c.AccrualService = service.NewAccrualService(c.CustomerRepo, c.CardRepo, c.ProgramRepo, c.NotificationService)
	c.BlastService = service.NewBlastService(c.StoreRepo, c.CustomerRepo, c.JobRepo, c.QueueClient)
	c.FollowupService = service.NewFollowupService(c.FlowRepo, c.JobRepo, c.NotificationService)
	c.SyncService = service.NewWooCommerceSyncService(c.StoreRepo, c.CustomerRepo, c.WooClient)
}
