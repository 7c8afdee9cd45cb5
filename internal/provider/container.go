package provider

import (
	"github.com/shabihhaider/waterbottle-admin/internal/cache"
	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/pdf"
	"github.com/shabihhaider/waterbottle-admin/internal/queue"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
	"github.com/shabihhaider/waterbottle-admin/internal/service"
	"github.com/shabihhaider/waterbottle-admin/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Store       storage.Store

	// Repositories
	AdminRepo     repository.AdminRepository
	CustomerRepo  repository.CustomerRepository
	ProductRepo   repository.ProductRepository
	OrderRepo     repository.OrderRepository
	InvoiceRepo   repository.InvoiceRepository
	DeliveryRepo  repository.DeliveryRepository
	DriverRepo    repository.DriverRepository
	MovementRepo  repository.InventoryMovementRepository
	AnalyticsRepo repository.AnalyticsRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthService       *service.AuthService
	CustomerService   *service.CustomerService
	ProductService    *service.ProductService
	DriverService     *service.DriverService
	OrderService      *service.OrderService
	InvoiceService    *service.InvoiceService
	DeliveryService   *service.DeliveryService
	AnalyticsService  *service.AnalyticsService
	DashboardService  *service.DashboardService
	InvoicePDFService *service.InvoicePDFService
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

	// 初始化对象存储
	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Errorw("provider_init_storage_failed", "error", err)
		panic(err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Store:       store,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.InvoiceRepo = repository.NewInvoiceRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRepository(db)
	c.DriverRepo = repository.NewDriverRepository(db)
	c.MovementRepo = repository.NewInventoryMovementRepository(db)
	c.AnalyticsRepo = repository.NewAnalyticsRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.MovementRepo)
	c.DriverService = service.NewDriverService(c.DriverRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CustomerRepo, c.ProductRepo, c.MovementRepo, c.QueueClient)
	c.InvoiceService = service.NewInvoiceService(c.InvoiceRepo, c.OrderRepo, c.CustomerRepo, c.QueueClient, c.Config.Invoice)
	c.DeliveryService = service.NewDeliveryService(c.DeliveryRepo, c.OrderRepo, c.DriverRepo)
	c.AnalyticsService = service.NewAnalyticsService(c.AnalyticsRepo, c.CustomerRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.ProductRepo, c.AnalyticsService)
	c.InvoicePDFService = service.NewInvoicePDFService(c.InvoiceRepo, pdf.NewClient(c.Config.PDF), c.Store)
}
