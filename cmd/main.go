package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"baseti_shopapp_v1_202609/internal/controller"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/internal/router"
	"baseti_shopapp_v1_202609/internal/service"
	"baseti_shopapp_v1_202609/internal/task"
	"baseti_shopapp_v1_202609/pkg/database"
	"baseti_shopapp_v1_202609/pkg/localstore"
	"baseti_shopapp_v1_202609/pkg/logger"
	"baseti_shopapp_v1_202609/pkg/notify"
)

func main() {
	// 1. 加载配置与日志
	_ = godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"))
	defer logger.Sync()

	initJWT()

	// 2. 初始化数据库
	db := initDatabase()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动定时任务
	tm := initTasks(deps)
	defer tm.Stop()

	// 5. 初始化路由并启动服务
	r := router.SetupRouter(deps.Controllers, deps.Services.Tenant)
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Notifier    *notify.MemoryNotifier
}

// Repositories 仓库集合
type Repositories struct {
	User     repository.UserRepository
	Business repository.BusinessRepository
	Product  repository.ProductRepository
	Customer repository.CustomerRepository
	Order    repository.OrderRepository
	Social   repository.SocialConnectionRepository
	Content  repository.ContentPlanRepository
}

// Services 服务集合
type Services struct {
	Auth      *service.AuthService
	Tenant    *service.TenantService
	Business  *service.BusinessService
	Product   *service.ProductService
	Customer  *service.CustomerService
	Order     *service.OrderService
	Social    *service.SocialService
	Content   *service.ContentService
	Cart      *service.CartService
	Dashboard *service.DashboardService
	Storage   *service.StorageService
	AI        *service.AIService
}

// ==================== 初始化函数 ====================

func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.SecretKey = secret
	}
	middleware.SetJWTConfig(cfg)
}

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL",
		"host=localhost user=postgres password=postgres dbname=baseti_shopapp port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// 账号与商家
		&model.SysUser{}, &model.Business{},
		// 经营数据
		&model.Product{}, &model.Customer{},
		&model.Order{}, &model.OrderItem{},
		// 社媒
		&model.SocialConnection{}, &model.ContentPlan{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:     repository.NewUserRepository(db),
		Business: repository.NewBusinessRepository(db),
		Product:  repository.NewProductRepository(db),
		Customer: repository.NewCustomerRepository(db),
		Order:    repository.NewOrderRepository(db),
		Social:   repository.NewSocialConnectionRepository(db),
		Content:  repository.NewContentPlanRepository(db),
	}

	// -------- 基础设施 --------
	notifier := notify.NewMemoryNotifier(100)
	store, err := localstore.NewFileStore(getEnv("LOCALSTORE_DIR", "./data"))
	if err != nil {
		log.Fatalf("本地存储初始化失败: %v", err)
	}

	storageSvc := initStorageService()
	aiSvc := service.NewAIService(&service.AIConfig{
		ApiKey: getEnv("GEMINI_API_KEY", ""),
	})

	// -------- 业务服务 --------
	bus := service.NewAuthEventBus()

	services := &Services{
		Storage: storageSvc,
		AI:      aiSvc,
	}
	services.Auth = service.NewAuthService(repos.User, repos.Business, bus)
	services.Tenant = service.NewTenantService(repos.Business, notifier, bus, getEnv("PLATFORM_ADMIN_KEY", ""))
	services.Business = service.NewBusinessService(repos.Business, storageSvc)
	services.Product = service.NewProductService(repos.Product, storageSvc, notifier)
	services.Customer = service.NewCustomerService(repos.Customer, notifier)
	services.Order = service.NewOrderService(repos.Order, repos.Product, repos.Customer, notifier)
	services.Social = service.NewSocialService(repos.Social, notifier)
	services.Content = service.NewContentService(repos.Content, repos.Product, aiSvc, notifier)
	services.Cart = service.NewCartService(store, notifier)
	services.Dashboard = service.NewDashboardService(repos.Product, repos.Order, repos.Customer, services.Content)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:         controller.NewAuthController(services.Auth),
		Business:     controller.NewBusinessController(services.Business, services.Tenant),
		Product:      controller.NewProductController(services.Product),
		Customer:     controller.NewCustomerController(services.Customer),
		Order:        controller.NewOrderController(services.Order),
		Social:       controller.NewSocialController(services.Social),
		Content:      controller.NewContentController(services.Content),
		Cart:         controller.NewCartController(services.Cart, services.Product, services.Business),
		Storefront:   controller.NewStorefrontController(services.Business, services.Product, services.Order, services.Cart),
		Dashboard:    controller.NewDashboardController(services.Dashboard),
		Notification: controller.NewNotificationController(notifier),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Notifier:    notifier,
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	provider := getEnv("STORAGE_PROVIDER", "local")

	// local 模式 BasePath 是磁盘目录，s3 模式是对象 key 前缀
	basePath := getEnv("STORAGE_BASE_PATH", "baseti-shopapp")
	if provider == "local" {
		basePath = getEnv("STORAGE_BASE_PATH", "./uploads")
	}

	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  provider,
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  basePath,
		BaseURL:   getEnv("STORAGE_BASE_URL", ""),
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return storageSvc
}

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *task.TaskManager {
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		BusinessRepo:  deps.Repos.Business,
		ProductRepo:   deps.Repos.Product,
		SocialRepo:    deps.Repos.Social,
		SocialService: deps.Services.Social,
		Notifier:      deps.Notifier,
	}, nil)
	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r http.Handler) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
