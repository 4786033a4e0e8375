package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/paymentlink"
	"storefront/pkg/rabbitmq"
)

// App bundles the wired Fiber app with the resources main needs to
// manage its lifecycle.
type App struct {
	Fiber  *fiber.App
	Config config.Config
	DB     *gorm.DB
}

// NewApp builds the fully wired application: configuration, storage,
// services, handlers and routes. It does not start listening and does
// not own the message broker; main adds those.
func NewApp() *App {
	return newApp(config.Load(), nil)
}

const dbConnectTimeout = 5 * time.Second

// openDatabase connects to Postgres with a bounded connect timeout so
// an unreachable host fails fast instead of hanging startup.
func openDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func newApp(cfg config.Config, events services.EventPublisher) *App {
	var db *gorm.DB
	if cfg.DatabaseDSN != "" {
		var err error
		db, err = openDatabase(cfg.DatabaseDSN)
		if err != nil {
			log.Printf("Database unavailable, using in-memory store: %v", err)
			db = nil
		}
	}

	var (
		userRepo     repositories.UserRepository
		categoryRepo repositories.CategoryRepository
		productRepo  repositories.ProductRepository
		orderRepo    repositories.OrderRepository
		reviewRepo   repositories.ReviewRepository
	)

	if db != nil {
		if err := db.AutoMigrate(
			&models.User{},
			&models.Category{},
			&models.Specification{},
			&models.Product{},
			&models.ProductVariant{},
			&models.Order{},
			&models.OrderItem{},
			&models.Review{},
		); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		categoryRepo = repositories.NewGORMCategoryRepository(db)
		productRepo = repositories.NewGORMProductRepository(db)
		orderRepo = repositories.NewGORMOrderRepository(db)
		reviewRepo = repositories.NewGORMReviewRepository(db)
	} else {
		// In-process store for local development. Data is disposable
		// and gone on restart.
		memCategories := repositories.NewMemoryCategoryRepository()
		userRepo = repositories.NewMemoryUserRepository()
		categoryRepo = memCategories
		productRepo = repositories.NewMemoryProductRepository(memCategories)
		orderRepo = repositories.NewMemoryOrderRepository()
		reviewRepo = repositories.NewMemoryReviewRepository()
	}

	if cfg.SeedData {
		seedCatalog(categoryRepo, productRepo, reviewRepo)
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	reviewService := services.NewReviewService(productRepo, reviewRepo, userRepo, cfg.ReviewMinLength)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, reviewRepo, reviewService)
	orderService := services.NewOrderService(orderRepo, events)

	provider := paymentlink.NewPlaidClient(paymentlink.PlaidConfig{
		ClientID:   cfg.PlaidClientID,
		Secret:     cfg.PlaidSecret,
		Env:        cfg.PlaidEnv,
		ClientName: cfg.PlaidClientName,
	})

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, reviewService)
	cartHandler := handlers.NewCartHandler(cfg.TaxRate, cfg.ShippingFlat)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(provider, orderService, authService)

	// --- Fiber app and routes ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Route registration is ordered: each gate is a Use on /api, so
	// public routes go in before the session gate exists and session
	// routes before the admin gate.
	api := app.Group("/api")
	authHandler.RegisterPublicRoutes(api)
	catalogHandler.RegisterPublicRoutes(api)
	cartHandler.RegisterPublicRoutes(api)

	authed := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterSessionRoutes(authed)
	catalogHandler.RegisterSessionRoutes(authed)
	orderHandler.RegisterSessionRoutes(authed)
	paymentHandler.RegisterSessionRoutes(authed)

	admin := authed.Group("", middleware.AdminRequired())
	catalogHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	return &App{Fiber: app, Config: cfg, DB: db}
}

func main() {
	cfg := config.Load()

	// The broker is optional; without it order events are simply not
	// published.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}

	application := newApp(cfg, events)

	if mqClient != nil {
		go func() {
			log.Println("Starting order events consumer...")
			err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("Order event %q: %s", msg.Type, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Failed to start order events consumer: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := application.Fiber.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}
