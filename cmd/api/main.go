package main

import (
	"os"

	_ "github.com/jatochnietverkeerd/dd-sub000/api/swagger" // swagger docs
	"github.com/jatochnietverkeerd/dd-sub000/internal/database"
	"github.com/jatochnietverkeerd/dd-sub000/internal/finance"
	"github.com/jatochnietverkeerd/dd-sub000/internal/handler"
	"github.com/jatochnietverkeerd/dd-sub000/internal/middleware"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"
	"github.com/jatochnietverkeerd/dd-sub000/internal/service"
	"github.com/jatochnietverkeerd/dd-sub000/internal/websocket"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func companyFromEnv() finance.CompanyInfo {
	return finance.CompanyInfo{
		Name:       envOr("COMPANY_NAME", "Autobedrijf"),
		Address:    os.Getenv("COMPANY_ADDRESS"),
		PostalCode: os.Getenv("COMPANY_POSTAL_CODE"),
		City:       os.Getenv("COMPANY_CITY"),
		Phone:      os.Getenv("COMPANY_PHONE"),
		Email:      os.Getenv("COMPANY_EMAIL"),
		KvKNumber:  os.Getenv("COMPANY_KVK"),
		VATNumber:  os.Getenv("COMPANY_VAT_NUMBER"),
		IBAN:       os.Getenv("COMPANY_IBAN"),
	}
}

// @title           Dealership API
// @version         1.0
// @description     Catalog and back-office API for a car dealership: inventory, purchases, sales, VAT/profit calculation and invoices.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("No configs/.env file found or error loading it")
	}

	if err := logger.Setup(logger.FromEnv()); err != nil {
		log.Fatal().Err(err).Msg("Logger setup failed")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "postgres")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	log.Info().Msg("Connected to PostgreSQL successfully")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	auditService := service.NewAuditService(db)
	userService := service.NewUserService(userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, txManager, auditService)
	purchaseService := service.NewPurchaseService(purchaseRepo, vehicleRepo, auditService)
	saleService := service.NewSaleService(saleRepo, purchaseRepo, vehicleRepo, txManager, wsHub, auditService)
	leadService := service.NewLeadService(leadRepo, vehicleRepo, txManager, wsHub, auditService)
	invoiceService := service.NewInvoiceService(purchaseRepo, saleRepo, companyFromEnv())
	statisticsService := service.NewStatisticsService(db, saleRepo, leadRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	saleHandler := handler.NewSaleHandler(saleService)
	calculatorHandler := handler.NewCalculatorHandler(purchaseService, saleService)
	leadHandler := handler.NewLeadHandler(leadService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	vehicleHandler.RegisterRoutes(router.Group(""))
	purchaseHandler.RegisterRoutes(router.Group(""))
	saleHandler.RegisterRoutes(router.Group(""))
	calculatorHandler.RegisterRoutes(router.Group(""))
	leadHandler.RegisterRoutes(router.Group(""))
	invoiceHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")

	log.Info().Str("port", port).Msg("Server listening")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
