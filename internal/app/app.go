package app

import (
	"database/sql"
	"fmt"
	"log"

	"admissions/internal/config"
	"admissions/internal/handlers"
	"admissions/internal/middleware"
	"admissions/internal/pdf"
	"admissions/internal/repositories"
	"admissions/internal/routes"
	"admissions/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "admissions/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.JWT.Secret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	candidateRepo := repositories.NewCandidateRepository(db)
	personalRepo := repositories.NewPersonalInfoRepository(db)
	academicRepo := repositories.NewAcademicRepository(db)
	subjectRepo := repositories.NewSubjectRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	otpService := services.NewOTPService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// Telegram notice to the admissions office is optional
	var telegramService *services.TelegramService
	if cfg.Telegram.Enabled {
		telegramService, err = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("telegram integration disabled: %v", err)
		}
	}

	candidateService := services.NewCandidateService(
		candidateRepo, personalRepo, academicRepo, subjectRepo,
		otpService, emailService, authService,
	)
	applicationService := services.NewApplicationService(
		candidateRepo, personalRepo, academicRepo, subjectRepo,
		emailService, telegramService,
	)

	uploadService := services.NewUploadService(cfg.Files.RootDir)
	pdfGen := pdf.NewFormGenerator(cfg.Files.RootDir)

	// === Handlers ===
	registrationHandler := handlers.NewRegistrationHandler(candidateService)
	authHandler := handlers.NewAuthHandler(candidateService)
	applicationHandler := handlers.NewApplicationHandler(
		applicationService, candidateService, uploadService, pdfGen, cfg.Files.RootDir,
	)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, registrationHandler, authHandler, applicationHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
