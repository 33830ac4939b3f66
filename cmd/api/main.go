package main

import (
	"log"

	"github.com/colegiosys/recibos-api/internal/application/service"
	"github.com/colegiosys/recibos-api/internal/config"
	"github.com/colegiosys/recibos-api/internal/infrastructure/database"
	"github.com/colegiosys/recibos-api/internal/infrastructure/repository"
	"github.com/colegiosys/recibos-api/internal/presentation/http/handler"
	"github.com/colegiosys/recibos-api/internal/presentation/http/routes"
	"github.com/colegiosys/recibos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	conceptRepo := repository.NewConceptRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(gradeRepo, conceptRepo, studentRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	companyService := service.NewCompanyService(companyRepo)
	gradeService := service.NewGradeService(gradeRepo, catalogService)
	conceptService := service.NewConceptService(conceptRepo, catalogService)
	studentService := service.NewStudentService(studentRepo, gradeRepo, catalogService)
	draftService := service.NewDraftService(catalogService, companyRepo, receiptRepo, cfg.Draft.SessionTTL)
	receiptService := service.NewReceiptService(receiptRepo)
	importService := service.NewImportService(gradeRepo, studentRepo, catalogService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Company: handler.NewCompanyHandler(companyService),
		Grade:   handler.NewGradeHandler(gradeService),
		Concept: handler.NewConceptHandler(conceptService),
		Student: handler.NewStudentHandler(studentService),
		Draft:   handler.NewDraftHandler(draftService),
		Receipt: handler.NewReceiptHandler(receiptService),
		Import:  handler.NewImportHandler(importService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Start the server
	addr := ":" + cfg.App.Port
	log.Printf("Starting %s on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
