package routes

import (
	"time"

	"github.com/colegiosys/recibos-api/internal/config"
	"github.com/colegiosys/recibos-api/internal/presentation/http/handler"
	"github.com/colegiosys/recibos-api/internal/presentation/http/middleware"
	"github.com/colegiosys/recibos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Company *handler.CompanyHandler
	Grade   *handler.GradeHandler
	Concept *handler.ConceptHandler
	Student *handler.StudentHandler
	Draft   *handler.DraftHandler
	Receipt *handler.ReceiptHandler
	Import  *handler.ImportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h, deps)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Login runs before any identity is known, so it gets a per-IP
	// rate limiter.
	rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	auth := v1.Group("/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Companies
	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.POST("", h.Company.Create)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
		companies.DELETE("/:id", h.Company.Delete)
	}

	// Grades
	grades := protected.Group("/grades")
	{
		grades.GET("", h.Grade.List)
		grades.POST("", h.Grade.Create)
		grades.GET("/:id", h.Grade.Get)
		grades.PUT("/:id", h.Grade.Update)
		grades.DELETE("/:id", h.Grade.Delete)
	}

	// Concepts
	concepts := protected.Group("/concepts")
	{
		concepts.GET("", h.Concept.List)
		concepts.POST("", h.Concept.Create)
		concepts.GET("/:id", h.Concept.Get)
		concepts.PUT("/:id", h.Concept.Update)
		concepts.DELETE("/:id", h.Concept.Delete)
	}

	// Students and bulk import
	students := protected.Group("/students")
	{
		students.GET("", h.Student.List)
		students.POST("", h.Student.Create)
		students.POST("/import", h.Import.ImportJSON)
		students.POST("/import/xlsx", h.Import.ImportXLSX)
		students.GET("/:id", h.Student.Get)
		students.PUT("/:id", h.Student.Update)
		students.DELETE("/:id", h.Student.Delete)
	}

	// Draft sessions
	drafts := protected.Group("/drafts")
	{
		drafts.POST("", h.Draft.Open)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Discard)
		drafts.POST("/:id/submit", h.Draft.Submit)
		drafts.PUT("/:id/payment-mode", h.Draft.SetPaymentMode)
		drafts.PUT("/:id/partial-amount", h.Draft.SetPartialAmount)
		drafts.PUT("/:id/notes", h.Draft.SetNotes)
		drafts.POST("/:id/student-lines", h.Draft.AddStudentLine)
		drafts.DELETE("/:id/student-lines/:lineId", h.Draft.RemoveStudentLine)
		drafts.PUT("/:id/student-lines/:lineId/grade", h.Draft.SetGrade)
		drafts.PUT("/:id/student-lines/:lineId/student", h.Draft.SetStudent)
		drafts.POST("/:id/student-lines/:lineId/concept-lines", h.Draft.AddConceptLine)
		drafts.DELETE("/:id/student-lines/:lineId/concept-lines/:clId", h.Draft.RemoveConceptLine)
		drafts.PUT("/:id/student-lines/:lineId/concept-lines/:clId/concept", h.Draft.SetConcept)
	}

	// Receipts (read only, created through draft submission)
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/:id", h.Receipt.Get)
	}
}
