package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vstepready/vstep-backend/internal/config"
	"github.com/vstepready/vstep-backend/internal/handler"
	"github.com/vstepready/vstep-backend/internal/middleware"
	"github.com/vstepready/vstep-backend/internal/response"
	"github.com/vstepready/vstep-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Exam       *handler.ExamHandler
	Moderation *handler.ModerationHandler
	Bank       *handler.BankHandler
	Media      *handler.MediaHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve uploaded audio statically.
	router.Static("/uploads", cfg.UploadDir)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Author Group (JWT, any role) ───────────────────────────────
	exams := router.Group("/api/v1/exams")
	exams.Use(middleware.RequireAuth(authService))
	{
		exams.POST("", handlers.Exam.Create)
		exams.GET("", handlers.Exam.List)
		exams.POST("/import", handlers.Exam.Import)
		exams.GET("/:id", handlers.Exam.Get)
		exams.PUT("/:id/content", handlers.Exam.UpdateContent)
		exams.POST("/:id/parts/:part/questions", handlers.Exam.AddQuestion)
		exams.DELETE("/:id/parts/:part/questions/:q", handlers.Exam.RemoveQuestion)
		exams.POST("/:id/submit", handlers.Exam.Submit)
		exams.POST("/:id/withdraw", handlers.Exam.Withdraw)
		exams.DELETE("/:id", handlers.Exam.Delete)
		exams.GET("/:id/export", handlers.Exam.Export)

		// Publish toggle is reviewer-only even though it lives on the exam
		// resource.
		exams.POST("/:id/publish", middleware.RequireReviewer(), handlers.Moderation.Publish)
		exams.POST("/:id/unpublish", middleware.RequireReviewer(), handlers.Moderation.Unpublish)
	}

	// ─── 3. Moderation Group (JWT + Reviewer) ──────────────────────────
	moderation := router.Group("/api/v1/moderation")
	moderation.Use(middleware.RequireAuth(authService), middleware.RequireReviewer())
	{
		moderation.GET("/pending", handlers.Moderation.Pending)
		moderation.POST("/:id/approve", handlers.Moderation.Approve)
		moderation.POST("/:id/reject", handlers.Moderation.Reject)
		moderation.GET("/:id/history", handlers.Moderation.History)
	}

	// ─── 4. Bank Group (JWT, any role) ─────────────────────────────────
	bank := router.Group("/api/v1/bank")
	bank.Use(middleware.RequireAuth(authService))
	{
		bank.GET("/exams", handlers.Bank.List)
		bank.GET("/exams/random", handlers.Bank.Random)
	}

	// ─── 5. Media Group (JWT, any role) ────────────────────────────────
	media := router.Group("/api/v1/media")
	media.Use(middleware.RequireAuth(authService))
	{
		media.POST("/audio", handlers.Media.UploadAudio)
	}

	// ─── 6. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/moderation/stream", handlers.WS.ModerationStream)
	}

	return router
}
