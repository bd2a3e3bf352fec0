package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cedarpath/practice-api/internal/ai"
	"github.com/cedarpath/practice-api/internal/config"
	"github.com/cedarpath/practice-api/internal/handlers"
	"github.com/cedarpath/practice-api/internal/middleware"
	"github.com/cedarpath/practice-api/internal/notify"
	"github.com/cedarpath/practice-api/internal/store"
)

// Deps collects everything the route tree needs. main builds one of
// these and hands it over; nothing in here is a package singleton.
type Deps struct {
	Cfg          *config.Config
	Log          *zap.SugaredLogger
	Store        *store.Store
	Notify       *notify.Service
	Orchestrator *ai.Orchestrator
	Limiter      middleware.CounterStore
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CSRFProtection(d.Cfg, d.Log))

	// ======================================================
	// HANDLERS
	// ======================================================
	contactHandler := handlers.NewContactHandler(d.Store, d.Notify, d.Log)
	scheduleHandler := handlers.NewScheduleHandler(d.Store, d.Notify, d.Log)
	sessionHandler := handlers.NewSessionHandler(d.Store, d.Log)
	progressHandler := handlers.NewProgressHandler(d.Store, d.Log)
	aiHandler := handlers.NewAIHandler(d.Orchestrator, d.Log)
	adminHandler := handlers.NewAdminHandler(d.Store, d.Log)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})
		api.GET("/csrf-token", middleware.CSRFToken(d.Cfg))

		api.POST("/contact",
			middleware.RateLimit(d.Limiter, "contact", config.ContactRateLimit),
			contactHandler.Create,
		)
		api.POST("/schedule",
			middleware.RateLimit(d.Limiter, "schedule", config.ScheduleRateLimit),
			scheduleHandler.Create,
		)

		// ------------------------------
		// GUIDED PRACTICE (AI)
		// ------------------------------
		aiGroup := api.Group("/ai")
		aiGroup.Use(
			middleware.OptionalAuth(d.Cfg, d.Log),
			middleware.TieredRateLimit(d.Limiter, "ai", config.AIRateLimit),
		)
		{
			aiGroup.POST("/session", aiHandler.CreateSession)
			aiGroup.POST("/chat", aiHandler.Chat)
			aiGroup.GET("/session/:id/summary", aiHandler.Summary)
		}

		// ------------------------------
		// PRACTICE SESSIONS
		// ------------------------------
		api.POST("/sessions", sessionHandler.Create)
		api.GET("/sessions", sessionHandler.List)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.PUT("/sessions/:id", sessionHandler.Update)
		api.PATCH("/sessions/:id", sessionHandler.Update)
		api.DELETE("/sessions/:id", sessionHandler.Delete)

		// ------------------------------
		// PROGRESS
		// ------------------------------
		api.GET("/progress", progressHandler.Get)
		api.POST("/progress/check-in", progressHandler.CheckIn)
		api.GET("/progress/check-ins", progressHandler.ListCheckIns)
		api.GET("/progress/insights", progressHandler.Insights)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(d.Cfg, d.Log))
		{
			admin.GET("/contacts", adminHandler.ListContacts)
			admin.PATCH("/contacts/:id/status", adminHandler.UpdateContactStatus)
			admin.GET("/appointments", adminHandler.ListAppointments)
			admin.PATCH("/appointments/:id/status", adminHandler.UpdateAppointmentStatus)
			admin.GET("/stats", adminHandler.Stats)
		}
	}
}
