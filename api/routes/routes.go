package routes

import (
	"github.com/dimesonly/platform-backend/internal/config"
	"github.com/dimesonly/platform-backend/internal/handlers"
	"github.com/dimesonly/platform-backend/internal/middleware"
	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the initialized handlers for route setup
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	TipHandler      *handlers.TipHandler
	JackpotHandler  *handlers.JackpotHandler
	EarningsHandler *handlers.EarningsHandler
	ReferralHandler *handlers.ReferralHandler
	EventHandler    *handlers.EventHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps *HandlerDependencies) *gin.Engine {
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// The live jackpot counter is shown on the public landing page
		public.GET("/jackpot/status", deps.JackpotHandler.GetStatus)
		public.GET("/events/upcoming", deps.EventHandler.GetUpcomingEvents)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/count", deps.UserHandler.GetUserCount)
			users.GET("/:id", deps.UserHandler.GetUserByID)
			users.GET("/username/:username", deps.UserHandler.GetUserByUsername)
			users.PUT("/:id", deps.UserHandler.UpdateUser)
			users.DELETE("/:id", deps.UserHandler.DeleteUser)
		}

		// Tip routes
		tips := protected.Group("/tips")
		{
			tips.POST("", deps.TipHandler.RecordTip)
			tips.GET("/user/:id", deps.TipHandler.GetTipsForUser)
			tips.GET("/tickets/:id", deps.TipHandler.GetTicketSummary)
		}

		// Jackpot routes
		jackpot := protected.Group("/jackpot")
		{
			jackpot.GET("/pools", deps.JackpotHandler.GetPoolHistory)
			jackpot.GET("/drawings/:id", deps.JackpotHandler.GetDrawingByID)
			jackpot.GET("/drawings/:id/winners", deps.JackpotHandler.GetWinners)

			admin := jackpot.Group("/drawings")
			admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
			{
				admin.POST("", deps.JackpotHandler.ScheduleDrawing)
				admin.POST("/:id/execute", deps.JackpotHandler.ExecuteDrawing)
			}
		}

		// Earnings routes
		earnings := protected.Group("/earnings")
		{
			earnings.PUT("/:id/weekly", deps.EarningsHandler.UpsertWeekly)
			earnings.GET("/:id/weekly", deps.EarningsHandler.GetWeekly)
			earnings.GET("/:id/quarterly", deps.EarningsHandler.GetQuarterlyStatement)
			earnings.POST("/:id/quarterly/finalize", middleware.RequireRole(string(models.RoleAdmin)), deps.EarningsHandler.FinalizeQuarter)
		}

		// Referral routes
		referrals := protected.Group("/referrals")
		{
			referrals.GET("/:username", deps.ReferralHandler.GetReferrals)
			referrals.GET("/:username/weekly-count", deps.ReferralHandler.GetWeeklyCount)
		}

		// Event routes
		events := protected.Group("/events")
		{
			events.POST("", deps.EventHandler.CreateEvent)
			events.GET("/:id", deps.EventHandler.GetEventByID)
			events.PUT("/:id", deps.EventHandler.UpdateEvent)
			events.POST("/:id/cancel", deps.EventHandler.CancelEvent)
		}
	}

	return router
}
