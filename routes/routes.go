package routes

import (
	"net/http"
	"time"

	"rotacare/handlers"
	"rotacare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers coordinator sign-in and account endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/login", hb.SignInHandler)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/logout", hb.SignOutHandler)
		api.GET("/me", hb.MeHandler)
	}
}

// RegisterBookingRoutes registers the rota scheduling endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/validate", hb.ValidateAssignmentHandler)
		api.POST("", hb.CreateBookingHandler)
		api.GET("/day", hb.ListDayHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PATCH("/:id", hb.EditBookingHandler)
		api.POST("/:id/carers", hb.AddCarerHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
		api.DELETE("/:id", hb.DeleteBookingHandler)
		api.POST("/:id/late", hb.MarkLateHandler)
		api.POST("/replicate", hb.ReplicateWeekHandler)
	}
}

// RegisterCarerRoutes registers carer management endpoints.
func RegisterCarerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/carers")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateCarerHandler)
		api.GET("", hb.ListCarersHandler)
		api.GET("/:id", hb.GetCarerHandler)
		api.PUT("/:id", hb.UpdateCarerHandler)
		api.PUT("/:id/status", hb.SetCarerStatusHandler)
		api.DELETE("/:id", hb.DeleteCarerHandler)
		api.GET("/:id/schedule", hb.CarerDayScheduleHandler)
	}
}

// RegisterClientRoutes registers client management endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateClientHandler)
		api.GET("", hb.ListClientsHandler)
		api.GET("/:id", hb.GetClientHandler)
		api.PUT("/:id", hb.UpdateClientHandler)
		api.DELETE("/:id", hb.DeleteClientHandler)
	}
}

// RegisterReportRoutes registers rota export and staffing summary endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/rota.csv", hb.DailyRotaCSVHandler)
		api.GET("/rota.pdf", hb.DailyRotaPDFHandler)
		api.GET("/carer-hours", hb.CarerHoursHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.POST("/accounts", hb.CreateAccountHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAccountRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCarerRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
