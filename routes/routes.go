package routes

import (
	"net/http"
	"time"

	"homehelper/handlers"
	"homehelper/middleware"
	"homehelper/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the session lifecycle endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.MeHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.PATCH("/profile", hb.UpdateProfileHandler)
	}

	// Generic dashboard entry: redirects each role to its own home.
	r.GET("/api/dashboard", middleware.OptionalAuth(), hb.DashboardHandler)
}

// RegisterCatalogRoutes registers service browsing. Browsing is public; the
// management endpoints live under the admin group.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.ListServicesHandler)
		api.GET("/:id", hb.GetServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking wizard and booking queries.
// All of them require a signed-in user.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRoles(models.RoleUser))

		api.GET("/wizard", hb.WizardStateHandler)
		api.POST("/wizard/service", hb.SelectServiceHandler)
		api.PUT("/wizard/schedule", hb.SetScheduleHandler)
		api.PUT("/wizard/address", hb.SetAddressHandler)
		api.PUT("/wizard/payment", hb.SetPaymentHandler)
		api.PUT("/wizard/details", hb.SetDetailsHandler)
		api.POST("/wizard/step", hb.StepHandler)
		api.POST("/wizard/confirm", hb.ConfirmHandler)
		api.DELETE("/wizard", hb.ClearHandler)

		api.GET("", hb.MyBookingsHandler)
		api.POST("/:id/cancel", hb.CancelHandler)
	}
}

// RegisterProviderRoutes registers the provider workspace endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/provider")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRoles(models.RoleProvider))

		api.PUT("/availability", hb.SetAvailabilityHandler)
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.GET("/jobs", hb.ProviderJobsHandler)
		api.PATCH("/jobs/:id/status", hb.UpdateJobStatusHandler)
	}
}

// RegisterAdminRoutes registers admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRoles(models.RoleAdmin))

		api.GET("/users", hb.ListUsersHandler)
		api.GET("/bookings", hb.ListBookingsHandler)
		api.PATCH("/bookings/:id/status", hb.UpdateBookingStatusHandler)

		api.POST("/services", hb.CreateServiceHandler)
		api.PUT("/services/:id", hb.UpdateServiceHandler)
		api.PATCH("/services/:id/availability", hb.SetServiceAvailabilityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm HomeHelper"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", handlers.SessionIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
