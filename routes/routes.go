package routes

import (
	"time"

	"agendamento/handlers"
	"agendamento/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterServiceRoutes registers the root, health and metrics endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.RootHandler)
	r.GET("/health", hb.HealthCheckHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterUserRoutes registers sign-up, sign-in and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/register", hb.RegisterUserHandler)
	r.POST("/login", hb.AuthenticateUserHandler)

	// Protected routes (Require Authentication)
	profile := r.Group("/perfil")
	{
		profile.Use(middleware.JWTAuthUserMiddleware(hb.TokenVerifier))
		profile.GET("", hb.GetProfileHandler)
		profile.PUT("", hb.UpdateProfileHandler)
	}
}

// RegisterCompanyRoutes registers company and service catalogue endpoints.
func RegisterCompanyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	companies := r.Group("/empresas")
	{
		companies.GET("/:id/servicos", hb.ListServicesHandler)

		protected := companies.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.TokenVerifier))
		protected.POST("", hb.RegisterCompanyHandler)
		protected.POST("/:id/servicos", hb.AddServiceHandler)
	}
}

// RegisterBookingRoutes registers appointment scheduling endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/agendar", hb.CreateAppointmentHandler)
	r.GET("/agendamentos/:userID", hb.ListAppointmentsHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	RegisterServiceRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterCompanyRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
