package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/authentication"
	"github.com/shreejanpandit/doc-appointment-api/controllers"
	"github.com/shreejanpandit/doc-appointment-api/logger"
)

// Router builds the engine with every API route.
func Router(h *controllers.Handler, allowedOrigins []string, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log), cors.New(corsConfig(allowedOrigins)))
	if h.Metrics != nil {
		r.Use(h.Metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	//public routes
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/health", h.Health)

	api := r.Group("/")
	api.Use(authentication.AuthMiddleware(h.Tokens, h.Sessions, h.Store, log))
	{
		api.POST("/logout", with(h.Logout))
		api.GET("/user", with(h.Me))

		api.GET("/departments", with(h.ListDepartments))
		api.POST("/departments", with(h.CreateDepartment))

		api.GET("/doctors", with(h.ListDoctors))
		api.POST("/doctors", with(h.CreateDoctor))
		api.GET("/doctors/:id", with(h.ShowDoctor))
		api.PUT("/doctors/:id", with(h.UpdateDoctor))
		api.DELETE("/doctors/:id", with(h.DeleteDoctor))

		api.GET("/patients", with(h.ListPatients))
		api.POST("/patients", with(h.CreatePatient))
		api.GET("/patients/:id", with(h.ShowPatient))
		api.PUT("/patients/:id", with(h.UpdatePatient))
		api.DELETE("/patients/:id", with(h.DeletePatient))

		api.GET("/schedules", with(h.ListSchedules))
		api.POST("/schedules", with(h.CreateSchedule))
		api.GET("/schedules/:id", with(h.ShowSchedule))
		api.PUT("/schedules/:id", with(h.UpdateSchedule))
		api.DELETE("/schedules/:id", with(h.DeleteSchedule))

		api.GET("/appointments", with(h.ListAppointments))
		api.POST("/appointments", with(h.CreateAppointment))
		api.GET("/appointments/:id", with(h.ShowAppointment))
		api.PUT("/appointments/:id", with(h.UpdateAppointment))
		api.DELETE("/appointments/:id", with(h.DeleteAppointment))

		api.GET("/admin/bookings", with(h.BookingStats))
	}

	return r
}

func with(h authentication.IdentityHandler) gin.HandlerFunc {
	return authentication.WithIdentity(h)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
