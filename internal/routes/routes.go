package routes

import (
	"github.com/gin-gonic/gin"

	"admissions/internal/handlers"
	"admissions/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	registrationHandler *handlers.RegistrationHandler,
	authHandler *handlers.AuthHandler,
	applicationHandler *handlers.ApplicationHandler,
) *gin.Engine {

	// ---- public
	r.POST("/otp/request", registrationHandler.RequestCode)
	r.POST("/register", registrationHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/status/:application_id", applicationHandler.Status)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	apps := r.Group("/applications")
	{
		apps.POST("/personal", applicationHandler.WritePersonal)
		apps.POST("/academic", applicationHandler.WriteAcademic)
		apps.POST("/subject", applicationHandler.WriteSubject)
		apps.POST("/submit", applicationHandler.Submit)
		apps.GET("/acknowledgement", applicationHandler.Acknowledgement)
	}

	r.GET("/candidates", applicationHandler.ListCandidates)

	return r
}
