package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmarkou/arboretum/internal/app/controllers"
	"github.com/dmarkou/arboretum/internal/middleware"
)

// SetupRouter configures all application routes. Each entry point accepts a
// POST carrying an action discriminator and multiplexes its operations
// behind it.
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	sessionMiddleware *middleware.SessionMiddleware,
	storagePath string,
) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(sessionMiddleware.Resolve())

	// Uploaded tree images are served statically
	router.Static("/uploads", storagePath)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/auth", ctrl.AuthController.Handle)
		api.POST("/user", ctrl.UserController.Handle)
		api.POST("/trees", ctrl.TreeController.Handle)
		api.POST("/requests", ctrl.RequestController.Handle)
		api.POST("/pollution", ctrl.PollutionController.Handle)
	}
}
