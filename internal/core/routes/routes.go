package routes

import (
	"github.com/JungleeAadmi/component-storage/internal/core/container"
	"github.com/JungleeAadmi/component-storage/internal/middleware"
	"github.com/JungleeAadmi/component-storage/internal/uploads"
	"github.com/JungleeAadmi/component-storage/pkg/security"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with recovery and request logging and mounts every route.
func NewRouter(app *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(app.Logger),
		middleware.RequestLogger(app.Logger),
	)
	router.MaxMultipartMemory = app.Config.MaxUploadBytes

	RegisterUtilityRoutes(router, app)

	api := router.Group("/api")
	RegisterPublicRoutes(api, app)
	RegisterProtectedRoutes(api, app)

	return router
}

func RegisterPublicRoutes(router *gin.RouterGroup, app *container.Container) {
	app.LoginHandler.RegisterRoutes(router)
	app.UserHandler.RegisterPublicRoutes(router)
}

func RegisterProtectedRoutes(router *gin.RouterGroup, app *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware(app.Tokens))

	app.UserHandler.RegisterRoutes(protectedRoutes)
	app.ContainerHandler.RegisterRoutes(protectedRoutes)
	app.SectionHandler.RegisterRoutes(protectedRoutes)
	app.ComponentHandler.RegisterRoutes(protectedRoutes)
	app.StatsHandler.RegisterRoutes(protectedRoutes)
	app.SearchHandler.RegisterRoutes(protectedRoutes)
	if app.SheetsHandler != nil {
		app.SheetsHandler.RegisterRoutes(protectedRoutes)
	}
}

func RegisterUtilityRoutes(router *gin.Engine, app *container.Container) {
	router.GET("/health", app.HealthChecker.Handler())
	router.Static(uploads.PublicPrefix, app.Store.Dir())
}
