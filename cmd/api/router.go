package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pressroom-backend/internal/shared/middleware"
	"pressroom-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.SessionAuth(c.CookieConfig, c.SessionService, c.TokenManager),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupSessionRoutes(v1, c)
		setupArtistRoutes(v1, c)
		setupProjectRoutes(v1, c)
	}

	return router
}

func setupSessionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", c.SessionHandler.Login)
		sessions.DELETE("", c.SessionHandler.Logout)
		sessions.GET("/:id", middleware.RequireAuth(), c.SessionHandler.Get)
	}
}

func setupArtistRoutes(v1 *gin.RouterGroup, c *container.Container) {
	artists := v1.Group("/artists")
	{
		artists.GET("", c.ArtistHandler.GetAll)
		artists.GET("/:id", c.ArtistHandler.GetByID)
		artists.GET("/slug/:slug", c.ArtistHandler.GetByURLName)

		artists.POST("", middleware.RequireAuth(), c.ArtistHandler.Create)
		artists.POST("/get-or-create", middleware.RequireAuth(), c.ArtistHandler.GetOrCreate)
		artists.DELETE("/:id", middleware.RequireAuth(), c.ArtistHandler.Delete)
	}
}

func setupProjectRoutes(v1 *gin.RouterGroup, c *container.Container) {
	projects := v1.Group("/projects")
	{
		projects.GET("", c.ProjectHandler.GetAll)
		projects.GET("/:id", c.ProjectHandler.Get)

		projects.POST("", middleware.RequireAuth(), c.ProjectHandler.Create)
		projects.PUT("/:id", middleware.RequireAuth(), c.ProjectHandler.Update)
		projects.POST("/:id/sync", middleware.RequireAuth(), c.ProjectHandler.Sync)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			// The cache is optional; a redis outage does not degrade health.
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
