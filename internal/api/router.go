// Package api assembles the HTTP surface the host talks to.
package api

import (
	"slices"
	"time"

	"github.com/bhandras/rfext/internal/api/handlers"
	"github.com/bhandras/rfext/internal/api/middleware"
	"github.com/bhandras/rfext/internal/command"
	"github.com/bhandras/rfext/internal/maps"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps is everything the router wires into handlers.
type RouterDeps struct {
	Dispatcher *command.Dispatcher
	Lifecycle  *maps.Lifecycle
	// Views verifies view links. When nil, /view is not served.
	Views           handlers.ViewVerifier
	ExtensionName   string
	AllowedOrigins  []string
	ExposeTraceback bool
}

// NewRouter builds the gin engine serving the extension endpoints.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	// Liveness
	router.GET("/", handlers.GetAlive)
	router.POST("/", handlers.PostAlive)
	router.GET("/api/is-alive", handlers.GetAlive)
	router.POST("/api/is-alive", handlers.PostAlive)

	mapsHandler := handlers.NewMapsHandler(deps.Lifecycle, deps.ExposeTraceback)
	commandHandler := handlers.NewCommandHandler(deps.Dispatcher)

	api := router.Group("/api")
	{
		api.POST("/maps/:mapId", mapsHandler.AssignMap)
		api.DELETE("/maps/:mapId", mapsHandler.RemoveMap)

		api.POST("/commands/:name", commandHandler.RunCommand)
	}

	if deps.Views != nil {
		viewHandler := handlers.NewViewHandler(deps.Views, deps.ExtensionName)
		router.GET("/view", viewHandler.GetView)
	}

	router.NoRoute(handlers.NoRoute)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", handlers.HeaderExtensionToken, handlers.HeaderSessionID, middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
