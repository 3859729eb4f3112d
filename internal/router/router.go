package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/slidesmith/slidesmith/config"
	"github.com/slidesmith/slidesmith/internal/handler"
)

// Setup wires the HTTP routes. The CORS policy admits the dev frontend
// on port 5173.
func Setup(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		api.POST("/generate", h.Generate)
		api.GET("/download/:token", h.Download)
		api.GET("/history", h.History)
	}

	return r
}
