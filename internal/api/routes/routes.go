package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lisanhq/lisan/internal/api/handlers"
)

type Deps struct {
	App        string // app name reported by the liveness route
	Transcribe *handlers.TranscribeHandler
	Limit      gin.HandlerFunc // admission gate for the transcription routes
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"app": d.App, "status": "ok"})
	})

	grp := r.Group("/transcribe")
	if d.Limit != nil {
		grp.Use(d.Limit)
	}
	grp.POST("", d.Transcribe.FromURL)
	grp.POST("/file", d.Transcribe.FromFile)
}
