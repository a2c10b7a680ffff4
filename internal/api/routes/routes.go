package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/revand/jobpilot/internal/api/handlers"
	"github.com/revand/jobpilot/internal/api/middleware"
	"github.com/revand/jobpilot/internal/auth"
	pgrepo "github.com/revand/jobpilot/internal/repositories/postgres"
)

type Deps struct {
	Tokens *auth.TokenIssuer
	Users  pgrepo.UserRepository

	Auth        *handlers.AuthHandler
	Resume      *handlers.ResumeHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Stats       *handlers.StatsHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "AI Job Application Agent API"})
	})

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	protected := api.Group("/")
	protected.Use(middleware.JWTAuth(d.Tokens, d.Users))

	protected.POST("/resume/upload", d.Resume.Upload)
	protected.GET("/resume", d.Resume.Current)
	protected.GET("/profile/me", d.Resume.Profile)

	protected.POST("/jobs", d.Job.Create)
	protected.GET("/jobs", d.Job.List)
	protected.DELETE("/jobs/:id", d.Job.Delete)

	protected.POST("/applications/:jobId", d.Application.Apply)
	protected.GET("/applications", d.Application.List)
	protected.GET("/applications/:id", d.Application.Get)
	protected.PATCH("/applications/:id/status", d.Application.UpdateStatus)

	protected.GET("/stats", d.Stats.Get)
}
