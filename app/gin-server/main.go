package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/revand/jobpilot/config"
	"github.com/revand/jobpilot/internal/api/handlers"
	"github.com/revand/jobpilot/internal/api/middleware"
	"github.com/revand/jobpilot/internal/api/routes"
	"github.com/revand/jobpilot/internal/auth"
	"github.com/revand/jobpilot/internal/cache"
	"github.com/revand/jobpilot/internal/logger"
	"github.com/revand/jobpilot/internal/models"
	"github.com/revand/jobpilot/internal/providers/llm"
	mongorepo "github.com/revand/jobpilot/internal/repositories/mongo"
	pgrepo "github.com/revand/jobpilot/internal/repositories/postgres"
	"github.com/revand/jobpilot/internal/services"
	"github.com/revand/jobpilot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// MongoDB (resumes, jobs, applications)
	mongoClient, err := config.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := config.EnsureMongoIndexes(mongoClient, cfg.MongoDBName); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	mongoDB := mongoClient.Database(cfg.MongoDBName)
	log.Info("MongoDB connected")

	// PostgreSQL (users, profiles)
	pg, err := config.NewPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := pg.AutoMigrate(&models.User{}, &models.Profile{}); err != nil {
		log.Fatalf("PostgreSQL migration error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Redis (stats cache)
	rdb, err := config.NewRedis(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	defer rdb.Close()
	log.Info("Redis connected")

	// Vertex AI Gemini (resume parsing + artifact generation)
	gemini, err := llm.NewVertexGemini(ctx, cfg.GCPProject, cfg.GCPLocation, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Vertex AI init error: %v", err)
	}
	defer gemini.Close()

	// GCS (raw resume archival, optional)
	var uploader storage.Uploader
	if cfg.ResumeBucket != "" {
		gcsUploader, err := storage.NewGCSUploader(ctx, cfg.ResumeBucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcsUploader.Close()
		uploader = gcsUploader
	} else {
		log.Warn("RESUME_BUCKET not set; resume archival disabled")
	}

	// Repositories
	users := pgrepo.NewUserRepo(pg)
	profiles := pgrepo.NewProfileRepo(pg)
	resumes := mongorepo.NewResumeRepo(mongoDB)
	jobs := mongorepo.NewJobRepo(mongoDB)
	applications := mongorepo.NewApplicationRepo(mongoDB)

	// Services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenLifetime)
	redisCache := cache.NewRedisCache(rdb)
	generator := services.NewArtifactGenerator(gemini)

	authSvc := services.NewAuthService(users, tokens)
	resumeSvc := services.NewResumeService(resumes, profiles, gemini, uploader, cfg.GenerateTimeout)
	jobSvc := services.NewJobService(jobs, redisCache)
	applicationSvc := services.NewApplicationService(jobs, resumes, applications, generator, redisCache, cfg.GenerateTimeout)
	statsSvc := services.NewStatsService(jobs, applications, redisCache)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:      tokens,
		Users:       users,
		Auth:        handlers.NewAuthHandler(authSvc),
		Resume:      handlers.NewResumeHandler(resumeSvc),
		Job:         handlers.NewJobHandler(jobSvc),
		Application: handlers.NewApplicationHandler(applicationSvc),
		Stats:       handlers.NewStatsHandler(statsSvc),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
