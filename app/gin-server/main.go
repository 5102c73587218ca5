package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/huffaz-portal/config"
	"github.com/yoockh/huffaz-portal/internal/api/handlers"
	"github.com/yoockh/huffaz-portal/internal/api/middleware"
	"github.com/yoockh/huffaz-portal/internal/api/routes"
	"github.com/yoockh/huffaz-portal/internal/api/validation"
	"github.com/yoockh/huffaz-portal/internal/auth"
	"github.com/yoockh/huffaz-portal/internal/cache"
	"github.com/yoockh/huffaz-portal/internal/events"
	"github.com/yoockh/huffaz-portal/internal/logger"
	mongorepo "github.com/yoockh/huffaz-portal/internal/repositories/mongo"
	pgrepo "github.com/yoockh/huffaz-portal/internal/repositories/postgres"
	"github.com/yoockh/huffaz-portal/internal/services"
	"github.com/yoockh/huffaz-portal/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.Env)

	// PostgreSQL
	if err := config.InitPostgres(cfg.PostgresURI); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(config.PostgresDB); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	checks := map[string]handlers.Pinger{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := config.PostgresDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	// MongoDB (assessment history, optional)
	var assessments mongorepo.AssessmentRepository
	if cfg.MongoURI != "" {
		if err := config.InitMongo(cfg.MongoURI); err != nil {
			log.Fatalf("MongoDB init error: %v", err)
		}
		if err := config.EnsureMongoIndexes(cfg.MongoDB); err != nil {
			log.WithError(err).Warn("MongoDB index setup failed")
		}
		assessments = mongorepo.NewAssessmentRepo(config.MongoClient.Database(cfg.MongoDB))
		checks["mongo"] = func(ctx context.Context) error { return config.MongoClient.Ping(ctx, nil) }
		log.Info("MongoDB connected")
	} else {
		log.Warn("MONGO_URI not set; assessment history disabled")
	}

	// Redis (cache, revocation, rate limiting, optional)
	var (
		jobCache     cache.Cache = cache.Noop{}
		revoker      auth.Revoker
		loginLimiter *middleware.RedisLimiter
		applyLimiter *middleware.RedisLimiter
	)
	if cfg.RedisAddr != "" {
		if err := config.InitRedis(cfg.RedisAddr); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		jobCache = cache.NewRedisCache(config.RedisClient)
		revoker = auth.NewRedisRevoker(config.RedisClient)
		loginLimiter = middleware.NewRedisLimiter(config.RedisClient, 10, time.Minute, "rl:login", log)
		applyLimiter = middleware.NewRedisLimiter(config.RedisClient, 30, time.Minute, "rl:apply", log)
		checks["redis"] = func(ctx context.Context) error { return config.RedisClient.Ping(ctx).Err() }
		log.Info("Redis connected")
	} else {
		log.Warn("REDIS_ADDR not set; caching, logout revocation and rate limiting disabled")
	}

	// Document storage
	var (
		uploader  storage.Uploader
		uploadDir string
	)
	if cfg.GCSBucket != "" {
		gcsUp, err := storage.NewGCSUploader(context.Background(), cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcsUp.Close()
		uploader = gcsUp
	} else {
		uploadDir = cfg.UploadDir
		uploader = storage.NewLocalUploader(uploadDir, "/uploads")
		log.WithField("dir", uploadDir).Info("storing uploads on local disk")
	}

	// Domain events
	var publisher events.Publisher = events.Noop{}
	if cfg.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.SessionTTL, revoker)

	users := pgrepo.NewUserRepo(config.PostgresDB)
	profiles := pgrepo.NewProfileRepo(config.PostgresDB)
	jobs := pgrepo.NewJobRepo(config.PostgresDB)
	apps := pgrepo.NewApplicationRepo(config.PostgresDB)

	authSvc := services.NewAuthService(users, tokens, cfg.AllowAdminSignup, publisher, log)
	profileSvc := services.NewProfileService(users, profiles, assessments, uploader, log)
	jobSvc := services.NewJobService(jobs, jobCache, cfg.JobsCacheTTL, publisher, log)
	appSvc := services.NewApplicationService(apps, jobs, profiles, publisher, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.RegisterWithGin()

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.NewMetrics(prometheus.DefaultRegisterer).Middleware(),
	)

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:       tokens,
		Auth:         handlers.NewAuthHandler(authSvc, handlers.NewCookieHelper(cfg.IsProduction(), cfg.SessionTTL)),
		Jobs:         handlers.NewJobHandler(jobSvc),
		Application:  handlers.NewApplicationHandler(appSvc),
		Profile:      handlers.NewProfileHandler(profileSvc),
		MBTI:         handlers.NewMBTIHandler(),
		Health:       handlers.NewHealthHandler(checks),
		Web:          handlers.NewWebHandler(cfg.WebDir),
		LoginLimiter: loginLimiter,
		ApplyLimiter: applyLimiter,
		UploadDir:    uploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := config.CloseMongo(ctx); err != nil {
		log.WithError(err).Warn("MongoDB disconnect failed")
	}
	if err := config.CloseRedis(); err != nil {
		log.WithError(err).Warn("Redis close failed")
	}
	log.Info("server stopped")
}
