package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/IEEECS-VIT/assignofast-sync/api/swagger"
	"github.com/IEEECS-VIT/assignofast-sync/internal/client/backend"
	"github.com/IEEECS-VIT/assignofast-sync/internal/client/vtop"
	"github.com/IEEECS-VIT/assignofast-sync/internal/handler"
	"github.com/IEEECS-VIT/assignofast-sync/internal/middleware"
	"github.com/IEEECS-VIT/assignofast-sync/internal/repository"
	"github.com/IEEECS-VIT/assignofast-sync/internal/service"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/cache"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/config"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/jobs"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/logger"
	corsmiddleware "github.com/IEEECS-VIT/assignofast-sync/pkg/middleware/cors"
	reqidmiddleware "github.com/IEEECS-VIT/assignofast-sync/pkg/middleware/requestid"
)

// @title AssignoFast Sync Agent
// @version 0.1.0
// @description Headless portal sync agent for the AssignoFast backend
// @BasePath /
// @schemes http

// queueTrigger adapts the job queue to the sync trigger interface.
type queueTrigger struct {
	queue *jobs.Queue
}

func (t *queueTrigger) TriggerSync(reason string) error {
	return t.queue.Enqueue(jobs.Job{Type: "pipeline_run", Payload: reason})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := repository.NewStateRepository(redisClient, logr)
	portal := vtop.New(cfg.VTOP, logr)
	backendClient := backend.New(cfg.Backend, logr)

	metrics := service.NewMetricsService()
	notifier := service.NewLogNotifier(logr)
	timetables := service.NewTimetableService(logr)
	assignments := service.NewAssignmentService(logr)
	syncSvc := service.NewSyncService(store, backendClient, notifier, metrics, logr)
	pipeline := service.NewPipelineService(portal, store, timetables, assignments, syncSvc, metrics, logr)
	authSvc := service.NewAuthService(backendClient, store, validator.New(), logr)
	exportSvc := service.NewExportService(store)

	queue := jobs.NewQueue("sync", func(ctx context.Context, job jobs.Job) error {
		reason, _ := job.Payload.(string)
		logr.Info("pipeline run starting", zap.String("job_id", job.ID), zap.String("reason", reason))
		_, err := pipeline.Run(ctx)
		return err
	}, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: cfg.Sync.WorkerRetries,
		RetryDelay: cfg.Sync.RetryDelay,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	trigger := &queueTrigger{queue: queue}
	semesterSvc := service.NewSemesterService(store, portal, trigger, logr)

	go runTicker(ctx, cfg.Sync.Interval, trigger, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	authHandler := handler.NewAuthHandler(authSvc)
	semesterHandler := handler.NewSemesterHandler(semesterSvc)
	syncHandler := handler.NewSyncHandler(trigger, authSvc, pipeline)
	snapshotHandler := handler.NewSnapshotHandler(store)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	r.POST("/auth/session", authHandler.SignIn)
	r.GET("/auth/session", authHandler.Status)
	r.DELETE("/auth/session", authHandler.SignOut)

	r.GET("/semesters", semesterHandler.List)
	r.POST("/semesters/refresh", semesterHandler.Refresh)
	r.PUT("/semesters/current", semesterHandler.Select)

	r.POST("/sync", syncHandler.Trigger)
	r.GET("/sync/status", syncHandler.Status)

	r.GET("/timetable", snapshotHandler.Timetable)
	r.GET("/assignments", snapshotHandler.Assignments)

	if cfg.Exports.Enabled {
		r.GET("/timetable/export", exportHandler.Timetable)
		r.GET("/assignments/export", exportHandler.Assignments)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("agent starting", "addr", addr, "env", cfg.Env, "sync_interval", cfg.Sync.Interval.String())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// runTicker enqueues a pipeline run on every interval tick until shutdown.
func runTicker(ctx context.Context, interval time.Duration, trigger service.SyncTrigger, logr *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := trigger.TriggerSync("interval"); err != nil {
				logr.Warn("failed to enqueue periodic sync", zap.Error(err))
			}
		}
	}
}
