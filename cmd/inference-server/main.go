// cmd/inference-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"churn-inference/internal/artifact"
	"churn-inference/internal/common/config"
	"churn-inference/internal/common/database"
	"churn-inference/internal/common/logger"
	"churn-inference/internal/common/observability"
	"churn-inference/internal/notify"
	"churn-inference/internal/prediction"
	"churn-inference/internal/server"
	"churn-inference/internal/store"
	predictchurn "churn-inference/internal/workers/predict-churn"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting churn inference server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("inference-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load Artifact Bundle ---
	// Loading failure is fatal: without the fitted transformers and the
	// classifier there is nothing to serve.
	bundle, err := artifact.Load(cfg.Artifacts.Dir)
	if err != nil {
		zapLog.Fatal("artifact bundle load failed", zap.Error(err), zap.String("dir", cfg.Artifacts.Dir))
	}
	zapLog.Info("Artifact bundle loaded",
		zap.String("dir", cfg.Artifacts.Dir),
		zap.Int("featureWidth", bundle.FeatureWidth()),
	)

	opts := prediction.Options{Observability: obs}
	var readiness []server.ReadinessCheck

	// --- Init PostgreSQL audit store with retry (optional) ---
	if cfg.Audit.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		opts.Audit = store.NewPredictionStore(pg)
		readiness = append(readiness, server.ReadinessCheck{Name: "postgres", Check: pg.Ping})
	}

	// --- Init Redis result cache with retry (optional) ---
	if cfg.Cache.Enabled {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")

		opts.Cache = redisClient
		opts.CacheTTL = time.Duration(cfg.Cache.TTL) * time.Second
		readiness = append(readiness, server.ReadinessCheck{Name: "redis", Check: redisClient.Ping})
	}

	// --- Init churn notifier (optional) ---
	if cfg.Notifications.Enabled {
		notifier, err := notify.NewChurnNotifier(ctx, cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("notifier init failed", zap.Error(err))
		}
		opts.Notifier = notifier
		opts.MinAlertProbability = cfg.Notifications.MinProbability
		zapLog.Info("Churn notifier initialized", zap.String("region", cfg.Notifications.Region))
	}

	// --- Prediction Service ---
	svc, err := prediction.NewService(bundle, log, opts)
	if err != nil {
		zapLog.Fatal("prediction service init failed", zap.Error(err))
	}

	// --- Zeebe worker (optional) ---
	if cfg.Camunda.Enabled {
		var zeebeClient zbc.Client
		err = retryWithBackoff(func() error {
			var err error
			zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
			})
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer zeebeClient.Close()
		zapLog.Info("Zeebe client connected successfully")

		handler := predictchurn.NewHandler(
			&predictchurn.Config{
				Timeout: time.Duration(cfg.Camunda.Timeout) * time.Millisecond,
			},
			svc, log,
		)
		zeebeClient.NewJobWorker().
			JobType(predictchurn.TaskType).
			Handler(handler.Handle).
			MaxJobsActive(cfg.Camunda.MaxJobsActive).
			Timeout(time.Duration(cfg.Camunda.Timeout) * time.Millisecond).
			Open()
		zapLog.Info("worker started",
			zap.String("taskType", predictchurn.TaskType),
			zap.Int("maxJobsActive", cfg.Camunda.MaxJobsActive),
		)
	}

	// --- HTTP Server ---
	srv := server.NewServer(cfg.HTTP, svc, log, readiness...)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sigCh:
			zapLog.Info("Shutdown signal received, draining requests...")
		case <-gCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLog.Fatal("server exited with error", zap.Error(err))
	}
	zapLog.Info("Inference server stopped")
}
