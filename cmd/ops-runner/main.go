// cmd/ops-runner/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"platform-workers/internal/audit"
	"platform-workers/internal/common/aws"
	"platform-workers/internal/common/billing"
	"platform-workers/internal/common/config"
	"platform-workers/internal/common/database"
	commonerrors "platform-workers/internal/common/errors"
	"platform-workers/internal/common/httpclient"
	"platform-workers/internal/common/logger"
	"platform-workers/internal/common/metrics"
	"platform-workers/internal/common/observability"
	"platform-workers/internal/models"
	"platform-workers/internal/store"
	"platform-workers/pkg/registry"

	cs "platform-workers/internal/workers/billing/check-subscription"
	ac "platform-workers/internal/workers/scaling/apply-capacity"
	dr "platform-workers/internal/workers/vendorops/dispatch-request"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ops runner...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("ops-runner")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
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

	// --- Init user store ---
	var userStore store.UserStore = store.NewStaticUserStore()
	if cfg.Store.UserStore == "postgres" {
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
		userStore = store.NewPostgresUserStore(pg.DB)
	}

	// --- Init audit trail ---
	var auditRecorder *audit.Recorder
	if cfg.Audit.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		auditRecorder = audit.NewRecorder(esClient.Client, cfg.Audit.Index, log)
	}

	// --- Init cloud clients ---
	asClient, err := aws.NewAutoScalingClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("autoscaling client init failed", zap.Error(err))
	}
	elbClient, err := aws.NewELBV2Client(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("load balancing client init failed", zap.Error(err))
	}
	var notifier ac.Notifier
	if cfg.AWS.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		notifier = snsClient
	}

	gateway := billing.NewStripeGateway(cfg.Billing.Stripe.APIKey)

	zapLog.Info("All external service clients initialized")

	// --- Task registry ---
	taskRegistry, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Warn("task registry unavailable, payload validation disabled", zap.Error(err))
	}

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Build handlers ---
	checkHandler := cs.NewHandler(
		&cs.Config{
			Timeout:  config.GetDuration(cfg.Billing.Stripe.Timeout),
			CacheTTL: time.Duration(cfg.Billing.Stripe.CacheTTL) * time.Second,
		},
		gateway, userStore, redisClient.Client, log,
	)

	dispatchCfg := &dr.Config{
		Routes:          cfg.Vendors.Routes,
		Timeout:         config.GetDuration(cfg.Vendors.Timeout),
		ValidatePayload: cfg.Vendors.ValidatePayload,
	}
	if taskRegistry != nil {
		if task := taskRegistry.FindByTaskType(dr.TaskType); task != nil {
			dispatchCfg.PayloadSchema = task.InputSchema
		}
	}
	dispatchHandler := dr.NewHandler(dispatchCfg, httpclient.NewClient(dispatchCfg.Timeout), log)

	scaleHandler := ac.NewHandler(
		&ac.Config{
			AutoScalingGroup:    cfg.AWS.AutoScalingGroup,
			DesiredCapacity:     cfg.AWS.DesiredCapacity,
			LoadBalancer:        cfg.AWS.LoadBalancer,
			LaunchConfiguration: cfg.AWS.LaunchConfiguration,
			TargetGroupARN:      cfg.AWS.TargetGroupARN,
			HealthCheckPort:     cfg.AWS.HealthCheckPort,
			NotifyTopicARN:      cfg.AWS.SNS.TopicARN,
		},
		asClient, elbClient, notifier, log,
	)

	runner := &taskRunner{
		logger:   log,
		reporter: commonerrors.NewReporter(log),
		obs:      obs,
		audit:    auditRecorder,
	}

	// Each task is independent; a failure in one never stops the next.
	runner.run(ctx, cs.TaskType, func(ctx context.Context) (interface{}, error) {
		return checkHandler.Execute(ctx, &cs.Input{
			UserID:         cfg.Driver.UserID,
			SubscriptionID: cfg.Driver.SubscriptionID,
		})
	})

	runner.run(ctx, dr.TaskType, func(ctx context.Context) (interface{}, error) {
		return dispatchHandler.Execute(ctx, &dr.Input{
			Vendor:   cfg.Driver.Vendor,
			Endpoint: cfg.Driver.Endpoint,
			Payload:  cfg.Driver.Payload,
			Headers:  cfg.Driver.Headers,
		})
	})

	runner.run(ctx, ac.TaskType, func(ctx context.Context) (interface{}, error) {
		return scaleHandler.Execute(ctx, &ac.Input{})
	})

	zapLog.Info("All tasks executed, ops runner finished")
}

type taskRunner struct {
	logger   logger.Logger
	reporter *commonerrors.Reporter
	obs      *observability.Observability
	audit    *audit.Recorder
}

// run executes one task, records its outcome, and swallows any failure.
func (r *taskRunner) run(ctx context.Context, taskType string, fn func(context.Context) (interface{}, error)) {
	start := time.Now()
	output, err := fn(ctx)
	duration := time.Since(start)

	metrics.TaskRunDuration.WithLabelValues(taskType).Observe(duration.Seconds())
	r.obs.RecordTaskDuration(ctx, duration, taskType)

	run := models.TaskRun{
		TaskType:   taskType,
		Status:     models.TaskRunCompleted,
		DurationMS: duration.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}

	if err != nil {
		stdErr := r.reporter.Report(taskType, err)
		metrics.TaskRunsFailed.WithLabelValues(taskType, string(stdErr.Code)).Inc()
		r.obs.RecordTaskProcessed(ctx, taskType, "failed")
		run.Status = models.TaskRunFailed
		run.ErrorCode = string(stdErr.Code)
	} else {
		metrics.TaskRunsCompleted.WithLabelValues(taskType).Inc()
		r.obs.RecordTaskProcessed(ctx, taskType, "completed")
		r.logger.Info("task completed", map[string]interface{}{
			"taskType":   taskType,
			"durationMs": duration.Milliseconds(),
			"output":     output,
		})
	}

	if r.audit != nil {
		if auditErr := r.audit.Record(ctx, run); auditErr != nil {
			r.logger.WithError(auditErr).Warn("audit record failed", map[string]interface{}{
				"taskType": taskType,
			})
		}
	}
}
