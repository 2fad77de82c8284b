// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"civic-relevance-workers/internal/common/config"
	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/common/metrics"
	"civic-relevance-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself and returns the error it
// reported, or nil on success.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// JobHandlerFunc adapts a function to JobHandler.
type JobHandlerFunc func(client worker.JobClient, job entities.Job) error

func (f JobHandlerFunc) Handle(client worker.JobClient, job entities.Job) error {
	return f(client, job)
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType whose handler is instrumented
// with Prometheus and OpenTelemetry job metrics.
func NewWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler JobHandler,
	log logger.Logger,
	obs *observability.Observability,
) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, log, obs)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(taskType + "-worker").
		Open()

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

// Instrument wraps handler so every job updates the active gauge, the
// duration histogram and the completed/failed counters.
func Instrument(taskType string, handler JobHandler, log logger.Logger, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		started := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		status, code := "success", ""
		if err := handler.Handle(client, job); err != nil {
			status, code = "failure", string(apperrors.Classify(err))
			log.Debug("handler reported error", map[string]interface{}{
				"jobKey":    job.GetKey(),
				"errorCode": code,
			})
		}

		metrics.ObserveJob(taskType, started, code)
		ctx := context.Background()
		obs.RecordJobProcessed(ctx, taskType, status)
		obs.RecordJobDuration(ctx, taskType, time.Since(started), status)
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

// Stop closes the job worker and waits for in-flight jobs.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
