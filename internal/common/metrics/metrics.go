// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ProfilesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_profiles_scored_total",
			Help: "Profiles scored against an issue, by inclusion outcome",
		},
		[]string{"issue", "included"},
	)

	MicroCommunitySize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_micro_community_size",
			Help:    "Members per computed micro-community",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"issue"},
	)

	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_dataset_loads_total",
			Help: "Dataset loads by source and outcome",
		},
		[]string{"source", "outcome"},
	)
)

// ObserveJob records the outcome of one job. An empty errorCode means success.
func ObserveJob(taskType string, started time.Time, errorCode string) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// ObserveScore counts one relevance evaluation.
func ObserveScore(issue string, included bool) {
	label := "false"
	if included {
		label = "true"
	}
	ProfilesScored.WithLabelValues(issue, label).Inc()
}

// ObserveDatasetLoad counts a dataset load attempt.
func ObserveDatasetLoad(source string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	DatasetLoads.WithLabelValues(source, outcome).Inc()
}
