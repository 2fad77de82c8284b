// internal/workers/explorer/build-micro-community/handler.go
package buildmicrocommunity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/common/metrics"
	"civic-relevance-workers/internal/common/observability"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/scoring"
)

const (
	TaskType = "build-micro-community"
)

type Handler struct {
	config       *Config
	source       dataset.Source
	obs          *observability.Observability
	newID        func() string
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, source dataset.Source, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		source:       source,
		obs:          obs,
		newID:        uuid.NewString,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		err = apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(context.Background(), client, job, err)
		return err
	}

	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	ds, err := dataset.Load(ctx, h.source)
	if err != nil {
		return nil, err
	}

	sel := scoring.ResolveSelection(input.IssueIndex, input.Threshold, h.config.DefaultThreshold)
	if err := sel.Validate(len(ds.Issues)); err != nil {
		return nil, err
	}
	issue, _ := ds.Issue(sel.IssueIndex)

	community, err := scoring.BuildMicroCommunity(ds.Profiles, issue, sel.Threshold)
	if err != nil {
		return nil, err
	}

	metrics.MicroCommunitySize.WithLabelValues(issue.Title).Observe(float64(community.Count))
	metrics.ProfilesScored.WithLabelValues(issue.Title, "true").Add(float64(community.Count))
	metrics.ProfilesScored.WithLabelValues(issue.Title, "false").Add(float64(community.Total - community.Count))
	h.obs.RecordCommunitySize(ctx, issue.Title, community.Count)

	snapshotID := h.newID()
	h.logger.Info("micro-community built", map[string]interface{}{
		"snapshotId": snapshotID,
		"issue":      issue.Title,
		"summary":    community.Summary(),
	})

	return &Output{
		SnapshotID: snapshotID,
		IssueIndex: sel.IssueIndex,
		IssueTitle: issue.Title,
		Threshold:  sel.Threshold,
		Summary:    community.Summary(),
		Count:      community.Count,
		Total:      community.Total,
		Members:    community.Members,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
