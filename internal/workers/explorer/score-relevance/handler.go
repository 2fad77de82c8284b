// internal/workers/explorer/score-relevance/handler.go
package scorerelevance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/common/metrics"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/scoring"
)

const (
	TaskType = "score-relevance"
)

var (
	ErrMissingProfileID = errors.New("INVALID_INPUT")
)

type Handler struct {
	config       *Config
	source       dataset.Source
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, source dataset.Source, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		source:       source,
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
		return nil, fmt.Errorf("%w: input cannot be nil", ErrMissingProfileID)
	}
	if input.ProfileID == "" {
		return nil, fmt.Errorf("%w: profileId is required", ErrMissingProfileID)
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

	profile, err := ds.Profile(input.ProfileID)
	if err != nil {
		return nil, err
	}

	res, err := scoring.ScoreRelevance(profile, issue, sel.Threshold)
	if err != nil {
		return nil, err
	}
	metrics.ObserveScore(issue.Title, res.Included)

	h.logger.Debug("profile scored", map[string]interface{}{
		"profileId": profile.ID,
		"issue":     issue.Title,
		"total":     res.TotalDisplay,
		"included":  res.Included,
	})

	return &Output{
		ProfileID:  profile.ID,
		Name:       profile.Name,
		IssueTitle: issue.Title,
		Threshold:  sel.Threshold,
		Relevance:  res,
		Status:     scoring.Status(res),
		Reasons:    scoring.ReasonsOrDefault(res),
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
