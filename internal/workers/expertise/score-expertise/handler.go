// internal/workers/expertise/score-expertise/handler.go
package scoreexpertise

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/scoring"
)

const (
	TaskType = "score-expertise"
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

// execute scores expertise without a relevance gate; the ranking worker is
// the one that filters by threshold.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.ProfileID == "" {
		return nil, apperrors.NewInvalidInputError("profileId is required")
	}

	ds, err := dataset.Load(ctx, h.source)
	if err != nil {
		return nil, err
	}

	issue, err := ds.Issue(input.IssueIndex)
	if err != nil {
		return nil, err
	}
	profile, err := ds.Profile(input.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := scoring.ValidateProfile(profile); err != nil {
		return nil, err
	}

	res := scoring.ScoreExpertise(profile, issue)
	return &Output{
		ProfileID:    profile.ID,
		Name:         profile.Name,
		IssueTitle:   issue.Title,
		Expertise:    res,
		TotalDisplay: strconv.FormatFloat(res.Total, 'f', 1, 64),
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
