// internal/workers/expertise/rank-experts/handler.go
package rankexperts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/scoring"
)

const (
	TaskType = "rank-experts"
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
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}
	if input.Limit < 0 {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("limit must not be negative, got %d", input.Limit))
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

	ranked, err := scoring.RankExperts(ds.Profiles, issue, sel.Threshold)
	if err != nil {
		return nil, err
	}

	output := &Output{
		IssueTitle: issue.Title,
		Threshold:  sel.Threshold,
		Count:      len(ranked),
	}
	if len(ranked) == 0 {
		output.Experts = []scoring.RankedExpert{}
		output.Message = scoring.EmptyRankingMessage(sel.Threshold)
		return output, nil
	}

	output.TopExpertID = ranked[0].ProfileID
	if input.Limit > 0 && input.Limit < len(ranked) {
		ranked = ranked[:input.Limit]
	}
	output.Experts = ranked

	h.logger.Debug("experts ranked", map[string]interface{}{
		"issue":     issue.Title,
		"count":     output.Count,
		"topExpert": output.TopExpertID,
	})
	return output, nil
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
