// internal/workers/data-access/index-community/handler.go
package indexcommunity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/common/observability"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/scoring"
)

const (
	TaskType = "index-micro-community"
)

// snapshotMapping keeps member ids and titles as keywords so dashboards can
// aggregate on them.
const snapshotMapping = `{
  "mappings": {
    "properties": {
      "snapshotId": {"type": "keyword"},
      "issueIndex": {"type": "integer"},
      "issueTitle": {"type": "keyword"},
      "category":   {"type": "keyword"},
      "threshold":  {"type": "float"},
      "count":      {"type": "integer"},
      "total":      {"type": "integer"},
      "summary":    {"type": "keyword"},
      "createdAt":  {"type": "date"},
      "members": {
        "type": "nested",
        "properties": {
          "profileId":    {"type": "keyword"},
          "name":         {"type": "text"},
          "total":        {"type": "float"},
          "totalDisplay": {"type": "keyword"}
        }
      }
    }
  }
}`

// Indexer is the part of the Elasticsearch client this worker needs.
type Indexer interface {
	EnsureIndex(ctx context.Context, index string, mapping []byte) error
	IndexDocument(ctx context.Context, index, id string, body []byte) error
}

type Handler struct {
	config       *Config
	source       dataset.Source
	indexer      Indexer
	obs          *observability.Observability
	now          func() time.Time
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, source dataset.Source, indexer Indexer, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		source:       source,
		indexer:      indexer,
		obs:          obs,
		now:          time.Now,
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
	if input.SnapshotID != "" {
		if _, err := uuid.Parse(input.SnapshotID); err != nil {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("snapshotId %q is not a UUID", input.SnapshotID))
		}
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

	snapshotID := input.SnapshotID
	if snapshotID == "" {
		snapshotID = uuid.NewString()
	}
	snapshot := community.Snapshot(snapshotID, sel.IssueIndex, issue.Category, h.now())

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, apperrors.NewIndexFailedError(h.config.Index, err)
	}
	if err := h.indexer.EnsureIndex(ctx, h.config.Index, []byte(snapshotMapping)); err != nil {
		return nil, apperrors.NewIndexFailedError(h.config.Index, err)
	}
	if err := h.indexer.IndexDocument(ctx, h.config.Index, snapshotID, body); err != nil {
		return nil, apperrors.NewIndexFailedError(h.config.Index, err)
	}
	h.obs.RecordCommunitySize(ctx, issue.Title, community.Count)

	h.logger.Info("micro-community indexed", map[string]interface{}{
		"snapshotId": snapshotID,
		"index":      h.config.Index,
		"summary":    snapshot.Summary,
	})

	return &Output{
		SnapshotID: snapshotID,
		Index:      h.config.Index,
		IssueTitle: issue.Title,
		Summary:    snapshot.Summary,
		Count:      snapshot.Count,
		Indexed:    true,
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
