// internal/workers/data-access/migrate-resources/handler.go
package migrateresources

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/models"
)

const (
	TaskType = "migrate-profile-resources"
)

// ProfileStore persists a rewritten profile collection. Both the file and
// the Postgres sources implement it.
type ProfileStore interface {
	SaveProfiles(ctx context.Context, profiles []*models.Profile) error
}

type Handler struct {
	config *Config
	source dataset.Source
	store  ProfileStore

	mu  sync.Mutex
	rng *rand.Rand

	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, source dataset.Source, store ProfileStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Handler{
		config:       config,
		source:       source,
		store:        store,
		rng:          rand.New(rand.NewSource(seed)),
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
	if job.Variables != "" {
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			err = apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
			h.errorHandler.HandleJobError(context.Background(), client, job, err)
			return err
		}
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
		input = &Input{}
	}

	// always read the backing store, never a cached copy
	ds, err := dataset.Reload(ctx, h.source)
	if err != nil {
		return nil, err
	}

	profiles := dataset.CloneProfiles(ds.Profiles)
	h.mu.Lock()
	migrated := dataset.MigrateResources(profiles, h.rng)
	h.mu.Unlock()

	output := &Output{
		Migrated:     migrated,
		ProfileCount: len(profiles),
		DryRun:       input.DryRun,
	}
	if migrated == 0 || input.DryRun {
		h.logger.Info("resource migration finished without writing", map[string]interface{}{
			"migrated": migrated,
			"dryRun":   input.DryRun,
		})
		return output, nil
	}

	if h.store == nil {
		return nil, apperrors.NewDatasetPersistFailedError(
			fmt.Errorf("data source %q cannot store profiles", h.source.Name()))
	}
	if err := h.store.SaveProfiles(ctx, profiles); err != nil {
		return nil, apperrors.NewDatasetPersistFailedError(err)
	}
	output.Persisted = true

	if err := dataset.Invalidate(ctx, h.source); err != nil {
		// the cache expires on its own; readers see old weights until then
		h.logger.Warn("failed to invalidate dataset cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	h.logger.Info("resources migrated", map[string]interface{}{
		"migrated": migrated,
		"profiles": len(profiles),
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
