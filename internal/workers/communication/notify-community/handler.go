// internal/workers/communication/notify-community/handler.go
package notifycommunity

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/common/validation"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/scoring"
)

const (
	TaskType = "notify-micro-community"

	ChannelSNS   = "sns"
	ChannelEmail = "email"
)

// Publisher fans a summary out to topic subscribers.
type Publisher interface {
	Publish(ctx context.Context, subject, message string, attributes map[string]string) (string, error)
}

// Mailer delivers a plain-text summary to named recipients.
type Mailer interface {
	SendText(ctx context.Context, to []string, subject, body string) (string, error)
}

type Handler struct {
	config       *Config
	source       dataset.Source
	publisher    Publisher
	mailer       Mailer
	newID        func() string
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. A nil publisher or mailer disables that
// channel.
func NewHandler(config *Config, source dataset.Source, publisher Publisher, mailer Mailer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		source:       source,
		publisher:    publisher,
		mailer:       mailer,
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

	recipients := input.Recipients
	if len(recipients) == 0 {
		recipients = h.config.Recipients
	}
	for _, addr := range recipients {
		if !validation.ValidateEmail(addr) {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid recipient %q", addr))
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

	output := &Output{
		NotificationID: h.newID(),
		SnapshotID:     input.SnapshotID,
		IssueTitle:     issue.Title,
		Summary:        community.Summary(),
		Channels:       []string{},
	}
	subject := subjectFor(community)
	body := bodyFor(community, h.config.MaxListed)

	if h.publisher != nil {
		id, err := h.publisher.Publish(ctx, subject, body, map[string]string{
			"notificationId": output.NotificationID,
			"issueIndex":     strconv.Itoa(sel.IssueIndex),
			"category":       issue.Category,
			"count":          strconv.Itoa(community.Count),
		})
		if err != nil {
			return nil, apperrors.NewNotificationSendFailedError(ChannelSNS, err)
		}
		output.SNSMessageID = id
		output.Channels = append(output.Channels, ChannelSNS)
	}

	if h.mailer != nil && len(recipients) > 0 {
		id, err := h.mailer.SendText(ctx, recipients, subject, body)
		if err != nil {
			return nil, apperrors.NewNotificationSendFailedError(ChannelEmail, err)
		}
		output.EmailMessageID = id
		output.Channels = append(output.Channels, ChannelEmail)
	}

	if len(output.Channels) == 0 {
		h.logger.Warn("no notification channel configured, summary not sent", map[string]interface{}{
			"issue":   issue.Title,
			"summary": output.Summary,
		})
		return output, nil
	}

	h.logger.Info("micro-community announced", map[string]interface{}{
		"notificationId": output.NotificationID,
		"channels":       output.Channels,
		"summary":        output.Summary,
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
