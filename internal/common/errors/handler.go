// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws jobs according to the error code.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Resolution is the outcome chosen for a failed job.
type Resolution struct {
	Standard *StandardError
	BPMN     *BPMNError
	// Throw is true when the error goes to a BPMN boundary event instead of
	// being retried by the engine.
	Throw   bool
	Retries int
}

// Resolve decides how a job failing with err should be reported. A
// retryable error with retries left fails the job; everything else throws.
func (h *ErrorHandler) Resolve(job entities.Job, err error) Resolution {
	stdErr := h.normalizeError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	res := Resolution{Standard: stdErr, BPMN: bpmnErr, Throw: true}
	if bpmnErr.Retries > 0 && job.GetRetries() > 0 {
		res.Throw = false
		// remaining engine retries win over the recommended count
		res.Retries = bpmnErr.Retries
		if int(job.GetRetries())-1 < res.Retries {
			res.Retries = int(job.GetRetries()) - 1
		}
	}
	return res
}

// HandleJobError handles any error in a worker job
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	res := h.Resolve(job, err)
	h.logError(job, res)

	if res.Throw {
		h.throwBPMNError(ctx, client, job, res.BPMN)
		return
	}
	h.failJobWithRetries(ctx, client, job, res.BPMN, res.Retries)
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}

	code := Classify(err)
	msg := "Unexpected error"
	if code != ErrCodeInternal {
		msg = string(code)
	}
	return &StandardError{
		Code:      code,
		Message:   msg,
		Details:   err.Error(),
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) {
	cmd := client.NewFailJobCommand().
		JobKey(job.GetKey()).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message + ": " + bpmnErr.Details)

	withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		// send without variables
		if _, sendErr := cmd.Send(ctx); sendErr != nil {
			h.logSendFailure(job, sendErr)
		}
		return
	}
	if _, err := withVars.Send(ctx); err != nil {
		h.logSendFailure(job, err)
	}
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.GetKey()).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables())
	if err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			if _, err := withVars.Send(ctx); err != nil {
				h.logSendFailure(job, err)
			}
			return
		}
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logSendFailure(job, err)
	}
}

func (h *ErrorHandler) logError(job entities.Job, res Resolution) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":           job.GetKey(),
		"jobType":          job.GetType(),
		"errorCode":        string(res.Standard.Code),
		"bpmnErrorCode":    res.BPMN.Code,
		"message":          res.BPMN.Message,
		"details":          res.Standard.Details,
		"retryable":        res.Standard.Retryable,
		"retries":          res.Retries,
		"thrown":           res.Throw,
		"errorCategory":    GetErrorCategory(res.Standard.Code),
		"workflowInstance": job.GetProcessInstanceKey(),
	})
}

func (h *ErrorHandler) logSendFailure(job entities.Job, err error) {
	h.logger.Error("failed to report job failure", map[string]interface{}{
		"jobKey": job.GetKey(),
		"error":  err.Error(),
	})
}
