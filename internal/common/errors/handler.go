package errors

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler reports job errors back to the workflow engine with
// standardized codes.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError handles any error in a worker job. Encoding-contract and
// validation errors carry zero retries: the same record always fails again.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := AsStandardError(err)

	h.logError(job, stdErr)

	if IsRetryableErrorCode(stdErr.Code) && job.Retries > 0 {
		h.failJobWithRetries(ctx, client, job, stdErr, GetRetryCount(stdErr.Code))
	} else {
		h.throwJobError(ctx, client, job, stdErr)
	}
}

func (h *ErrorHandler) errorVariables(stdErr *StandardError) map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    string(stdErr.Code),
		"errorMessage": stdErr.Message,
		"errorDetails": stdErr.Details,
		"retryable":    stdErr.Retryable,
		"timestamp":    stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}
	return vars
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, stdErr *StandardError, maxRetries int) {
	retriesToUse := maxRetries
	if job.Retries > 0 && int(job.Retries) < maxRetries {
		retriesToUse = int(job.Retries)
	}

	varsJSON, _ := json.Marshal(h.errorVariables(stdErr))

	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retriesToUse)).
		ErrorMessage(stdErr.Message)

	if varsJSONStr := string(varsJSON); varsJSONStr != "null" {
		cmdWithVars, err := cmd.VariablesFromString(varsJSONStr)
		if err == nil {
			_, _ = cmdWithVars.Send(ctx)
			return
		}
	}

	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) throwJobError(ctx context.Context, client worker.JobClient, job entities.Job, stdErr *StandardError) {
	varsJSON, _ := json.Marshal(h.errorVariables(stdErr))

	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(string(stdErr.Code)).
		ErrorMessage(stdErr.Message)

	if varsJSONStr := string(varsJSON); varsJSONStr != "null" {
		cmdWithVars, err := cmd.VariablesFromString(varsJSONStr)
		if err == nil {
			_, _ = cmdWithVars.Send(ctx)
			return
		}
	}

	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"message":          stdErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          GetRetryCount(stdErr.Code),
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
