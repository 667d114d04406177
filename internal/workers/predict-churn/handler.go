// internal/workers/predict-churn/handler.go
package predictchurn

import (
	"context"
	"encoding/json"
	"fmt"

	"churn-inference/internal/common/errors"
	"churn-inference/internal/common/logger"
	"churn-inference/internal/prediction"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "predict-churn"
)

type Handler struct {
	config    *Config
	service   *prediction.Service
	logger    logger.Logger
	errorsOut *errors.ErrorHandler
}

func NewHandler(config *Config, service *prediction.Service, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		service:   service,
		logger:    scoped,
		errorsOut: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorsOut.HandleJobError(ctx, client, job,
			errors.NewInputValidationFailedError(fmt.Sprintf("parse job variables: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		// Per-request prediction errors are logically invalid input and
		// carry zero retries; the error handler escalates them as BPMN
		// errors with the structured code.
		h.errorsOut.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.service.Predict(ctx, &input.CustomerRecord)
	if err != nil {
		return nil, err
	}
	return &Output{
		Prediction:  result.Outcome,
		Probability: result.Probability,
		Label:       result.Label,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
