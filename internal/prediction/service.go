// internal/prediction/service.go
package prediction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	goerrors "errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"churn-inference/internal/artifact"
	"churn-inference/internal/common/database"
	"churn-inference/internal/common/errors"
	"churn-inference/internal/common/logger"
	"churn-inference/internal/common/metrics"
	"churn-inference/internal/common/observability"
	"churn-inference/internal/common/validation"
	"churn-inference/internal/encoding"
	"churn-inference/internal/models"
)

const cacheKeyPrefix = "churn:prediction:"

// AuditStore persists served predictions. Best-effort: failures are logged
// and never returned to callers.
type AuditStore interface {
	InsertPrediction(ctx context.Context, entry AuditEntry) error
}

// Notifier delivers high-probability churn alerts.
type Notifier interface {
	NotifyChurn(ctx context.Context, alert ChurnAlert) error
}

// Options carries the optional collaborators of a Service. Zero values
// disable the corresponding behavior.
type Options struct {
	Cache               *database.RedisClient
	CacheTTL            time.Duration
	Audit               AuditStore
	Notifier            Notifier
	MinAlertProbability float64
	Observability       *observability.Observability
}

// Service runs the full prediction pipeline: validate, encode, classify,
// map the class label to a business outcome. The bundle and encoder are
// immutable after construction; concurrent requests share them without
// locking.
type Service struct {
	bundle  *artifact.Bundle
	encoder *encoding.Encoder
	schema  validation.JSONSchema
	logger  logger.Logger
	opts    Options
}

// NewService builds a Service over a loaded artifact bundle.
func NewService(bundle *artifact.Bundle, log logger.Logger, opts Options) (*Service, error) {
	encoder, err := encoding.NewEncoder(bundle)
	if err != nil {
		return nil, err
	}
	return &Service{
		bundle:  bundle,
		encoder: encoder,
		schema:  buildInputSchema(bundle),
		logger:  log,
		opts:    opts,
	}, nil
}

// Predict scores one customer record. Failures are *errors.StandardError
// values; cache, audit and notification problems are logged but never
// surfaced.
func (s *Service) Predict(ctx context.Context, rec *models.CustomerRecord) (*Result, error) {
	start := time.Now()

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, s.fail(errors.NewPredictionFailedError(err))
	}

	// Required-field checks run against the payload as it arrived, not the
	// re-marshaled struct: a struct round trip materializes every field, so
	// an omitted one would look identical to a blank one.
	request := rec.RawPayload()
	if request == nil {
		request = payload
	}
	if err := s.validate(request); err != nil {
		return nil, s.fail(err)
	}

	key := cacheKeyPrefix + hashPayload(payload)
	if cached := s.cacheLookup(ctx, key); cached != nil {
		s.logger.Debug("prediction served from cache", map[string]interface{}{
			"customer_id": rec.CustomerID,
			"outcome":     cached.Outcome,
		})
		return cached, nil
	}

	result, err := s.predict(rec)
	if err != nil {
		return nil, s.fail(err)
	}

	metrics.PredictionsServed.WithLabelValues(result.Outcome).Inc()
	if s.opts.Observability != nil {
		s.opts.Observability.RecordPrediction(ctx, result.Outcome)
		s.opts.Observability.RecordPredictionDuration(ctx, time.Since(start), result.Outcome)
	}
	s.logger.Info("prediction served", map[string]interface{}{
		"customer_id": rec.CustomerID,
		"outcome":     result.Outcome,
		"probability": result.Probability,
	})

	s.cacheStore(ctx, key, result)
	s.audit(ctx, rec, payload, result)
	s.notify(ctx, rec, result)

	return result, nil
}

func (s *Service) predict(rec *models.CustomerRecord) (*Result, error) {
	features, err := s.encoder.Encode(rec)
	if err != nil {
		return nil, err
	}

	class, probability, err := s.bundle.Model.Predict(features)
	if err != nil {
		return nil, errors.NewPredictionFailedError(err)
	}

	label, err := s.bundle.Target.InverseTransform(class)
	if err != nil {
		return nil, errors.NewPredictionFailedError(err)
	}

	// Only the fitted positive label means churn; every other target label
	// maps to the negative outcome.
	outcome := OutcomeNoChurn
	if label == "Yes" {
		outcome = OutcomeChurn
	}

	return &Result{
		Outcome:     outcome,
		Label:       label,
		Probability: probability,
	}, nil
}

func (s *Service) validate(payload []byte) error {
	var input map[string]interface{}
	if err := json.Unmarshal(payload, &input); err != nil {
		return errors.NewInputValidationFailedError(err.Error())
	}

	result := validation.ValidateInput(input, s.schema)
	if !result.Valid {
		return errors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

func (s *Service) cacheLookup(ctx context.Context, key string) *Result {
	if s.opts.Cache == nil {
		return nil
	}
	raw, err := s.opts.Cache.Get(ctx, key)
	if err != nil {
		// A miss is not a failure; anything else means the cache is down
		// and the prediction proceeds without it.
		if !goerrors.Is(err, redis.Nil) {
			s.reportCacheError("read", err)
		}
		return nil
	}
	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	metrics.CacheHits.Inc()
	result.Cached = true
	return &result
}

func (s *Service) cacheStore(ctx context.Context, key string, result *Result) {
	if s.opts.Cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.opts.Cache.Set(ctx, key, string(raw), s.opts.CacheTTL); err != nil {
		s.reportCacheError("write", err)
	}
}

func (s *Service) reportCacheError(op string, err error) {
	cacheErr := errors.NewCacheUnavailableError(err)
	metrics.PredictionErrors.WithLabelValues(string(cacheErr.Code)).Inc()
	s.logger.Warn("prediction cache unavailable", map[string]interface{}{
		"operation":  op,
		"error_code": string(cacheErr.Code),
		"details":    cacheErr.Details,
	})
}

func (s *Service) audit(ctx context.Context, rec *models.CustomerRecord, payload []byte, result *Result) {
	if s.opts.Audit == nil {
		return
	}
	entry := AuditEntry{
		CustomerID:  rec.CustomerID,
		Payload:     payload,
		Outcome:     result.Outcome,
		Probability: result.Probability,
	}
	if err := s.opts.Audit.InsertPrediction(ctx, entry); err != nil {
		s.logger.Error("prediction audit insert failed", map[string]interface{}{
			"customer_id": rec.CustomerID,
			"error":       err.Error(),
		})
	}
}

func (s *Service) notify(ctx context.Context, rec *models.CustomerRecord, result *Result) {
	if s.opts.Notifier == nil || result.Outcome != OutcomeChurn {
		return
	}
	if result.Probability < s.opts.MinAlertProbability {
		return
	}
	alert := ChurnAlert{
		CustomerID:  rec.CustomerID,
		Probability: result.Probability,
	}
	if err := s.opts.Notifier.NotifyChurn(ctx, alert); err != nil {
		s.logger.Error("churn alert failed", map[string]interface{}{
			"customer_id": rec.CustomerID,
			"error":       err.Error(),
		})
	}
}

func (s *Service) fail(err error) error {
	stdErr := errors.AsStandardError(err)
	metrics.PredictionErrors.WithLabelValues(string(stdErr.Code)).Inc()
	if s.opts.Observability != nil {
		s.opts.Observability.RecordPrediction(context.Background(), "error")
	}
	s.logger.Warn("prediction failed", map[string]interface{}{
		"error_code": string(stdErr.Code),
		"category":   errors.GetErrorCategory(stdErr.Code),
		"details":    stdErr.Details,
	})
	return stdErr
}

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
