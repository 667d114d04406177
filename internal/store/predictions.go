// internal/store/predictions.go
package store

import (
	"context"

	"github.com/google/uuid"

	"churn-inference/internal/common/database"
	"churn-inference/internal/common/errors"
	"churn-inference/internal/prediction"
)

const insertPredictionQuery = `
	INSERT INTO predictions (id, customer_id, payload, outcome, probability, created_at)
	VALUES ($1, $2, $3, $4, $5, NOW())`

// PredictionStore is the insert-only audit log of served predictions.
type PredictionStore struct {
	db *database.PostgresClient
}

// NewPredictionStore wraps a Postgres client as an audit store.
func NewPredictionStore(db *database.PostgresClient) *PredictionStore {
	return &PredictionStore{db: db}
}

// InsertPrediction appends one served prediction to the audit table.
func (s *PredictionStore) InsertPrediction(ctx context.Context, entry prediction.AuditEntry) error {
	_, err := s.db.Exec(ctx, insertPredictionQuery,
		uuid.NewString(),
		entry.CustomerID,
		entry.Payload,
		entry.Outcome,
		entry.Probability,
	)
	if err != nil {
		return errors.NewAuditWriteFailedError(err)
	}
	return nil
}
