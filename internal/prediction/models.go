// internal/prediction/models.go
package prediction

// Outcome values returned to callers.
const (
	OutcomeChurn   = "Churn"
	OutcomeNoChurn = "No Churn"
)

// Result is the success variant of a prediction. Failures travel separately
// as *errors.StandardError values; the two never share a channel.
type Result struct {
	Outcome     string  `json:"outcome"`
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	Cached      bool    `json:"-"`
}

// AuditEntry is one served prediction handed to the audit store.
type AuditEntry struct {
	CustomerID  string
	Payload     []byte
	Outcome     string
	Probability float64
}

// ChurnAlert carries a high-probability churn prediction to the notifier.
type ChurnAlert struct {
	CustomerID  string
	Probability float64
}
