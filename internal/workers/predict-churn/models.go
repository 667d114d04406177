// internal/workers/predict-churn/models.go
package predictchurn

import "churn-inference/internal/models"

// Input is the job variable payload: the customer record inline.
type Input struct {
	models.CustomerRecord
}

// Output is written back to the process instance on completion.
type Output struct {
	Prediction  string  `json:"prediction"`
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
}
