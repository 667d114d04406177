// internal/artifact/model.go
package artifact

import (
	"fmt"
	"math"
)

// LogisticRegression is the fitted binary classifier. Classes holds the
// integer class labels in the order the training pipeline assigned them;
// the sigmoid probability is the probability of Classes[1].
type LogisticRegression struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Classes      []int     `json:"classes"`
}

// Predict scores one feature vector and returns the predicted class label
// together with the probability of the positive class.
func (m LogisticRegression) Predict(features []float64) (int, float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, 0, fmt.Errorf("classifier expects %d features, got %d", len(m.Coefficients), len(features))
	}

	z := m.Intercept
	for i, f := range features {
		z += m.Coefficients[i] * f
	}
	p := 1.0 / (1.0 + math.Exp(-z))

	// Strictly greater: a zero logit resolves to the first class, matching
	// the decision rule the classifier was exported from.
	if p > 0.5 {
		return m.Classes[1], p, nil
	}
	return m.Classes[0], p, nil
}
