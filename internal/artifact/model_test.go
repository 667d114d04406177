package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticRegression_Predict(t *testing.T) {
	model := LogisticRegression{
		Coefficients: []float64{1.5, 0},
		Intercept:    -1.0,
		Classes:      []int{0, 1},
	}

	tests := []struct {
		name      string
		features  []float64
		wantClass int
		wantProb  float64
	}{
		// z = -1.0, sigmoid = 0.2689
		{"negative logit", []float64{0, 1}, 0, 0.26894142136999510},
		// z = 0.5, sigmoid = 0.6225
		{"positive logit", []float64{1, 0}, 1, 0.62245933120185460},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, p, err := model.Predict(tt.features)

			require.NoError(t, err)
			assert.Equal(t, tt.wantClass, class)
			assert.InDelta(t, tt.wantProb, p, 1e-12)
		})
	}
}

func TestLogisticRegression_WidthMismatch(t *testing.T) {
	model := LogisticRegression{
		Coefficients: []float64{1.5, 0},
		Intercept:    -1.0,
		Classes:      []int{0, 1},
	}

	_, _, err := model.Predict([]float64{1})

	assert.Error(t, err)
}

func TestLogisticRegression_DecisionBoundary(t *testing.T) {
	model := LogisticRegression{
		Coefficients: []float64{1},
		Intercept:    0,
		Classes:      []int{0, 1},
	}

	// z = 0 sits exactly on the boundary and resolves to the first class,
	// the way a zero decision function does in the training library.
	class, p, err := model.Predict([]float64{0})

	require.NoError(t, err)
	assert.Equal(t, 0, class)
	assert.InDelta(t, 0.5, p, 1e-12)
}
