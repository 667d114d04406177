// internal/artifact/scaler.go
package artifact

import (
	"fmt"

	"churn-inference/internal/common/errors"
)

// MinMaxScaler rescales numeric columns with the min/max observed during
// training. Mean carries the training-time column means used to impute
// missing values before scaling.
type MinMaxScaler struct {
	Columns []string  `json:"columns"`
	Min     []float64 `json:"min"`
	Max     []float64 `json:"max"`
	Mean    []float64 `json:"mean"`
}

// Transform applies (v - min) / (max - min) per column. values must be in
// the scaler's column order. The output is not clipped; values outside the
// training range scale outside [0, 1]. A column with max == min fails with
// DEGENERATE_SCALE.
func (s MinMaxScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Columns) {
		return nil, fmt.Errorf("scaler expects %d values, got %d", len(s.Columns), len(values))
	}

	out := make([]float64, len(values))
	for i, v := range values {
		span := s.Max[i] - s.Min[i]
		if span == 0 {
			return nil, errors.NewDegenerateScaleError(s.Columns[i])
		}
		out[i] = (v - s.Min[i]) / span
	}
	return out, nil
}

// MeanFor returns the training mean of the named column.
func (s MinMaxScaler) MeanFor(column string) (float64, error) {
	for i, c := range s.Columns {
		if c == column {
			return s.Mean[i], nil
		}
	}
	return 0, fmt.Errorf("column %q not covered by scaler", column)
}
