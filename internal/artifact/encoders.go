// internal/artifact/encoders.go
package artifact

import (
	"fmt"
	"strings"

	"churn-inference/internal/common/errors"
)

// LabelEncoder maps a categorical value to the integer code it was fitted
// with. Classes are stored in fit order; the code of a value is its index.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// Transform returns the integer code for value. Surrounding whitespace is
// ignored. Values outside the fitted classes fail with UNKNOWN_CATEGORY.
func (e LabelEncoder) Transform(field, value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	for i, class := range e.Classes {
		if class == trimmed {
			return i, nil
		}
	}
	return 0, errors.NewUnknownCategoryError(field, trimmed)
}

// InverseTransform maps a code back to its class label.
func (e LabelEncoder) InverseTransform(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("label code %d out of range [0, %d)", code, len(e.Classes))
	}
	return e.Classes[code], nil
}

// LabelEncoders holds the per-field label encoders in fit-time field order.
type LabelEncoders struct {
	Columns  []string                `json:"columns"`
	Encoders map[string]LabelEncoder `json:"encoders"`
}

// EncoderFor returns the encoder fitted for the given field.
func (l LabelEncoders) EncoderFor(field string) (LabelEncoder, bool) {
	enc, ok := l.Encoders[field]
	return enc, ok
}

// OneHotEncoder expands categorical fields into indicator columns.
// Categories[i] lists the fitted categories of Columns[i] in the order the
// training pipeline assigned their indicator positions.
type OneHotEncoder struct {
	Columns    []string   `json:"columns"`
	Categories [][]string `json:"categories"`
}

// Width is the total number of indicator columns across all fields.
func (e OneHotEncoder) Width() int {
	width := 0
	for _, cats := range e.Categories {
		width += len(cats)
	}
	return width
}

// Transform builds the full indicator block for the given field values.
// values must contain every encoded column; each value is matched against
// the fitted categories after trimming whitespace. An unmatched value fails
// with UNKNOWN_CATEGORY.
func (e OneHotEncoder) Transform(values map[string]string) ([]float64, error) {
	out := make([]float64, 0, e.Width())
	for i, column := range e.Columns {
		raw, ok := values[column]
		if !ok {
			return nil, errors.NewUnknownCategoryError(column, "")
		}
		trimmed := strings.TrimSpace(raw)

		matched := -1
		for j, category := range e.Categories[i] {
			if category == trimmed {
				matched = j
				break
			}
		}
		if matched < 0 {
			return nil, errors.NewUnknownCategoryError(column, trimmed)
		}

		block := make([]float64, len(e.Categories[i]))
		block[matched] = 1
		out = append(out, block...)
	}
	return out, nil
}
