// internal/encoding/encoder.go
package encoding

import (
	"fmt"

	"churn-inference/internal/artifact"
	"churn-inference/internal/common/errors"
	"churn-inference/internal/models"
)

// Encoder turns a raw customer record into the feature vector the fitted
// classifier consumes. The layout is fixed by the artifact bundle:
// label-encoded ints, then scaled numerics, then the one-hot block, each in
// artifact column order.
type Encoder struct {
	bundle *artifact.Bundle
}

// NewEncoder builds an encoder over the bundle and verifies every artifact
// column resolves to a record field. A bundle referencing a field the
// record does not carry is a deployment mismatch and fails construction.
func NewEncoder(bundle *artifact.Bundle) (*Encoder, error) {
	var probe models.CustomerRecord
	for _, column := range bundle.LabelEncoders.Columns {
		if _, ok := probe.CategoricalValue(column); !ok {
			return nil, fmt.Errorf("label-encoded column %q is not a record field", column)
		}
	}
	for _, column := range bundle.OneHot.Columns {
		if _, ok := probe.CategoricalValue(column); !ok {
			return nil, fmt.Errorf("one-hot column %q is not a record field", column)
		}
	}
	for _, column := range bundle.Scaler.Columns {
		if _, ok := probe.NumericValue(column); !ok {
			return nil, fmt.Errorf("scaled column %q is not a record field", column)
		}
	}
	return &Encoder{bundle: bundle}, nil
}

// Width is the length of the vectors Encode produces.
func (e *Encoder) Width() int {
	return e.bundle.FeatureWidth()
}

// Encode replicates the training-time preprocessing for one record. It is a
// pure function of the bundle and the record; every call allocates its own
// output.
func (e *Encoder) Encode(rec *models.CustomerRecord) ([]float64, error) {
	labels, err := e.encodeLabels(rec)
	if err != nil {
		return nil, err
	}

	scaled, err := e.encodeNumerics(rec)
	if err != nil {
		return nil, err
	}

	oneHot, err := e.encodeOneHot(rec)
	if err != nil {
		return nil, err
	}

	features := make([]float64, 0, e.Width())
	features = append(features, labels...)
	features = append(features, scaled...)
	features = append(features, oneHot...)
	return features, nil
}

func (e *Encoder) encodeLabels(rec *models.CustomerRecord) ([]float64, error) {
	out := make([]float64, 0, len(e.bundle.LabelEncoders.Columns))
	for _, column := range e.bundle.LabelEncoders.Columns {
		value, _ := rec.CategoricalValue(column)
		enc, ok := e.bundle.LabelEncoders.EncoderFor(column)
		if !ok {
			return nil, fmt.Errorf("no label encoder for column %q", column)
		}
		code, err := enc.Transform(column, value)
		if err != nil {
			return nil, err
		}
		out = append(out, float64(code))
	}
	return out, nil
}

func (e *Encoder) encodeNumerics(rec *models.CustomerRecord) ([]float64, error) {
	values := make([]float64, 0, len(e.bundle.Scaler.Columns))
	for _, column := range e.bundle.Scaler.Columns {
		n, _ := rec.NumericValue(column)

		if v, ok := n.Float64(); ok {
			values = append(values, v)
			continue
		}
		if n.Missing() {
			mean, err := e.bundle.Scaler.MeanFor(column)
			if err != nil {
				return nil, err
			}
			values = append(values, mean)
			continue
		}
		return nil, errors.NewMissingOrInvalidNumericError(column, n.Raw())
	}
	return e.bundle.Scaler.Transform(values)
}

func (e *Encoder) encodeOneHot(rec *models.CustomerRecord) ([]float64, error) {
	values := make(map[string]string, len(e.bundle.OneHot.Columns))
	for _, column := range e.bundle.OneHot.Columns {
		value, _ := rec.CategoricalValue(column)
		values[column] = value
	}
	return e.bundle.OneHot.Transform(values)
}
