// internal/prediction/validation.go
package prediction

import (
	"churn-inference/internal/artifact"
	"churn-inference/internal/common/validation"
)

// buildInputSchema derives the request schema from the artifact bundle so
// that the accepted field set always matches what the encoders were fitted
// on. Category membership is deliberately not schema-checked: an unknown
// category must surface from the encoders as UNKNOWN_CATEGORY, not as a
// generic validation failure.
func buildInputSchema(bundle *artifact.Bundle) validation.JSONSchema {
	minLen := 1
	zero := 0.0
	one := 1.0

	properties := map[string]validation.Property{
		"customerId": {Type: "string"},
		"SeniorCitizen": {
			Type:    "integer",
			Minimum: &zero,
			Maximum: &one,
		},
	}
	required := []string{"SeniorCitizen"}

	for _, column := range bundle.LabelEncoders.Columns {
		properties[column] = validation.Property{Type: "string", MinLength: &minLen}
		required = append(required, column)
	}
	for _, column := range bundle.OneHot.Columns {
		properties[column] = validation.Property{Type: "string", MinLength: &minLen}
		required = append(required, column)
	}
	for _, column := range bundle.Scaler.Columns {
		// String forms pass through: blanks are imputed downstream and
		// unparseable values fail in the encoder with the numeric code.
		properties[column] = validation.Property{Type: "number"}
		required = append(required, column)
	}

	return validation.JSONSchema{
		Type:                 "object",
		Properties:           properties,
		Required:             required,
		AdditionalProperties: true,
	}
}
