package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churn-inference/internal/common/validation"
)

func TestBuildInputSchema(t *testing.T) {
	schema := buildInputSchema(fixtureBundle(t))

	// 5 label + 10 one-hot + 3 scaled + SeniorCitizen required.
	assert.Len(t, schema.Required, 19)
	assert.True(t, schema.AdditionalProperties)

	require.Contains(t, schema.Properties, "Contract")
	assert.Equal(t, "string", schema.Properties["Contract"].Type)

	require.Contains(t, schema.Properties, "tenure")
	assert.Equal(t, "number", schema.Properties["tenure"].Type)

	require.Contains(t, schema.Properties, "SeniorCitizen")
	assert.Equal(t, "integer", schema.Properties["SeniorCitizen"].Type)
}

func TestBuildInputSchema_NoCategoryEnums(t *testing.T) {
	schema := buildInputSchema(fixtureBundle(t))

	// Category membership is checked by the encoders, not the schema, so
	// unknown categories surface with their own error code.
	for name, prop := range schema.Properties {
		assert.Emptyf(t, prop.Enum, "property %s must not enumerate categories", name)
	}
}

func TestInputSchema_AcceptsBlankNumeric(t *testing.T) {
	schema := buildInputSchema(fixtureBundle(t))

	input := validRawInput()
	input["TotalCharges"] = " "

	result := validation.ValidateInput(input, schema)

	assert.True(t, result.Valid, "errors: %v", result.GetErrorMessages())
}

func TestInputSchema_RejectsSeniorCitizenOutOfRange(t *testing.T) {
	schema := buildInputSchema(fixtureBundle(t))

	input := validRawInput()
	input["SeniorCitizen"] = float64(2)

	result := validation.ValidateInput(input, schema)

	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("SeniorCitizen"))
}

func TestInputSchema_AcceptsUnknownCategoryValue(t *testing.T) {
	schema := buildInputSchema(fixtureBundle(t))

	input := validRawInput()
	input["InternetService"] = "Cable"

	result := validation.ValidateInput(input, schema)

	assert.True(t, result.Valid, "errors: %v", result.GetErrorMessages())
}

func validRawInput() map[string]interface{} {
	return map[string]interface{}{
		"gender":           "Female",
		"SeniorCitizen":    float64(0),
		"Partner":          "Yes",
		"Dependents":       "No",
		"tenure":           float64(12),
		"PhoneService":     "Yes",
		"MultipleLines":    "No",
		"InternetService":  "DSL",
		"OnlineSecurity":   "Yes",
		"OnlineBackup":     "No",
		"DeviceProtection": "No",
		"TechSupport":      "No",
		"StreamingTV":      "No",
		"StreamingMovies":  "No",
		"Contract":         "One year",
		"PaperlessBilling": "No",
		"PaymentMethod":    "Mailed check",
		"MonthlyCharges":   float64(50.0),
		"TotalCharges":     float64(600.0),
	}
}
