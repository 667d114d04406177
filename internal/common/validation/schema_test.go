package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func testSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"Contract":      {Type: "string", MinLength: intPtr(1)},
			"tenure":        {Type: "number"},
			"SeniorCitizen": {Type: "integer", Minimum: floatPtr(0), Maximum: floatPtr(1)},
			"PaperlessBilling": {
				Type: "string",
				Enum: []string{"Yes", "No"},
			},
		},
		Required:             []string{"Contract", "tenure"},
		AdditionalProperties: true,
	}
}

func TestValidateInput_Valid(t *testing.T) {
	input := map[string]interface{}{
		"Contract":         "Month-to-month",
		"tenure":           float64(12),
		"SeniorCitizen":    float64(0),
		"PaperlessBilling": "Yes",
	}

	result := ValidateInput(input, testSchema())

	require.NotNil(t, result)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_RequiredFieldMissing(t *testing.T) {
	input := map[string]interface{}{
		"Contract": "Two year",
	}

	result := ValidateInput(input, testSchema())

	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("tenure"))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "REQUIRED_FIELD_MISSING", result.Errors[0].Code)
}

func TestValidateInput_NumericStrings(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		valid bool
	}{
		{"json number", float64(42.5), true},
		{"numeric string", "42.5", true},
		{"numeric string with spaces", " 42.5 ", true},
		{"blank string is missing", " ", true},
		{"empty string is missing", "", true},
		{"unparseable string passes through to the encoder", "abc", true},
		{"boolean", true, false},
		{"object", map[string]interface{}{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]interface{}{
				"Contract": "One year",
				"tenure":   tt.value,
			}

			result := ValidateInput(input, testSchema())

			if tt.valid {
				assert.True(t, result.Valid, "errors: %v", result.GetErrorMessages())
			} else {
				assert.False(t, result.Valid)
				assert.True(t, result.HasErrors("tenure"))
			}
		})
	}
}

func TestValidateInput_IntegerBounds(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		code  string
	}{
		{"in range", float64(1), ""},
		{"below minimum", float64(-1), "MINIMUM_VIOLATION"},
		{"above maximum", float64(2), "MAXIMUM_VIOLATION"},
		{"fractional", float64(0.5), "INVALID_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]interface{}{
				"Contract":      "One year",
				"tenure":        float64(1),
				"SeniorCitizen": tt.value,
			}

			result := ValidateInput(input, testSchema())

			if tt.code == "" {
				assert.True(t, result.Valid)
				return
			}
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.code, result.Errors[0].Code)
		})
	}
}

func TestValidateInput_EnumTrimsWhitespace(t *testing.T) {
	input := map[string]interface{}{
		"Contract":         "One year",
		"tenure":           float64(5),
		"PaperlessBilling": "  Yes ",
	}

	result := ValidateInput(input, testSchema())

	assert.True(t, result.Valid, "errors: %v", result.GetErrorMessages())
}

func TestValidateInput_EnumRejectsUnknown(t *testing.T) {
	input := map[string]interface{}{
		"Contract":         "One year",
		"tenure":           float64(5),
		"PaperlessBilling": "Maybe",
	}

	result := ValidateInput(input, testSchema())

	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("PaperlessBilling"))
	assert.Equal(t, "INVALID_ENUM_VALUE", result.Errors[0].Code)
}

func TestValidateInput_MinLength(t *testing.T) {
	input := map[string]interface{}{
		"Contract": "   ",
		"tenure":   float64(5),
	}

	result := ValidateInput(input, testSchema())

	assert.False(t, result.Valid)
	assert.Equal(t, "MIN_LENGTH_VIOLATION", result.Errors[0].Code)
}

func TestGetSchemaFromJSON(t *testing.T) {
	schemaJSON := `{
		"type": "object",
		"properties": {
			"tenure": {"type": "number", "minimum": 0}
		},
		"required": ["tenure"]
	}`

	schema, err := GetSchemaFromJSON(schemaJSON)

	require.NoError(t, err)
	assert.Equal(t, "object", schema.Type)
	require.Contains(t, schema.Properties, "tenure")
	require.NotNil(t, schema.Properties["tenure"].Minimum)
	assert.Equal(t, float64(0), *schema.Properties["tenure"].Minimum)
}
