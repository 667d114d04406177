package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// JSONSchema defines the structure for input schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Pattern     *string  `json:"pattern,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput validates input against a JSON schema with detailed errors
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	errors := []ValidationError{}

	// Check required fields
	for _, requiredField := range schema.Required {
		if _, exists := input[requiredField]; !exists {
			errors = append(errors, ValidationError{
				Field:   requiredField,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	// Validate field types and constraints
	for fieldName, value := range input {
		prop, exists := schema.Properties[fieldName]
		if !exists {
			if !schema.AdditionalProperties {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: "field not allowed in schema",
					Code:    "EXTRA_FIELD",
				})
			}
			continue
		}

		if fieldErrors := validateField(fieldName, value, prop); len(fieldErrors) > 0 {
			errors = append(errors, fieldErrors...)
		}
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateField(fieldName string, value interface{}, prop Property) []ValidationError {
	errors := []ValidationError{}

	// Type validation
	if typeErr := validateType(value, prop.Type); typeErr != nil {
		errors = append(errors, ValidationError{
			Field:   fieldName,
			Message: typeErr.Error(),
			Code:    "INVALID_TYPE",
		})
		return errors // Return early if type is wrong
	}

	// String validations
	if strVal, ok := value.(string); ok && prop.Type == "string" {
		if prop.MinLength != nil && len(strings.TrimSpace(strVal)) < *prop.MinLength {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be at least %d characters", *prop.MinLength),
				Code:    "MIN_LENGTH_VIOLATION",
			})
		}
		if prop.MaxLength != nil && len(strVal) > *prop.MaxLength {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be at most %d characters", *prop.MaxLength),
				Code:    "MAX_LENGTH_VIOLATION",
			})
		}

		if prop.Pattern != nil {
			matched, err := regexp.MatchString(*prop.Pattern, strVal)
			if err != nil || !matched {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: fmt.Sprintf("value must match pattern %s", *prop.Pattern),
					Code:    "PATTERN_MISMATCH",
				})
			}
		}

		// Enum membership ignores surrounding whitespace; the encoders trim
		// before lookup, and validation must not be stricter than they are.
		if len(prop.Enum) > 0 {
			trimmed := strings.TrimSpace(strVal)
			found := false
			for _, enumVal := range prop.Enum {
				if trimmed == enumVal {
					found = true
					break
				}
			}
			if !found {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: fmt.Sprintf("value must be one of %v", prop.Enum),
					Code:    "INVALID_ENUM_VALUE",
				})
			}
		}
	}

	// Number range validation
	if numVal, ok := asNumber(value); ok {
		if prop.Minimum != nil && numVal < *prop.Minimum {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be >= %f", *prop.Minimum),
				Code:    "MINIMUM_VIOLATION",
			})
		}
		if prop.Maximum != nil && numVal > *prop.Maximum {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be <= %f", *prop.Maximum),
				Code:    "MAXIMUM_VIOLATION",
			})
		}
	}

	return errors
}

func validateType(value interface{}, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "number":
		// Numbers may arrive as JSON numbers or as strings. String forms are
		// passed through untouched: a blank string is a missing value and an
		// unparseable one is rejected by the feature encoder, which owns the
		// numeric contract.
		if _, ok := asNumber(value); !ok {
			if _, isStr := value.(string); isStr {
				return nil
			}
			return fmt.Errorf("expected number, got %T", value)
		}
	case "integer":
		numVal, ok := asNumber(value)
		if !ok {
			return fmt.Errorf("expected integer, got %T", value)
		}
		if numVal != math.Trunc(numVal) {
			return fmt.Errorf("expected integer, got fractional number %v", numVal)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	case "array":
		if _, ok := value.([]interface{}); !ok {
			return fmt.Errorf("expected array, got %T", value)
		}
	}
	return nil
}

// asNumber widens JSON and Go numeric representations to float64. Numeric
// strings count: decoded payloads round-trip numerics as strings when the
// raw value was quoted.
func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	}
	return 0, false
}

// GetSchemaFromJSON parses JSON schema from string
func GetSchemaFromJSON(schemaJSON string) (JSONSchema, error) {
	var schema JSONSchema
	err := json.Unmarshal([]byte(schemaJSON), &schema)
	return schema, err
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for a specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
