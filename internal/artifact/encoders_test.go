package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churn-inference/internal/common/errors"
)

func TestLabelEncoder_Transform(t *testing.T) {
	enc := LabelEncoder{Classes: []string{"No", "Yes"}}

	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"first class", "No", 0, false},
		{"second class", "Yes", 1, false},
		{"surrounding whitespace ignored", "  Yes ", 1, false},
		{"unknown value", "Maybe", 0, true},
		{"case sensitive", "yes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := enc.Transform("Partner", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				stdErr := errors.AsStandardError(err)
				assert.Equal(t, errors.ErrCodeUnknownCategory, stdErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestLabelEncoder_RoundTrip(t *testing.T) {
	enc := LabelEncoder{Classes: []string{"Female", "Male"}}

	for _, class := range enc.Classes {
		code, err := enc.Transform("gender", class)
		require.NoError(t, err)
		back, err := enc.InverseTransform(code)
		require.NoError(t, err)
		assert.Equal(t, class, back)
	}
}

func TestLabelEncoder_InverseTransformOutOfRange(t *testing.T) {
	enc := LabelEncoder{Classes: []string{"No", "Yes"}}

	_, err := enc.InverseTransform(2)
	assert.Error(t, err)

	_, err = enc.InverseTransform(-1)
	assert.Error(t, err)
}

func TestOneHotEncoder_Transform(t *testing.T) {
	enc := OneHotEncoder{
		Columns: []string{"Contract", "PaymentMethod"},
		Categories: [][]string{
			{"Month-to-month", "One year", "Two year"},
			{"Bank transfer (automatic)", "Credit card (automatic)", "Electronic check", "Mailed check"},
		},
	}

	require.Equal(t, 7, enc.Width())

	out, err := enc.Transform(map[string]string{
		"Contract":      "One year",
		"PaymentMethod": " Mailed check ",
	})

	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 0, 0, 0, 1}, out)
}

func TestOneHotEncoder_UnknownCategory(t *testing.T) {
	bundle, err := Load("testdata")
	require.NoError(t, err)

	values := map[string]string{
		"MultipleLines":    "No",
		"InternetService":  "Cable",
		"OnlineSecurity":   "No",
		"OnlineBackup":     "No",
		"DeviceProtection": "No",
		"TechSupport":      "No",
		"StreamingTV":      "No",
		"StreamingMovies":  "No",
		"Contract":         "One year",
		"PaymentMethod":    "Mailed check",
	}

	_, err = bundle.OneHot.Transform(values)

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeUnknownCategory, stdErr.Code)
	assert.Contains(t, stdErr.Details, "InternetService")
}

func TestOneHotEncoder_MissingColumn(t *testing.T) {
	enc := OneHotEncoder{
		Columns:    []string{"Contract"},
		Categories: [][]string{{"Month-to-month", "One year", "Two year"}},
	}

	_, err := enc.Transform(map[string]string{})

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeUnknownCategory, stdErr.Code)
}
