package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churn-inference/internal/common/errors"
)

func TestLoad_FixtureBundle(t *testing.T) {
	bundle, err := Load("testdata")

	require.NoError(t, err)
	require.NotNil(t, bundle)
	assert.Equal(t, []string{"Partner", "Dependents", "PhoneService", "PaperlessBilling", "gender"}, bundle.LabelEncoders.Columns)
	assert.Equal(t, 31, bundle.OneHot.Width())
	assert.Equal(t, 39, bundle.FeatureWidth())
	assert.Len(t, bundle.Model.Coefficients, 39)
	assert.Equal(t, []string{"No", "Yes"}, bundle.Target.Classes)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := copyFixtures(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "model.json")))

	_, err := Load(dir)

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	require.NotNil(t, stdErr)
	assert.Equal(t, errors.ErrCodeArtifactLoadFailed, stdErr.Code)
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := copyFixtures(t)
	writeFixture(t, dir, "min_max_scaler.json", `{"columns": [`)

	_, err := Load(dir)

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	require.NotNil(t, stdErr)
	assert.Equal(t, errors.ErrCodeArtifactLoadFailed, stdErr.Code)
}

func TestLoad_InconsistentArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "scaler parameter lengths differ",
			file:    "min_max_scaler.json",
			content: `{"columns": ["tenure", "MonthlyCharges", "TotalCharges"], "min": [0], "max": [72, 118.75, 8684.8], "mean": [32.4, 64.76, 2283.3]}`,
		},
		{
			name:    "scaler column with max equal to min",
			file:    "min_max_scaler.json",
			content: `{"columns": ["tenure", "MonthlyCharges", "TotalCharges"], "min": [0, 18.25, 18.8], "max": [0, 118.75, 8684.8], "mean": [32.4, 64.76, 2283.3]}`,
		},
		{
			name:    "classifier width does not match encoders",
			file:    "model.json",
			content: `{"coefficients": [0.1, 0.2], "intercept": -1.0, "classes": [0, 1]}`,
		},
		{
			name:    "classifier is not binary",
			file:    "label_encoder_target.json",
			content: `{"classes": []}`,
		},
		{
			name:    "label column without encoder",
			file:    "label_encoders.json",
			content: `{"columns": ["Partner"], "encoders": {}}`,
		},
		{
			name:    "one hot column and category counts differ",
			file:    "one_hot_encoder.json",
			content: `{"columns": ["Contract", "PaymentMethod"], "categories": [["Month-to-month"]]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := copyFixtures(t)
			writeFixture(t, dir, tt.file, tt.content)

			_, err := Load(dir)

			require.Error(t, err)
			stdErr := errors.AsStandardError(err)
			require.NotNil(t, stdErr)
			assert.Equal(t, errors.ErrCodeArtifactLoadFailed, stdErr.Code)
		})
	}
}

func copyFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir("testdata")
	require.NoError(t, err)
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join("testdata", entry.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, entry.Name()), data, 0o644))
	}
	return dir
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
