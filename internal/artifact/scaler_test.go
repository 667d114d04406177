package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churn-inference/internal/common/errors"
)

func fixtureScaler() MinMaxScaler {
	return MinMaxScaler{
		Columns: []string{"tenure", "MonthlyCharges", "TotalCharges"},
		Min:     []float64{0, 18.25, 18.8},
		Max:     []float64{72, 118.75, 8684.8},
		Mean:    []float64{32.4, 64.76, 2283.3},
	}
}

func TestMinMaxScaler_Transform(t *testing.T) {
	scaler := fixtureScaler()

	out, err := scaler.Transform([]float64{36, 68.5, 4351.8})

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 0.5, out[0], 1e-12)
	assert.InDelta(t, 0.5, out[1], 1e-12)
	assert.InDelta(t, 0.5, out[2], 1e-12)
}

func TestMinMaxScaler_Unclipped(t *testing.T) {
	scaler := fixtureScaler()

	out, err := scaler.Transform([]float64{144, 18.25, 18.8})

	require.NoError(t, err)
	assert.InDelta(t, 2.0, out[0], 1e-12)
	assert.InDelta(t, 0.0, out[1], 1e-12)
	assert.InDelta(t, 0.0, out[2], 1e-12)
}

func TestMinMaxScaler_DegenerateScale(t *testing.T) {
	scaler := MinMaxScaler{
		Columns: []string{"tenure"},
		Min:     []float64{5},
		Max:     []float64{5},
		Mean:    []float64{5},
	}

	_, err := scaler.Transform([]float64{5})

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeDegenerateScale, stdErr.Code)
	assert.Contains(t, stdErr.Details, "tenure")
}

func TestMinMaxScaler_WidthMismatch(t *testing.T) {
	scaler := fixtureScaler()

	_, err := scaler.Transform([]float64{1, 2})

	assert.Error(t, err)
}

func TestMinMaxScaler_MeanFor(t *testing.T) {
	scaler := fixtureScaler()

	mean, err := scaler.MeanFor("TotalCharges")
	require.NoError(t, err)
	assert.Equal(t, 2283.3, mean)

	_, err = scaler.MeanFor("SeniorCitizen")
	assert.Error(t, err)
}
