package predictchurn

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churn-inference/internal/artifact"
	"churn-inference/internal/common/errors"
	"churn-inference/internal/common/logger"
	"churn-inference/internal/models"
	"churn-inference/internal/prediction"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	bundle, err := artifact.Load("../../artifact/testdata")
	require.NoError(t, err)
	svc, err := prediction.NewService(bundle, logger.NewTestLogger(t), prediction.Options{})
	require.NoError(t, err)
	return NewHandler(LoadConfig(), svc, logger.NewTestLogger(t))
}

func testInput() *Input {
	return &Input{CustomerRecord: models.CustomerRecord{
		CustomerID:       "7590-VHVEG",
		Gender:           "Female",
		SeniorCitizen:    0,
		Partner:          "Yes",
		Dependents:       "No",
		Tenure:           models.NumericFromFloat(12),
		PhoneService:     "Yes",
		MultipleLines:    "No",
		InternetService:  "DSL",
		OnlineSecurity:   "Yes",
		OnlineBackup:     "No",
		DeviceProtection: "No",
		TechSupport:      "No",
		StreamingTV:      "No",
		StreamingMovies:  "No",
		Contract:         "One year",
		PaperlessBilling: "No",
		PaymentMethod:    "Mailed check",
		MonthlyCharges:   models.NumericFromFloat(50.0),
		TotalCharges:     models.NumericFromFloat(600.0),
	}}
}

func TestExecute_NoChurn(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "No Churn", output.Prediction)
	assert.Equal(t, "No", output.Label)
	assert.InDelta(t, 0.2689414213699951, output.Probability, 1e-12)
}

func TestExecute_Churn(t *testing.T) {
	handler := createTestHandler(t)

	input := testInput()
	input.Contract = "Month-to-month"

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Churn", output.Prediction)
	assert.InDelta(t, 0.6224593312018546, output.Probability, 1e-12)
}

func TestExecute_UnknownCategory(t *testing.T) {
	handler := createTestHandler(t)

	input := testInput()
	input.InternetService = "Cable"

	_, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeUnknownCategory, stdErr.Code)
}

func TestExecute_ValidationFailure(t *testing.T) {
	handler := createTestHandler(t)

	input := testInput()
	input.Contract = ""

	_, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)
}

func TestExecute_OmittedJobVariables(t *testing.T) {
	handler := createTestHandler(t)

	variables := `{"customerId": "9237-HQITU", "Contract": "Month-to-month"}`
	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))

	_, err := handler.Execute(context.Background(), &input)

	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "required field missing")
}

func TestInput_UnmarshalJobVariables(t *testing.T) {
	variables := `{
		"customerId": "9237-HQITU",
		"gender": "Male",
		"SeniorCitizen": 1,
		"Partner": "No",
		"Dependents": "No",
		"tenure": "2",
		"PhoneService": "Yes",
		"MultipleLines": "No",
		"InternetService": "Fiber optic",
		"OnlineSecurity": "No",
		"OnlineBackup": "No",
		"DeviceProtection": "No",
		"TechSupport": "No",
		"StreamingTV": "No",
		"StreamingMovies": "No",
		"Contract": "Month-to-month",
		"PaperlessBilling": "Yes",
		"PaymentMethod": "Electronic check",
		"MonthlyCharges": 70.7,
		"TotalCharges": "151.65"
	}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(variables), &input))

	assert.Equal(t, "9237-HQITU", input.CustomerID)
	tenure, ok := input.Tenure.Float64()
	require.True(t, ok)
	assert.Equal(t, float64(2), tenure)
}
