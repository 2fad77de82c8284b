package inspectprofile

import (
	"context"
	"encoding/json"
	"testing"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/dataset/datasettest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), datasettest.NewSource(t), logger.NewTestLogger(t))
}

func intPtr(v int) *int {
	return &v
}

func TestHandler_Execute_Inspection(t *testing.T) {
	tests := []struct {
		profileID         string
		expectedSector    string
		expectedLevel     string
		expectedField     string
		expectedRelatives string
	}{
		{"maya", "1-1", "Master's", "Urban Planning", "1 Relatives"},
		{"omar", "0-1", "PhD", "Computer Science", "0 Relatives"},
		{"lena", "1-0", "N/A", "General", "No Direct Relatives"},
		{"jon", "1-0", "PhD", "Landscape Design", "2 Relatives"},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.profileID, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), &Input{ProfileID: tt.profileID})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedSector, output.Sector)
			assert.Equal(t, tt.expectedLevel, output.ExpertiseLevel)
			assert.Equal(t, tt.expectedField, output.ExpertiseField)
			assert.Equal(t, tt.expectedRelatives, output.RelativesLabel)
			assert.Nil(t, output.Relevance)
		})
	}
}

func TestHandler_Execute_Radar(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{ProfileID: "jon"})
	require.NoError(t, err)

	assert.Equal(t, [6]float64{55, 45, 45, 55, 50, 50}, output.Radar.G)
	assert.InDelta(t, 50.0, output.Radar.D[0], 1e-9) // 45/90
	assert.InDelta(t, 50.0, output.Radar.D[2], 1e-9) // two relatives
	assert.InDelta(t, 12.5, output.Radar.X[0], 1e-9) // one interest of eight
}

func TestHandler_Execute_WithIssue(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		ProfileID:  "omar",
		IssueIndex: intPtr(datasettest.SeniorTechHelp),
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Tech Help", output.IssueTitle)
	require.NotNil(t, output.Relevance)
	assert.Equal(t, "0.51", output.Relevance.TotalDisplay)
	assert.Equal(t, "Included", output.Status)
}

func TestHandler_Execute_OutputFlattensInspection(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{ProfileID: "lena"})
	require.NoError(t, err)

	raw, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &vars))
	assert.Equal(t, "lena", vars["profileId"])
	assert.Equal(t, "1-0", vars["sector"])
	assert.NotContains(t, vars, "relevance")
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		input        *Input
		expectedCode apperrors.ErrorCode
	}{
		{"nil input", nil, apperrors.ErrCodeInvalidInput},
		{"missing profile id", &Input{}, apperrors.ErrCodeInvalidInput},
		{"unknown profile", &Input{ProfileID: "ghost"}, apperrors.ErrCodeProfileNotFound},
		{"unknown issue", &Input{ProfileID: "maya", IssueIndex: intPtr(9)}, apperrors.ErrCodeIssueNotFound},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, apperrors.Classify(err))
		})
	}
}
