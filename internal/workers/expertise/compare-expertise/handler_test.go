package compareexpertise

import (
	"context"
	"testing"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/dataset/datasettest"
	"civic-relevance-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), datasettest.NewSource(t), logger.NewTestLogger(t))
}

func TestHandler_Execute_Planner(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		IssueIndex: datasettest.ParkRenovation,
		ProfileID:  "maya",
	})
	require.NoError(t, err)

	assert.Equal(t, "Park Renovation", output.IssueTitle)
	assert.Equal(t, Requirements{
		EducationAngle:  90,
		Width:           30,
		ExperienceYears: 5,
		Resources:       []string{"Python Programming", "Writing", "Van"},
	}, output.Requirements)

	c := output.Comparison
	assert.Equal(t, "1.2", c.EduDisplay)
	assert.Equal(t, "1.2", c.ExpDisplay)
	assert.Equal(t, "1.0", c.ResDisplay)
	assert.Equal(t, 6.0, c.UserYears)
	assert.False(t, c.YearsDeficit)
	assert.Equal(t, 0.0, c.YearsGap)
	assert.Equal(t, 50.0, c.ScaleYears)

	assert.Equal(t, []scoring.EducationFit{
		{Degree: "Urban Planning", Level: "Master's", Angle: 95, Hit: true},
	}, c.Education)
	assert.Equal(t, []scoring.ExperienceFit{
		{Role: "Planner", Years: 6, Relevant: true},
	}, c.Experience)
	assert.Equal(t, []scoring.ResourceFit{
		{Name: "Van", Weight: 1, Relevant: true},
		{Name: "Sewing", Weight: 7, Relevant: false},
	}, c.Resources)
}

func TestHandler_Execute_TechRoleMatchesByText(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{
		IssueIndex: datasettest.SeniorTechHelp,
		ProfileID:  "omar",
	})
	require.NoError(t, err)

	c := output.Comparison
	require.Len(t, c.Experience, 1)
	assert.True(t, c.Experience[0].Relevant, "software engineer counts for a Tech issue")
	assert.True(t, c.Education[0].Hit)
	assert.Equal(t, []scoring.ResourceFit{{Name: "Laptop", Weight: 1, Relevant: true}}, c.Resources)
	assert.Equal(t, 30.0, c.UserYears)
	assert.Equal(t, 50.0, c.ScaleYears)
}

func TestHandler_Execute_NoExpertise(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{ProfileID: "lena"})
	require.NoError(t, err)

	c := output.Comparison
	assert.True(t, c.YearsDeficit)
	assert.Equal(t, 5.0, c.YearsGap)
	assert.Equal(t, "0.0", c.EduDisplay)
	assert.Empty(t, c.Education)
	assert.Empty(t, c.Experience)
	assert.Empty(t, c.Resources)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		input        *Input
		expectedCode apperrors.ErrorCode
	}{
		{"nil input", nil, apperrors.ErrCodeInvalidInput},
		{"missing profile id", &Input{IssueIndex: 1}, apperrors.ErrCodeInvalidInput},
		{"unknown profile", &Input{ProfileID: "ghost"}, apperrors.ErrCodeProfileNotFound},
		{"unknown issue", &Input{IssueIndex: -3, ProfileID: "maya"}, apperrors.ErrCodeIssueNotFound},
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
