package loaddataset

import (
	"context"
	"errors"
	"testing"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/logger"
	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/dataset/datasettest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refreshingSource counts Refresh calls separately from Load.
type refreshingSource struct {
	*datasettest.Source
	refreshed int
}

func (s *refreshingSource) Refresh(ctx context.Context) (*dataset.Dataset, error) {
	s.refreshed++
	return s.Load(ctx)
}

func createTestHandler(t *testing.T, src dataset.Source) *Handler {
	return NewHandler(LoadConfig(), src, logger.NewTestLogger(t))
}

func TestHandler_Execute_Summary(t *testing.T) {
	src := datasettest.NewSource(t)

	output, err := createTestHandler(t, src).Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, "memory", output.Source)
	assert.Equal(t, 4, output.ProfileCount)
	assert.Equal(t, 2, output.IssueCount)
	assert.Equal(t, []string{"Park Renovation", "Senior Tech Help"}, output.IssueTitles)
	assert.Equal(t, 2, output.LegacyResources)
	assert.False(t, output.LoadedAt.IsZero())
	assert.Equal(t, 1, src.Calls())
}

func TestHandler_Execute_Refresh(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		wantRefreshed int
	}{
		{"plain load", &Input{}, 0},
		{"nil input loads", nil, 0},
		{"refresh bypasses cache", &Input{Refresh: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &refreshingSource{Source: datasettest.NewSource(t)}

			_, err := createTestHandler(t, src).Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRefreshed, src.refreshed)
		})
	}
}

func TestHandler_Execute_LoadFailure(t *testing.T) {
	src := datasettest.Failing(errors.New("connection refused"))

	_, err := createTestHandler(t, src).Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDatasetLoadFailed, apperrors.Classify(err))

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, "connection refused", stdErr.Details)
	assert.Equal(t, "memory", stdErr.Metadata["source"])
}
