package main

import (
	"bytes"
	"testing"

	"civic-relevance-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *registry.ActivityRegistry {
	return &registry.ActivityRegistry{Activities: []registry.Activity{{
		ID:                   "rank-experts",
		DisplayName:          "Rank Experts",
		Category:             "expertise",
		TaskType:             "rank-experts",
		ImplementationStatus: registry.StatusCompleted,
		Timeout:              "30s",
	}}}
}

func TestUpdateActivity(t *testing.T) {
	tests := []struct {
		field, value string
		check        func(t *testing.T, a *registry.Activity)
		wantErr      string
	}{
		{field: "status", value: "verified", check: func(t *testing.T, a *registry.Activity) {
			assert.Equal(t, registry.StatusVerified, a.ImplementationStatus)
		}},
		{field: "retries", value: "5", check: func(t *testing.T, a *registry.Activity) {
			assert.Equal(t, 5, a.Retries)
		}},
		{field: "timeout", value: "45s", check: func(t *testing.T, a *registry.Activity) {
			assert.Equal(t, "45s", a.Timeout)
		}},
		{field: "retries", value: "many", wantErr: "invalid retries"},
		{field: "owner", value: "x", wantErr: "unknown field"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			reg := testRegistry()
			err := updateActivity(reg, "rank-experts", tt.field, tt.value)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			a, _ := reg.Find("rank-experts")
			tt.check(t, a)
		})
	}

	assert.ErrorContains(t, updateActivity(testRegistry(), "email-send", "status", "verified"), "not found")
}

func TestListActivities(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listActivities(&out, testRegistry()))
	assert.Contains(t, out.String(), "TASK TYPE")
	assert.Contains(t, out.String(), "rank-experts")
	assert.Contains(t, out.String(), "completed")
}
