package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"civic-relevance-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, checks map[string]readinessCheck, path string) (int, map[string]interface{}) {
	t.Helper()
	srv := newServer(":0", checks, logger.NewTestLogger(t))

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestServer_Health(t *testing.T) {
	code, body := serve(t, nil, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]readinessCheck
		wantCode   int
		wantFailed map[string]interface{}
	}{
		{"all ready", map[string]readinessCheck{"zeebe": ok, "backends": ok}, http.StatusOK, nil},
		{"no checks", nil, http.StatusOK, nil},
		{
			"zeebe down",
			map[string]readinessCheck{"zeebe": down, "backends": ok},
			http.StatusServiceUnavailable,
			map[string]interface{}{"zeebe": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := serve(t, tt.checks, "/ready")
			assert.Equal(t, tt.wantCode, code)
			if tt.wantFailed == nil {
				assert.Equal(t, "ready", body["status"])
				return
			}
			assert.Equal(t, "not ready", body["status"])
			assert.Equal(t, tt.wantFailed, body["failed"])
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	srv := newServer(":0", nil, logger.NewNoOpLogger())
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
