package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, expected := range tests {
		assert.Equal(t, expected, parseLevel(in), in)
	}
}

func TestZapWrapper_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"taskType": "score-relevance"}).
		WithError(errors.New("boom"))

	log.Info("processing job", map[string]interface{}{"jobKey": int64(42)})
	log.With(map[string]interface{}{"issueIndex": 1}).Warn("threshold clamped", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "processing job", entries[0].Message)
	assert.Equal(t, "score-relevance", first["taskType"])
	assert.Equal(t, int64(42), first["jobKey"])
	assert.Equal(t, "boom", first["error"])

	second := entries[1].ContextMap()
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(1), second["issueIndex"])
}

func TestNew_BadOutputFallsBackToNop(t *testing.T) {
	l := New("info", "json", "/nonexistent-dir/forbidden/log.json")
	require.NotNil(t, l)
	l.Info("dropped")
}

func TestNewNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Error("ignored", map[string]interface{}{"k": "v"})
	assert.NotNil(t, log.WithFields(nil))
}
