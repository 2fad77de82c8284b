package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
workers:
  score-relevance:
    enabled: true
  notify-micro-community:
    enabled: false
    timeout: 5000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "civic-relevance-workers", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, SourceFile, cfg.Explorer.DataSource)
	assert.Equal(t, 0.5, cfg.Explorer.DefaultThreshold)
	assert.Equal(t, "micro-communities", cfg.Explorer.CommunityIndex)
	assert.Equal(t, 300, cfg.Explorer.CacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Address)

	scoring := GetWorkerConfig(cfg, "score-relevance")
	assert.Equal(t, 5, scoring.MaxJobsActive)
	assert.Equal(t, 30000, scoring.Timeout)
	assert.Equal(t, 3, scoring.MaxRetries)

	assert.Equal(t, 5000, GetWorkerConfig(cfg, "notify-micro-community").Timeout)
	assert.False(t, IsWorkerEnabled(cfg, "notify-micro-community"))
	assert.True(t, IsWorkerEnabled(cfg, "rank-experts"))
}

func TestLoadFromFile_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_EXPLORER_BASE_URL", "http://data.local")
	t.Setenv("TEST_TOPIC_ARN", "arn:aws:sns:eu-west-1:123:community")

	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
explorer:
  data_source: http
  base_url: ${TEST_EXPLORER_BASE_URL}
integrations:
  aws:
    sns:
      enabled: true
      topic_arn: ${TEST_TOPIC_ARN}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://data.local", cfg.Explorer.BaseURL)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123:community", cfg.Integrations.AWS.SNS.TopicARN)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "missing broker",
			body: `
database:
  redis:
    address: localhost:6379
`,
			wantErr: "camunda.broker_address",
		},
		{
			name: "http source without base url",
			body: `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
explorer:
  data_source: http
`,
			wantErr: "explorer.base_url",
		},
		{
			name: "postgres source without host",
			body: `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
explorer:
  data_source: postgres
`,
			wantErr: "database.postgres.host",
		},
		{
			name: "unknown source",
			body: `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
explorer:
  data_source: ftp
`,
			wantErr: "explorer.data_source",
		},
		{
			name: "threshold out of range",
			body: `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
explorer:
  default_threshold: 1.5
`,
			wantErr: "default_threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "explorer", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=explorer sslmode=disable", p.GetDSN())
}
