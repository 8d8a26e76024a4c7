package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"marketplace-client/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, config.SessionFile, cfg.Session.Store)
	assert.False(t, cfg.Postgres.Enabled())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeConfig(t, `
backend_url: http://api.internal:9000
poll_interval: 10s
events_driver: kafka
redis:
  host: cache
  menu_ttl: 2m
kafka:
  broker: kafka:9092
postgres:
  host: db
  name: marketplace
  user: app
  password: secret
`)
	t.Setenv("BACKEND_URL", "http://override:9001")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("KAFKA_TOPIC", "client-events")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://override:9001", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, 2*time.Minute, cfg.Redis.MenuTTL)
	assert.Equal(t, "kafka:9092", cfg.Kafka.Broker)
	assert.Equal(t, "client-events", cfg.Kafka.Topic)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=marketplace sslmode=disable", cfg.Postgres.DSN())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown events driver",
			content: "events_driver: nats\n",
			wantErr: "unknown events driver",
		},
		{
			name:    "kafka without broker",
			env:     map[string]string{"EVENTS_DRIVER": "kafka"},
			wantErr: "needs KAFKA_BROKER",
		},
		{
			name:    "rabbitmq without url",
			env:     map[string]string{"EVENTS_DRIVER": "rabbitmq"},
			wantErr: "needs RABBITMQ_URL",
		},
		{
			name:    "redis session without redis",
			env:     map[string]string{"SESSION_STORE": "redis"},
			wantErr: "needs REDIS_HOST",
		},
		{
			name:    "bad yaml",
			content: "backend_url: [\n",
			wantErr: "failed to parse yaml",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"POLL_INTERVAL": "soon"},
			wantErr: "failed to read environment",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			for k, v := range testCase.env {
				t.Setenv(k, v)
			}
			path := ""
			if testCase.content != "" {
				path = writeConfig(t, testCase.content)
			}

			_, err := config.Load(path)

			assert.ErrorContains(t, err, testCase.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestNewEventPublisher_Disabled(t *testing.T) {
	publisher, closeFn, err := config.NewEventPublisher(config.Defaults())

	require.NoError(t, err)
	assert.Nil(t, publisher)
	assert.NoError(t, closeFn())
}

func TestNewEventPublisher_Kafka(t *testing.T) {
	cfg := config.Defaults()
	cfg.EventsDriver = config.EventsKafka
	cfg.Kafka.Broker = "localhost:9092"

	publisher, closeFn, err := config.NewEventPublisher(cfg)

	require.NoError(t, err)
	assert.NotNil(t, publisher)
	assert.NoError(t, closeFn())
}
