package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "POLL_INTERVAL", "POLL_ENABLED", "KAFKA_BROKERS", "THRESHOLDS_FILE", "FIRM_SCOPE_ENFORCED"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.True(t, cfg.PollEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.FirmScope)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("POLL_INTERVAL", "2m")
	t.Setenv("POLL_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 2*time.Minute, cfg.PollInterval)
	assert.False(t, cfg.PollEnabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "soon")
	assert.Equal(t, 60*time.Second, Load().PollInterval)
}
