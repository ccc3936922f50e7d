package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"agromonitor/pkg/logger"
)

type AppConfig struct {
	Port           string
	Timezone       string
	Env            string
	LogLevel       string
	DBDriver       string // sqlite|mysql
	DBDSN          string
	PollEnabled    bool
	PollInterval   time.Duration
	ThresholdsFile string
	KafkaBrokers   []string
	KafkaTopic     string
	NameCacheTTL   time.Duration
	// FirmScope rejects requests without an X-Firm-ID header when set.
	FirmScope bool

	envErr error
}

func Load() AppConfig {
	// Load .env file if it exists
	envErr := godotenv.Load()

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		if d, err := time.ParseDuration(get(k, "")); err == nil && d > 0 {
			return d
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		Timezone:       get("TZ", "America/Montevideo"),
		Env:            get("ENV", "production"),
		LogLevel:       get("LOG_LEVEL", "info"),
		DBDriver:       strings.ToLower(get("DB_DRIVER", "sqlite")),
		DBDSN:          get("DB_DSN", "agromonitor.db"),
		PollEnabled:    get("POLL_ENABLED", "true") == "true",
		PollInterval:   dur("POLL_INTERVAL", 60*time.Second),
		ThresholdsFile: get("THRESHOLDS_FILE", ""),
		KafkaBrokers:   splitList(get("KAFKA_BROKERS", "")),
		KafkaTopic:     get("KAFKA_TOPIC", "agromonitor.alerts"),
		NameCacheTTL:   dur("NAME_CACHE_TTL", 5*time.Minute),
		FirmScope:      get("FIRM_SCOPE_ENFORCED", "false") == "true",
	}

	cfg.envErr = envErr
	return cfg
}

// Report logs the effective configuration. Call it after logger.Init.
func (cfg AppConfig) Report() {
	log := logger.WithComponent("config")
	if cfg.envErr != nil {
		log.Debug().Err(cfg.envErr).Msg("no .env file loaded")
	}
	log.Info().
		Str("port", cfg.Port).
		Str("db_driver", cfg.DBDriver).
		Bool("poll_enabled", cfg.PollEnabled).
		Dur("poll_interval", cfg.PollInterval).
		Str("thresholds_file", cfg.ThresholdsFile).
		Int("kafka_brokers", len(cfg.KafkaBrokers)).
		Bool("firm_scope", cfg.FirmScope).
		Msg("config loaded")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
