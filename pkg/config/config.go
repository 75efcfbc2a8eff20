package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
)

type Config struct {
	AppEnv   string `env:"APP_ENV,default=dev"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	APIBaseURL  string        `env:"API_BASE_URL,default=http://localhost:8000"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,default=10s"`

	PageSize     int           `env:"PAGE_SIZE,default=12"`
	SearchQuiet  time.Duration `env:"SEARCH_QUIET,default=300ms"`
	PaymentDelay time.Duration `env:"PAYMENT_DELAY,default=1s"`

	// SessionDir holds the persisted session files. Empty means a
	// "shopfront" directory under the user config dir.
	SessionDir string `env:"SESSION_DIR"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}

	if cfg.SessionDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		cfg.SessionDir = filepath.Join(base, "shopfront")
	}

	return cfg, nil
}
