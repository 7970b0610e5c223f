package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store driver names accepted by StoreDriver.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

type Config struct {
	Environment string `envconfig:"FUNNEL_ENVIRONMENT" default:"development"`
	StoreDriver string `envconfig:"FUNNEL_STORE_DRIVER" default:"file"`
	StorePath   string `envconfig:"FUNNEL_STORE_PATH" default:""`
	PageURL     string `envconfig:"FUNNEL_PAGE_URL" default:""`
	Referrer    string `envconfig:"FUNNEL_REFERRER" default:""`
}

func Load() (*Config, error) {
	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// envconfig leaves set-but-empty variables empty instead of applying
	// the tag default; normalize those before validating.
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverFile
	}

	switch cfg.StoreDriver {
	case DriverFile, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown store driver: %s (supported: file, sqlite)", cfg.StoreDriver)
	}

	if cfg.StorePath == "" {
		if cfg.StoreDriver == DriverSQLite {
			cfg.StorePath = "funnel-analytics.db"
		} else {
			cfg.StorePath = "funnel-analytics.json"
		}
	}

	return &cfg, nil
}
