package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"

	"github.com/sadopc/lifequest/internal/store"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	DBPath              string        `env:"LIFEQUEST_DB"`
	LogPath             string        `env:"LIFEQUEST_LOG"`
	LogLevel            slog.Level    `env:"LIFEQUEST_LOG_LEVEL"            envDefault:"info"`
	RegenInterval       time.Duration `env:"LIFEQUEST_REGEN_INTERVAL"       envDefault:"1m"`
	MaintenanceSchedule string        `env:"LIFEQUEST_MAINTENANCE_SCHEDULE" envDefault:"@hourly"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment, fills in path defaults and validates the
// schedule settings.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return Config{}, fmt.Errorf("default db path: %w", err)
		}
		cfg.DBPath = p
	}
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogPath(cfg.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultLogPath places the log file next to the database.
func DefaultLogPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "lifequest.log")
}

func (c Config) Validate() error {
	if c.RegenInterval < 0 {
		return fmt.Errorf("regen interval %s is negative", c.RegenInterval)
	}
	if spec := c.MaintenanceSpec(); spec != "" {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("maintenance schedule %q: %w", spec, err)
		}
	}
	return nil
}

// MaintenanceSpec returns the cron spec for periodic maintenance, or ""
// when it is turned off.
func (c Config) MaintenanceSpec() string {
	switch strings.ToLower(strings.TrimSpace(c.MaintenanceSchedule)) {
	case "off", "none", "disabled":
		return ""
	}
	return strings.TrimSpace(c.MaintenanceSchedule)
}
