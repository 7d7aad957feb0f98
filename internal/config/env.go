package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// LoadFromEnv loads configuration from environment variables.
// Values that fail to parse are ignored and the previous value is kept.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("HOVERBAR_Y_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Hover.YThreshold = n
		}
	}

	if v := os.Getenv("HOVERBAR_POLL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Hover.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("HOVERBAR_HIDE_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.Hover.HideDelay = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("HOVERBAR_SHOW_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.Hover.ShowDelay = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("HOVERBAR_BAR_COMMAND"); v != "" {
		cfg.Bar.Command = v
	}

	if v := os.Getenv("HOVERBAR_PID_FILE"); v != "" {
		cfg.Daemon.PIDFile = v
	}

	if v := os.Getenv("HOVERBAR_JOURNAL_PATH"); v != "" {
		cfg.Journal.Path = v
	}
}

// Load builds a Config from defaults, the TOML profile at profilePath and the
// environment, in that order. An empty profilePath falls back to the default
// profile location, which may be absent.
func Load(profilePath string) (*Config, error) {
	cfg := Default()

	explicit := profilePath != ""
	if !explicit {
		profilePath = DefaultProfilePath()
	}
	if profilePath != "" {
		if err := ApplyProfile(cfg, profilePath); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	LoadFromEnv(cfg)
	return cfg, nil
}
