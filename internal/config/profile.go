package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Duration is a time.Duration read from TOML strings such as "250ms" or "1s".
// A bare number inside the string is taken as milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '75ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Profile is the on-disk TOML layout. Keys left out of the file keep the
// value already present in the Config it is applied to.
type Profile struct {
	Hover   HoverProfile   `toml:"hover"`
	Bar     BarProfile     `toml:"bar"`
	Journal JournalProfile `toml:"journal"`
}

// HoverProfile mirrors HoverConfig.
type HoverProfile struct {
	YThreshold *int      `toml:"y_threshold"`
	Poll       *Duration `toml:"poll"`
	HideDelay  *Duration `toml:"hide_delay"`
	ShowDelay  *Duration `toml:"show_delay"`
}

// BarProfile mirrors BarConfig.
type BarProfile struct {
	Command string   `toml:"command"`
	Config  string   `toml:"config"`
	Style   string   `toml:"style"`
	Args    []string `toml:"args"`
}

// JournalProfile mirrors JournalConfig.
type JournalProfile struct {
	Enabled *bool  `toml:"enabled"`
	Path    string `toml:"path"`
}

// DefaultProfilePath returns ~/.config/hoverbar/hoverbar.toml, or "" when the
// user config directory cannot be determined.
func DefaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hoverbar", "hoverbar.toml")
}

// ApplyProfile reads the TOML profile at path and overlays it onto cfg.
func ApplyProfile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read profile %s", path)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return errors.Wrapf(err, "failed to parse profile %s", path)
	}

	p.apply(cfg)
	return nil
}

func (p *Profile) apply(cfg *Config) {
	if p.Hover.YThreshold != nil {
		cfg.Hover.YThreshold = *p.Hover.YThreshold
	}
	if p.Hover.Poll != nil {
		cfg.Hover.PollInterval = time.Duration(*p.Hover.Poll)
	}
	if p.Hover.HideDelay != nil {
		cfg.Hover.HideDelay = time.Duration(*p.Hover.HideDelay)
	}
	if p.Hover.ShowDelay != nil {
		cfg.Hover.ShowDelay = time.Duration(*p.Hover.ShowDelay)
	}

	if p.Bar.Command != "" {
		cfg.Bar.Command = p.Bar.Command
	}
	if p.Bar.Config != "" {
		cfg.Bar.ConfigPath = p.Bar.Config
	}
	if p.Bar.Style != "" {
		cfg.Bar.StylePath = p.Bar.Style
	}
	if len(p.Bar.Args) > 0 {
		cfg.Bar.ExtraArgs = append([]string(nil), p.Bar.Args...)
	}

	if p.Journal.Enabled != nil {
		cfg.Journal.Enabled = *p.Journal.Enabled
	}
	if p.Journal.Path != "" {
		cfg.Journal.Path = p.Journal.Path
	}
}
