package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// Hover holds the debounce thresholds of the state machine
	Hover HoverConfig

	// Bar describes the managed status bar process
	Bar BarConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Journal configuration
	Journal JournalConfig
}

// HoverConfig holds the pointer thresholds and timing of the hover loop
type HoverConfig struct {
	YThreshold   int           // Pointer Y above which a shown bar may be hidden
	PollInterval time.Duration // How often the pointer is sampled
	HideDelay    time.Duration // Confirmation delay before hiding, 0 disables
	ShowDelay    time.Duration // Dwell time in the top zone before showing, 0 disables
}

// BarConfig holds the invocation of the managed bar process
type BarConfig struct {
	Command    string   // Executable to spawn, looked up in PATH
	ConfigPath string   // Passed to the bar as -c
	StylePath  string   // Passed to the bar as -s
	ExtraArgs  []string // Appended after the config and style arguments
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file guarding a single running instance
}

// JournalConfig holds the optional transition journal configuration
type JournalConfig struct {
	Enabled bool
	Path    string // Empty means use default ~/.local/state/hoverbar/journal.db
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Hover: HoverConfig{
			YThreshold:   7,
			PollInterval: 75 * time.Millisecond,
			HideDelay:    250 * time.Millisecond,
			ShowDelay:    0,
		},
		Bar: BarConfig{
			Command: "waybar",
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/hoverbar-%d.pid", os.Getuid()),
		},
	}
}

// Args returns the argument list handed to the bar on every show.
func (b BarConfig) Args() []string {
	args := make([]string, 0, 4+len(b.ExtraArgs))
	args = append(args, "-c", b.ConfigPath, "-s", b.StylePath)
	return append(args, b.ExtraArgs...)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Bar.ConfigPath == "" {
		return errors.New("bar config path is required (-c/--config)")
	}
	if c.Bar.StylePath == "" {
		return errors.New("bar style path is required (-s/--style)")
	}
	if strings.TrimSpace(c.Bar.Command) == "" {
		return errors.New("bar command cannot be empty")
	}

	if c.Hover.YThreshold < 0 {
		return errors.Errorf("y threshold cannot be negative, got %d", c.Hover.YThreshold)
	}
	if c.Hover.PollInterval <= 0 {
		return errors.Errorf("poll interval must be positive, got %v", c.Hover.PollInterval)
	}
	if c.Hover.HideDelay < 0 {
		return errors.Errorf("hide delay cannot be negative, got %v", c.Hover.HideDelay)
	}
	if c.Hover.ShowDelay < 0 {
		return errors.Errorf("show delay cannot be negative, got %v", c.Hover.ShowDelay)
	}

	if c.Daemon.PIDFile == "" {
		return errors.New("PID file path cannot be empty")
	}

	return nil
}

// SetPollMillis sets the poll interval from a millisecond count
func (c *Config) SetPollMillis(ms int) error {
	if ms <= 0 {
		return errors.Errorf("poll interval must be positive, got %dms", ms)
	}
	c.Hover.PollInterval = time.Duration(ms) * time.Millisecond
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	journal := "disabled"
	if c.Journal.Enabled {
		journal = c.Journal.Path
		if journal == "" {
			journal = "(default path)"
		}
	}

	return fmt.Sprintf(`Configuration:
  Hover:
    Y Threshold: %d
    Poll Interval: %v
    Hide Delay: %v
    Show Delay: %v
  Bar:
    Command: %s
    Args: %s
  Daemon:
    PID File: %s
  Journal: %s`,
		c.Hover.YThreshold,
		c.Hover.PollInterval,
		c.Hover.HideDelay,
		c.Hover.ShowDelay,
		c.Bar.Command,
		strings.Join(c.Bar.Args(), " "),
		c.Daemon.PIDFile,
		journal,
	)
}
