package locator

import (
	"log/slog"
	"os"

	"github.com/hoverbar/hoverbar/pkg/integrations/chain"
	"github.com/hoverbar/hoverbar/pkg/integrations/hyprland"
	"github.com/hoverbar/hoverbar/pkg/integrations/sway"
	"github.com/hoverbar/hoverbar/pkg/integrations/x11"
)

// New returns a locator that asks Hyprland first, then Sway, then X11.
func New(logger *slog.Logger) *chain.Locator {
	return chain.NewLocator(logger,
		hyprland.NewBackend(),
		sway.NewBackend(),
		x11.NewBackend(),
	)
}

// DetectSession guesses the running compositor from the environment
func DetectSession() string {
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return "hyprland"
	}

	if os.Getenv("SWAYSOCK") != "" {
		return "sway"
	}

	sessionType := os.Getenv("XDG_SESSION_TYPE")
	if sessionType == "wayland" || os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}

	if sessionType == "x11" || os.Getenv("DISPLAY") != "" {
		return "x11"
	}

	return "unknown"
}
