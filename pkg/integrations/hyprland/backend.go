package hyprland

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hoverbar/hoverbar/pkg/integrations/common"
)

// Backend implements pointer.Backend for Hyprland via hyprctl
type Backend struct {
	run        common.Runner
	hasHyprctl bool
}

// NewBackend creates a new Hyprland backend
func NewBackend() *Backend {
	return &Backend{
		run:        common.ExecRunner,
		hasHyprctl: common.CommandExists("hyprctl"),
	}
}

// NewBackendWithRunner creates a backend that queries through run instead of
// spawning hyprctl.
func NewBackendWithRunner(run common.Runner) *Backend {
	return &Backend{run: run, hasHyprctl: true}
}

// Name returns "hyprland"
func (b *Backend) Name() string {
	return "hyprland"
}

// IsAvailable reports whether hyprctl is in PATH
func (b *Backend) IsAvailable() bool {
	return b.hasHyprctl
}

// CursorY asks hyprctl for the cursor position
func (b *Backend) CursorY(ctx context.Context) (int, error) {
	output, err := b.run(ctx, "hyprctl", "cursorpos")
	if err != nil {
		return 0, errors.Wrap(err, "failed to execute hyprctl")
	}
	return parseCursorPos(string(output))
}

// parseCursorPos parses hyprctl cursorpos output: "1280, 4"
func parseCursorPos(output string) (int, error) {
	parts := strings.Split(output, ",")
	if len(parts) < 2 {
		return 0, errors.Errorf("unexpected cursorpos output %q", strings.TrimSpace(output))
	}

	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, errors.Wrap(err, "invalid cursor y")
	}
	return y, nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}
