package sway

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/hoverbar/hoverbar/pkg/integrations/common"
)

const cursorKey = "cursor_y"

// Backend implements pointer.Backend for Sway via swaymsg
type Backend struct {
	run        common.Runner
	hasSwaymsg bool
}

// NewBackend creates a new Sway backend
func NewBackend() *Backend {
	return &Backend{
		run:        common.ExecRunner,
		hasSwaymsg: common.CommandExists("swaymsg"),
	}
}

// NewBackendWithRunner creates a backend that queries through run instead of
// spawning swaymsg.
func NewBackendWithRunner(run common.Runner) *Backend {
	return &Backend{run: run, hasSwaymsg: true}
}

// Name returns "sway"
func (b *Backend) Name() string {
	return "sway"
}

// IsAvailable reports whether swaymsg is in PATH
func (b *Backend) IsAvailable() bool {
	return b.hasSwaymsg
}

// CursorY reads the cursor position out of the seat state
func (b *Backend) CursorY(ctx context.Context) (int, error) {
	output, err := b.run(ctx, "swaymsg", "-t", "get_seats")
	if err != nil {
		return 0, errors.Wrap(err, "failed to execute swaymsg")
	}
	return parseSeats(output)
}

// parseSeats returns the first numeric cursor_y found anywhere in the payload
func parseSeats(payload []byte) (int, error) {
	if !gjson.ValidBytes(payload) {
		return 0, errors.New("seat payload is not valid JSON")
	}

	value, ok := findKey(gjson.ParseBytes(payload), cursorKey)
	if !ok {
		return 0, errors.Errorf("no %s in seat payload", cursorKey)
	}
	if value.Type != gjson.Number {
		return 0, errors.Errorf("%s is %s, not a number", cursorKey, value.Type)
	}
	return int(value.Int()), nil
}

// findKey walks objects and arrays depth-first in document order.
func findKey(node gjson.Result, key string) (gjson.Result, bool) {
	var (
		found gjson.Result
		hit   bool
	)
	node.ForEach(func(k, v gjson.Result) bool {
		if k.Type == gjson.String && k.Str == key {
			found, hit = v, true
			return false
		}
		if v.IsObject() || v.IsArray() {
			if r, ok := findKey(v, key); ok {
				found, hit = r, true
				return false
			}
		}
		return true
	})
	return found, hit
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}
