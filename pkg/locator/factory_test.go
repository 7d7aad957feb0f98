package locator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FixedPriorityOrder(t *testing.T) {
	l := New(nil)
	defer l.Close()

	infos := l.Backends()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"hyprland", "sway", "x11"}, names)
}

func TestNew_Sample(t *testing.T) {
	l := New(nil)
	defer l.Close()

	y, ok := l.Sample(context.Background())
	if !ok {
		t.Logf("No pointer backend answered (expected outside a desktop session)")
		return
	}
	t.Logf("Pointer Y: %d via %s", y, l.LastBackend())
}

func TestDetectSession(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{
			name:     "Hyprland session",
			env:      map[string]string{"HYPRLAND_INSTANCE_SIGNATURE": "abc", "WAYLAND_DISPLAY": "wayland-1"},
			expected: "hyprland",
		},
		{
			name:     "Sway session",
			env:      map[string]string{"SWAYSOCK": "/run/user/1000/sway-ipc.sock", "WAYLAND_DISPLAY": "wayland-1"},
			expected: "sway",
		},
		{
			name:     "Other wayland compositor",
			env:      map[string]string{"XDG_SESSION_TYPE": "wayland"},
			expected: "wayland",
		},
		{
			name:     "X11 session",
			env:      map[string]string{"DISPLAY": ":0"},
			expected: "x11",
		},
		{
			name:     "Unknown session",
			env:      map[string]string{},
			expected: "unknown",
		},
	}

	keys := []string{"HYPRLAND_INSTANCE_SIGNATURE", "SWAYSOCK", "XDG_SESSION_TYPE", "WAYLAND_DISPLAY", "DISPLAY"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, tt.env[k])
			}
			assert.Equal(t, tt.expected, DetectSession())
		})
	}
}
