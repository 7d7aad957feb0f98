package hyprland

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoverbar/hoverbar/pkg/pointer"
)

func TestBackendInterface(t *testing.T) {
	var _ pointer.Backend = (*Backend)(nil)
}

func TestParseCursorPos(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "standard", input: "1280, 4\n", want: 4},
		{name: "top edge", input: "0, 0", want: 0},
		{name: "no space", input: "10,720", want: 720},
		{name: "monitor above", input: "300, -20", want: -20},
		{name: "extra fields", input: "1, 2, 3", want: 2},
		{name: "empty", input: "", wantErr: true},
		{name: "no comma", input: "HYPRLAND_INSTANCE_SIGNATURE not set", wantErr: true},
		{name: "garbled y", input: "12, abc", wantErr: true},
		{name: "truncated", input: "12,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCursorPos(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCursorY_UsesHyprctlCursorpos(t *testing.T) {
	var gotName string
	var gotArgs []string
	b := NewBackendWithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("640, 1\n"), nil
	})

	y, err := b.CursorY(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, y)
	assert.Equal(t, "hyprctl", gotName)
	assert.Equal(t, []string{"cursorpos"}, gotArgs)
}

func TestCursorY_CommandFailure(t *testing.T) {
	b := NewBackendWithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("640, 1"), errors.New("exit status 1")
	})

	_, err := b.CursorY(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hyprctl")
}

func TestNewBackend(t *testing.T) {
	b := NewBackend()
	assert.Equal(t, "hyprland", b.Name())
	t.Logf("hyprctl available: %v", b.IsAvailable())
	assert.NoError(t, b.Close())
}
