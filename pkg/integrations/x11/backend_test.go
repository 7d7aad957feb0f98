package x11

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoverbar/hoverbar/pkg/pointer"
)

func TestBackendInterface(t *testing.T) {
	var _ pointer.Backend = (*Backend)(nil)
}

func TestUnavailableWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	b := NewBackend()
	assert.Equal(t, "x11", b.Name())
	assert.False(t, b.IsAvailable())

	_, err := b.CursorY(context.Background())
	assert.Error(t, err)
	assert.NoError(t, b.Close())
}

func TestCursorY_LiveDisplay(t *testing.T) {
	b := NewBackend()
	if !b.IsAvailable() {
		t.Skip("X display not available on this system")
	}
	defer b.Close()

	y, err := b.CursorY(context.Background())
	if err != nil {
		t.Logf("CursorY() error (may be expected): %v", err)
		return
	}
	t.Logf("Pointer Y: %d", y)
}

func TestCloseIsIdempotent(t *testing.T) {
	b := NewBackend()
	assert.NoError(t, b.Close())
	assert.NoError(t, b.Close())
}
