package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoverbar/hoverbar/pkg/pointer"
)

type mockBackend struct {
	name      string
	available bool
	y         int
	err       error
	calls     int
	closed    bool
}

func (m *mockBackend) CursorY(ctx context.Context) (int, error) {
	m.calls++
	return m.y, m.err
}

func (m *mockBackend) IsAvailable() bool { return m.available }
func (m *mockBackend) Name() string      { return m.name }
func (m *mockBackend) Close() error      { m.closed = true; return nil }

func TestLocatorInterface(t *testing.T) {
	var _ pointer.Sampler = (*Locator)(nil)
}

func TestSample_PrimaryWins(t *testing.T) {
	primary := &mockBackend{name: "hyprland", available: true, y: 0}
	fallback := &mockBackend{name: "sway", available: true, y: 500}

	l := NewLocator(nil, primary, fallback)
	y, ok := l.Sample(context.Background())

	assert.True(t, ok)
	assert.Equal(t, 0, y)
	assert.Equal(t, 0, fallback.calls)
	assert.Equal(t, "hyprland", l.LastBackend())
}

func TestSample_FallsThroughOnError(t *testing.T) {
	primary := &mockBackend{name: "hyprland", available: true, err: errors.New("not running")}
	fallback := &mockBackend{name: "sway", available: true, y: 12}

	l := NewLocator(nil, primary, fallback)
	y, ok := l.Sample(context.Background())

	assert.True(t, ok)
	assert.Equal(t, 12, y)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, "sway", l.LastBackend())
}

func TestSample_SkipsUnavailable(t *testing.T) {
	primary := &mockBackend{name: "hyprland", available: false, y: 1}
	fallback := &mockBackend{name: "sway", available: true, y: 30}

	l := NewLocator(nil, primary, fallback)
	y, ok := l.Sample(context.Background())

	assert.True(t, ok)
	assert.Equal(t, 30, y)
	assert.Equal(t, 0, primary.calls)
}

func TestSample_NoSignal(t *testing.T) {
	l := NewLocator(nil,
		&mockBackend{name: "hyprland", available: true, err: errors.New("bad output")},
		&mockBackend{name: "sway", available: true, err: errors.New("bad output")},
		&mockBackend{name: "x11", available: false},
	)

	_, ok := l.Sample(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "", l.LastBackend())
}

func TestSample_NoBackends(t *testing.T) {
	l := NewLocator(nil)
	_, ok := l.Sample(context.Background())
	assert.False(t, ok)
}

func TestBackendsAndStatus(t *testing.T) {
	l := NewLocator(nil,
		&mockBackend{name: "hyprland", available: true},
		&mockBackend{name: "sway", available: false},
	)

	infos := l.Backends()
	assert.Equal(t, []BackendInfo{
		{Name: "hyprland", Priority: 1, Available: true},
		{Name: "sway", Priority: 2, Available: false},
	}, infos)

	status := l.GetStatus()
	assert.Contains(t, status, "1. hyprland (available: true)")
	assert.Contains(t, status, "Last successful backend: none")
}

func TestClose(t *testing.T) {
	a := &mockBackend{name: "a"}
	b := &mockBackend{name: "b"}
	l := NewLocator(nil, a, b)

	assert.NoError(t, l.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
