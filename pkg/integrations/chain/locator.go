package chain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hoverbar/hoverbar/pkg/pointer"
)

// Locator tries each backend in order and returns the first coordinate that
// parses. It implements pointer.Sampler.
type Locator struct {
	backends []pointer.Backend
	logger   *slog.Logger

	mu                   sync.Mutex
	lastSuccessfulMethod string
}

// BackendInfo describes one backend for status output
type BackendInfo struct {
	Name      string
	Priority  int
	Available bool
}

// NewLocator creates a locator over backends, highest priority first
func NewLocator(logger *slog.Logger, backends ...pointer.Backend) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		backends: backends,
		logger:   logger,
	}
}

// Sample returns the pointer Y from the first backend that answers, or
// ok=false when none of them produced a parseable value.
func (l *Locator) Sample(ctx context.Context) (int, bool) {
	for _, b := range l.backends {
		if !b.IsAvailable() {
			continue
		}

		y, err := b.CursorY(ctx)
		if err != nil {
			l.logger.Debug("pointer query failed", "backend", b.Name(), "error", err)
			continue
		}

		l.noteSuccess(b.Name())
		return y, true
	}

	return 0, false
}

func (l *Locator) noteSuccess(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lastSuccessfulMethod != name {
		l.logger.Info("pointer backend active", "backend", name, "previous", l.lastSuccessfulMethod)
		l.lastSuccessfulMethod = name
	}
}

// LastBackend returns the name of the backend that produced the latest sample
func (l *Locator) LastBackend() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSuccessfulMethod
}

// Backends lists the configured backends in priority order
func (l *Locator) Backends() []BackendInfo {
	infos := make([]BackendInfo, 0, len(l.backends))
	for i, b := range l.backends {
		infos = append(infos, BackendInfo{
			Name:      b.Name(),
			Priority:  i + 1,
			Available: b.IsAvailable(),
		})
	}
	return infos
}

// GetStatus returns a human-readable summary of the backends
func (l *Locator) GetStatus() string {
	status := "Pointer Locator Status:\n"
	for _, info := range l.Backends() {
		status += fmt.Sprintf("  %d. %s (available: %v)\n", info.Priority, info.Name, info.Available)
	}

	last := l.LastBackend()
	if last == "" {
		last = "none"
	}
	status += fmt.Sprintf("  Last successful backend: %s\n", last)

	return status
}

// Close closes every backend
func (l *Locator) Close() error {
	for _, b := range l.backends {
		if err := b.Close(); err != nil {
			l.logger.Warn("error closing pointer backend", "backend", b.Name(), "error", err)
		}
	}
	return nil
}
