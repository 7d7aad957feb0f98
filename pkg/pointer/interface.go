package pointer

import "context"

// Backend is the interface that all compositor pointer queries must satisfy
type Backend interface {
	// CursorY returns the pointer's vertical position in global layout coordinates
	CursorY(ctx context.Context) (int, error)

	// IsAvailable checks if this backend can run on the current system
	IsAvailable() bool

	// Name returns the backend name used in logs and status output
	Name() string

	// Close cleans up any resources used by the backend
	Close() error
}

// Sampler yields one optional pointer Y-coordinate per call.
type Sampler interface {
	Sample(ctx context.Context) (y int, ok bool)
}
