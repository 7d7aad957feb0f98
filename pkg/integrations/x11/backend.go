package x11

import (
	"context"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// Backend implements pointer.Backend for X11 and XWayland by querying the
// pointer on the root window of the default screen.
type Backend struct {
	mu      sync.Mutex
	display string
	conn    *xgb.Conn
	root    xproto.Window
}

// NewBackend creates a backend for the display named in $DISPLAY
func NewBackend() *Backend {
	return &Backend{display: os.Getenv("DISPLAY")}
}

// Name returns "x11"
func (b *Backend) Name() string {
	return "x11"
}

// IsAvailable reports whether an X display is configured
func (b *Backend) IsAvailable() bool {
	return b.display != ""
}

// CursorY returns the pointer's root-window Y coordinate. The connection is
// opened on first use and dropped after any failed request.
func (b *Backend) CursorY(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.connect(); err != nil {
		return 0, err
	}

	reply, err := xproto.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		b.disconnect()
		return 0, errors.Wrap(err, "failed to query pointer")
	}
	if reply == nil {
		b.disconnect()
		return 0, errors.New("empty pointer reply")
	}

	return int(reply.RootY), nil
}

func (b *Backend) connect() error {
	if b.conn != nil {
		return nil
	}
	if b.display == "" {
		return errors.New("DISPLAY environment variable not set")
	}

	conn, err := xgb.NewConnDisplay(b.display)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to X display %s", b.display)
	}

	b.conn = conn
	b.root = xproto.Setup(conn).DefaultScreen(conn).Root
	return nil
}

func (b *Backend) disconnect() {
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
}

// Close releases the X connection
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnect()
	return nil
}
