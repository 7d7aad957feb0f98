// Package bar owns the lifecycle of the managed status bar process.
package bar

import (
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/pkg/errors"
)

// Spawner starts name with args and returns the running process.
type Spawner func(name string, args []string) (*os.Process, error)

// Controller spawns and terminates the bar. It holds at most one live
// process handle; spawn and termination failures never reach the caller.
type Controller struct {
	command string
	spawn   Spawner
	logger  *slog.Logger

	mu   sync.Mutex
	proc *os.Process
}

// Option configures a Controller
type Option func(*Controller)

// WithSpawner replaces the exec-based spawner
func WithSpawner(s Spawner) Option {
	return func(c *Controller) {
		c.spawn = s
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller for the given bar executable
func NewController(command string, opts ...Option) *Controller {
	c := &Controller{
		command: command,
		spawn:   ExecSpawner,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExecSpawner starts the process with the caller's stdio and reaps it in the
// background once it exits.
func ExecSpawner(name string, args []string) (*os.Process, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to start %s", name)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return cmd.Process, nil
}

// Show spawns the bar with args and records it as the live handle, replacing
// any previous one. A failed spawn leaves the handle untouched.
func (c *Controller) Show(args []string) {
	proc, err := c.spawn(c.command, args)
	if err != nil {
		c.logger.Debug("bar spawn failed", "command", c.command, "error", err)
		return
	}
	if proc == nil {
		return
	}

	c.mu.Lock()
	c.proc = proc
	c.mu.Unlock()

	c.logger.Debug("bar spawned", "command", c.command, "pid", proc.Pid)
}

// Hide takes the live handle and asks that process to terminate. The handle
// is cleared even if the signal cannot be delivered.
func (c *Controller) Hide() {
	c.mu.Lock()
	proc := c.proc
	c.proc = nil
	c.mu.Unlock()

	if proc == nil {
		return
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		c.logger.Debug("bar termination failed", "pid", proc.Pid, "error", err)
		return
	}
	c.logger.Debug("bar terminated", "pid", proc.Pid)
}

// PID returns the live handle's process id, if any
func (c *Controller) PID() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.proc == nil {
		return 0, false
	}
	return c.proc.Pid, true
}
