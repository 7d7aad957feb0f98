// Package hover turns polled pointer samples into show/hide decisions for
// the managed bar.
package hover

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/hoverbar/hoverbar/internal/config"
	"github.com/hoverbar/hoverbar/pkg/pointer"
)

// TopEdge is the highest Y that still counts as resting on the top edge.
const TopEdge = 1

// Kind names a transition of the machine.
type Kind string

const (
	KindNone        Kind = ""
	KindShown       Kind = "shown"
	KindHidden      Kind = "hidden"
	KindHideAborted Kind = "hide_aborted"
)

// Event describes one transition.
type Event struct {
	Kind     Kind
	At       time.Time
	PointerY int
	// Dwell is the time spent in the top zone before a show.
	Dwell time.Duration
}

// Bar is the process controller driven by the machine.
type Bar interface {
	Show(args []string)
	Hide()
}

// Recorder receives every transition. It must not block for long.
type Recorder interface {
	Record(Event)
}

// Machine is the hover debounce state machine. Its state is owned by the
// goroutine calling Step or Run.
type Machine struct {
	cfg      config.HoverConfig
	args     []string
	sampler  pointer.Sampler
	bar      Bar
	clock    Clock
	recorder Recorder
	logger   *slog.Logger

	shown        bool
	inTopZone    bool
	topEnteredAt time.Time

	running atomic.Bool
}

// Option configures a Machine
type Option func(*Machine)

// WithClock replaces the wall clock
func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithRecorder attaches a transition recorder
func WithRecorder(r Recorder) Option {
	return func(m *Machine) { m.recorder = r }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// New creates a machine that shows the bar with args.
func New(cfg config.HoverConfig, args []string, sampler pointer.Sampler, bar Bar, opts ...Option) *Machine {
	m := &Machine{
		cfg:     cfg,
		args:    append([]string(nil), args...),
		sampler: sampler,
		bar:     bar,
		clock:   realClock{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Shown reports whether the bar is considered visible.
func (m *Machine) Shown() bool {
	return m.shown
}

// TopEnteredAt returns when the pointer entered the top zone, if it is there.
func (m *Machine) TopEnteredAt() (time.Time, bool) {
	return m.topEnteredAt, m.inTopZone
}

// Run polls until ctx is cancelled. Cancellation is only observed between
// ticks; a pending hide confirmation always completes first.
func (m *Machine) Run(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return errors.New("hover loop is already running")
	}
	defer m.running.Store(false)

	m.logger.Info("hover loop started",
		"poll", m.cfg.PollInterval,
		"y_threshold", m.cfg.YThreshold,
		"hide_delay", m.cfg.HideDelay,
		"show_delay", m.cfg.ShowDelay,
	)

	for {
		m.Step(ctx)

		if err := m.wait(ctx, m.cfg.PollInterval); err != nil {
			m.logger.Info("hover loop stopped")
			return err
		}
	}
}

func (m *Machine) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.clock.After(d):
		return nil
	}
}

// Step takes one pointer sample and applies it. A missing sample leaves the
// state untouched.
func (m *Machine) Step(ctx context.Context) Kind {
	y, ok := m.sampler.Sample(ctx)
	if !ok {
		return KindNone
	}

	if y <= TopEdge {
		return m.atTop(y)
	}
	return m.awayFromTop(ctx, y)
}

func (m *Machine) atTop(y int) Kind {
	now := m.clock.Now()
	if !m.inTopZone {
		m.inTopZone = true
		m.topEnteredAt = now
	}

	if m.shown {
		return KindNone
	}

	dwell := now.Sub(m.topEnteredAt)
	if m.cfg.ShowDelay > 0 && dwell < m.cfg.ShowDelay {
		return KindNone
	}

	m.bar.Show(m.args)
	m.shown = true
	m.emit(Event{Kind: KindShown, At: now, PointerY: y, Dwell: dwell})
	return KindShown
}

func (m *Machine) awayFromTop(ctx context.Context, y int) Kind {
	m.inTopZone = false
	m.topEnteredAt = time.Time{}

	// 1 < y <= YThreshold is the hysteresis band.
	if !m.shown || y <= m.cfg.YThreshold {
		return KindNone
	}

	if m.cfg.HideDelay > 0 {
		<-m.clock.After(m.cfg.HideDelay)

		if again, ok := m.sampler.Sample(ctx); ok && again <= m.cfg.YThreshold {
			m.emit(Event{Kind: KindHideAborted, At: m.clock.Now(), PointerY: again})
			return KindHideAborted
		}
	}

	m.bar.Hide()
	m.shown = false
	m.emit(Event{Kind: KindHidden, At: m.clock.Now(), PointerY: y})
	return KindHidden
}

func (m *Machine) emit(ev Event) {
	switch ev.Kind {
	case KindShown:
		m.logger.Info("bar shown", "y", ev.PointerY, "dwell", ev.Dwell)
	case KindHidden:
		m.logger.Info("bar hidden", "y", ev.PointerY)
	case KindHideAborted:
		m.logger.Info("hide aborted", "y", ev.PointerY)
	}

	if m.recorder != nil {
		m.recorder.Record(ev)
	}
}
