// SPDX-License-Identifier: MIT

package scheduler

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Sentinel errors returned by the scheduler.
var (
	// ErrNoCores indicates a scheduler built with fewer than one core.
	ErrNoCores = errors.New("scheduler: at least one core is required")

	// ErrBadCapacity indicates a negative ready-queue capacity or limit.
	ErrBadCapacity = errors.New("scheduler: ready queue capacity must be non-negative")

	// ErrBadProcess indicates a process with a non-positive ID or clock count.
	ErrBadProcess = errors.New("scheduler: invalid process")

	// ErrDuplicateProcess indicates two processes sharing an ID.
	ErrDuplicateProcess = errors.New("scheduler: duplicate process id")

	// ErrUnknownDependency indicates a dependency on an ID not in the batch.
	ErrUnknownDependency = errors.New("scheduler: dependency on unknown process")

	// ErrUnresolvedDependency indicates processes that can never become
	// ready because their dependencies form a cycle.
	ErrUnresolvedDependency = errors.New("scheduler: unresolved dependencies")
)

// Process is one unit of work.
//
// DependsOn names the process that must finish before this one becomes
// ready; 0 means it is ready from the start.
type Process struct {
	ID        int
	Clocks    int64
	Priority  int
	DependsOn int
}

// EventKind tells whether a process started or finished.
type EventKind uint8

const (
	// Started marks a process placed on a core.
	Started EventKind = iota + 1
	// Finished marks a process that used up its clocks.
	Finished
)

// String returns "started" or "finished".
func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event is one step of a simulated run.
type Event struct {
	Kind    EventKind
	Process Process
	Core    int
	Clock   int64
}

// String renders the event as "process 2 started on core 0 at clock 0".
func (e Event) String() string {
	return fmt.Sprintf("process %d %s on core %d at clock %d", e.Process.ID, e.Kind, e.Core, e.Clock)
}

// Options configures a Scheduler.
//
// Logger        – Debug per event, Warn on dropped or stuck processes.
// Observer      – called synchronously for every event, in order.
// QueueCapacity – initial capacity of the ready queue.
// MaxReady      – ready-queue growth limit; exceeding it aborts Run.
type Options struct {
	Logger        *zap.Logger
	Observer      func(Event)
	QueueCapacity int
	MaxReady      int

	err error
}

// Option represents a functional option for scheduler construction.
type Option func(*Options)

// DefaultOptions returns a no-op logger, no observer, and an unbounded
// ready queue.
func DefaultOptions() Options {
	return Options{
		Logger:   zap.NewNop(),
		MaxReady: math.MaxInt / 2,
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers a callback receiving every event as it happens.
func WithObserver(fn func(Event)) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}

// WithQueueCapacity presizes the ready queue.
// A negative value surfaces as ErrBadCapacity from New.
func WithQueueCapacity(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrBadCapacity
			return
		}
		o.QueueCapacity = n
	}
}

// WithMaxReady bounds how many processes may wait at once.
// A negative value surfaces as ErrBadCapacity from New.
func WithMaxReady(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrBadCapacity
			return
		}
		o.MaxReady = n
	}
}
