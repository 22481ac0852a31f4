// SPDX-License-Identifier: MIT
// Package: ordlab/scheduler
//
// scheduler.go - discrete-event simulation of processes on fixed cores.
//
// Contract:
//   - Higher priority runs first; equal priorities go to the lower ID.
//   - Finishes at an instant are retired before idle cores pick new work.
//   - A process becomes ready only when the process it depends on finishes.
//   - Same batch and options give the same event sequence.

package scheduler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/ordlab/pqueue"
)

// Scheduler simulates a fixed number of cores running batches of processes.
// Each Run is independent; a Scheduler holds configuration only.
type Scheduler struct {
	cores int
	opts  Options
	log   *zap.Logger
}

// New creates a scheduler for the given number of cores.
//
// Errors: ErrNoCores, ErrBadCapacity.
func New(cores int, opts ...Option) (*Scheduler, error) {
	if cores < 1 {
		return nil, fmt.Errorf("%w: %d", ErrNoCores, cores)
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if cfg.QueueCapacity > cfg.MaxReady {
		return nil, fmt.Errorf("%w: capacity %d above limit %d", ErrBadCapacity, cfg.QueueCapacity, cfg.MaxReady)
	}

	return &Scheduler{cores: cores, opts: cfg, log: cfg.Logger}, nil
}

// Cores returns the number of simulated cores.
func (s *Scheduler) Cores() int { return s.cores }

// byUrgency orders the ready queue: higher Priority first, then lower ID.
func byUrgency(a, b Process) int {
	if c := pqueue.Natural(a.Priority, b.Priority); c != 0 {
		return c
	}

	return pqueue.Natural(b.ID, a.ID)
}

// slot is the state of one core.
type slot struct {
	proc Process
	ends int64
	busy bool
}

// run is the mutable state of one simulation.
type run struct {
	s       *Scheduler
	ready   *pqueue.Queue[Process]
	waiting map[int][]Process // parent ID → dependents, input order
	cores   []slot
	clock   int64
	done    int
	events  []Event
}

// Run simulates procs to completion and returns every event in order.
//
// At each instant the scheduler first reports the processes finishing then,
// in core order, releasing their dependents. Idle cores, lowest index first,
// then take the most urgent ready process. Time jumps to the next finish.
//
// Errors: ErrBadProcess, ErrDuplicateProcess, ErrUnknownDependency before
// anything runs; ErrUnresolvedDependency when a dependency cycle stalls the
// run (the events up to the stall are returned); pqueue.ErrOutOfMemory when
// more than MaxReady processes wait at once. Ready processes still queued on
// error are released through the queue disposer.
func (s *Scheduler) Run(procs []Process) ([]Event, error) {
	// 1) Reject malformed batches before anything runs.
	if err := validate(procs); err != nil {
		return nil, err
	}

	// 2) Ready queue ordered by urgency, bounded by MaxReady.
	ready, err := pqueue.New[Process](s.opts.QueueCapacity, byUrgency, s.drop, pqueue.WithMaxCapacity(s.opts.MaxReady))
	if err != nil {
		return nil, fmt.Errorf("scheduler: ready queue: %w", err)
	}
	r := &run{
		s:       s,
		ready:   ready,
		waiting: make(map[int][]Process),
		cores:   make([]slot, s.cores),
	}

	// 3) Independent processes are ready at clock 0; the rest wait on
	//    their dependency.
	for _, p := range procs {
		if p.DependsOn != 0 {
			r.waiting[p.DependsOn] = append(r.waiting[p.DependsOn], p)
			continue
		}
		if err = r.enqueue(p); err != nil {
			return nil, err
		}
	}

	// 4) Dispatch, jump to the next finish, retire; until every core idles.
	for {
		r.dispatch()
		if !r.advance() {
			break
		}
		if err = r.finish(); err != nil {
			return r.events, err
		}
	}

	// 5) Anything never run sits behind a cycle.
	if r.done < len(procs) {
		stuck := len(procs) - r.done
		s.log.Warn("unresolved dependencies", zap.Int("processes", stuck), zap.Int64("clock", r.clock))
		return r.events, fmt.Errorf("%w: %d process(es) never became ready", ErrUnresolvedDependency, stuck)
	}

	return r.events, nil
}

// validate checks IDs, clock counts and that every dependency exists.
func validate(procs []Process) error {
	ids := make(map[int]struct{}, len(procs))
	for _, p := range procs {
		if p.ID <= 0 || p.Clocks <= 0 || p.DependsOn < 0 {
			return fmt.Errorf("%w: %+v", ErrBadProcess, p)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateProcess, p.ID)
		}
		ids[p.ID] = struct{}{}
	}
	for _, p := range procs {
		if p.DependsOn == 0 {
			continue
		}
		if _, ok := ids[p.DependsOn]; !ok {
			return fmt.Errorf("%w: %d depends on %d", ErrUnknownDependency, p.ID, p.DependsOn)
		}
	}

	return nil
}

// enqueue makes p ready. On failure every queued process is dropped.
func (r *run) enqueue(p Process) error {
	if err := r.ready.Insert(p); err != nil {
		r.ready.Destroy()
		return fmt.Errorf("scheduler: process %d: %w", p.ID, err)
	}

	return nil
}

// dispatch fills idle cores, lowest index first, with the most urgent
// ready processes.
func (r *run) dispatch() {
	for c := range r.cores {
		if r.cores[c].busy {
			continue
		}
		p, ok := r.ready.ExtractMax()
		if !ok {
			return
		}
		r.cores[c] = slot{proc: p, ends: r.clock + p.Clocks, busy: true}
		r.emit(Event{Kind: Started, Process: p, Core: c, Clock: r.clock})
	}
}

// advance moves the clock to the earliest finish. It reports false when no
// core is busy.
func (r *run) advance() bool {
	next, busy := int64(0), false
	for _, c := range r.cores {
		if c.busy && (!busy || c.ends < next) {
			next, busy = c.ends, true
		}
	}
	if busy {
		r.clock = next
	}

	return busy
}

// finish retires every process ending now, in core order, and releases
// their dependents.
func (r *run) finish() error {
	for c := range r.cores {
		sl := &r.cores[c]
		if !sl.busy || sl.ends != r.clock {
			continue
		}
		sl.busy = false
		r.done++
		r.emit(Event{Kind: Finished, Process: sl.proc, Core: c, Clock: r.clock})

		deps := r.waiting[sl.proc.ID]
		delete(r.waiting, sl.proc.ID)
		for _, d := range deps {
			if err := r.enqueue(d); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *run) emit(e Event) {
	r.events = append(r.events, e)
	if ce := r.s.log.Check(zap.DebugLevel, "process "+e.Kind.String()); ce != nil {
		ce.Write(
			zap.Int("process", e.Process.ID),
			zap.Int("core", e.Core),
			zap.Int64("clock", e.Clock),
		)
	}
	if r.s.opts.Observer != nil {
		r.s.opts.Observer(e)
	}
}

// drop is the ready-queue disposer: a process released this way never runs.
func (s *Scheduler) drop(p Process) {
	s.log.Warn("ready process dropped", zap.Int("process", p.ID), zap.Int("priority", p.Priority))
}
