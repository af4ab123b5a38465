// Package scheduler implements BeanScript's three dispatch disciplines --
// routine (round-robin), waitlist (cooldown-driven), random (uniform pick)
// -- and the tick loop that drives them once a script is running.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/beanscript-lang/beanscript/internal/events"
	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/param"
)

// Clock supplies the current time to the scheduler in milliseconds since
// an arbitrary epoch. Time is an external collaborator BeanScript does not
// own: production code wires a real clock, tests wire a deterministic
// stub.
type Clock interface {
	NowMillis() int64
}

// Executor runs one instruction to completion. The runtime package
// implements this; the scheduler only knows it returns an error for a
// genuinely fatal failure (the schedulers treat driver failures, which are
// already folded into non-fatal events upstream, as ordinary successes).
type Executor func(ctx context.Context, id string) error

// entry wraps one top-level scheduler instance with its registration-order
// position and activation state. Exactly one of routine/waitlist/random is
// set, matching the instruction's kind.
type entry struct {
	id     string
	active bool

	routine  *Routine
	waitlist *Waitlist
	random   *Random
}

// Manager owns every top-level scheduler instance a script declares and
// ticks the active ones, in registration order, on a fixed interval. A
// scheduler starts inactive; start/stop directives (via Activate/
// Deactivate) are what let it run.
type Manager struct {
	table    *instr.Table
	clock    Clock
	src      param.Source
	exec     Executor
	events   *events.Hub
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	entries []*entry
	byID    map[string]*entry

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Config collects Manager's construction-time dependencies.
type Config struct {
	Table    *instr.Table
	Clock    Clock
	Source   param.Source
	Exec     Executor
	Events   *events.Hub
	Logger   *slog.Logger
	Interval time.Duration
}

// New constructs a Manager and builds one scheduler instance per top-level
// scheduler instruction the dsl resolver found.
func New(cfg Config, schedulerInstructions []*instr.Instruction) *Manager {
	if cfg.Events == nil {
		cfg.Events = events.NewHub(256)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Millisecond
	}

	m := &Manager{
		table:    cfg.Table,
		clock:    cfg.Clock,
		src:      cfg.Source,
		exec:     cfg.Exec,
		events:   cfg.Events,
		logger:   cfg.Logger.With("component", "scheduler"),
		interval: cfg.Interval,
		byID:     make(map[string]*entry, len(schedulerInstructions)),
		stopCh:   make(chan struct{}),
	}

	for _, inst := range schedulerInstructions {
		e := &entry{id: inst.ID}
		switch inst.Kind {
		case instr.Routine:
			e.routine = NewRoutine(inst.ID, inst.Children)
		case instr.Waitlist:
			e.waitlist = NewWaitlist(inst.ID, inst.Children)
		case instr.Random:
			e.random = NewRandom(inst.ID, inst.Children)
		default:
			continue
		}
		m.entries = append(m.entries, e)
		m.byID[inst.ID] = e
	}

	return m
}

// Activate marks the named scheduler running; its tick starts firing from
// the next tick onward. Unknown ids are ignored -- the doctor's reference
// check has already rejected a start whose Ref is not in the table.
func (m *Manager) Activate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.byID[id]; ok {
		e.active = true
	}
}

// Deactivate marks the named scheduler stopped. Per the stop semantics, an
// in-flight child finishes its current firing; the scheduler simply isn't
// ticked again after this call takes effect.
func (m *Manager) Deactivate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.byID[id]; ok {
		e.active = false
	}
}

// Start begins the tick loop in a background goroutine.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.loop(ctx)
}

// Stop blocks until the tick loop has exited.
func (m *Manager) Stop() {
	close(m.stopCh)
	m.wg.Wait()
}

func (m *Manager) loop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.tick(ctx)
		case <-m.stopCh:
			return
		case <-ctx.Done():
			m.logger.Info("scheduler stopping, context cancelled")
			return
		}
	}
}

// tick runs one dispatch pass over every active scheduler, in registration
// order, per the runtime loop's ordering guarantee.
func (m *Manager) tick(ctx context.Context) {
	now := m.clock.NowMillis()

	m.mu.Lock()
	active := make([]*entry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.active {
			active = append(active, e)
		}
	}
	m.mu.Unlock()

	for _, e := range active {
		switch {
		case e.routine != nil:
			id, ok := e.routine.Current()
			if !ok {
				continue
			}
			if err := m.runExec(ctx, id); err != nil {
				m.logger.Error("routine member execution failed", "routine", e.id, "member", id, "error", err)
				continue
			}
			e.routine.Advance()

		case e.waitlist != nil:
			if err := e.waitlist.Tick(now, m.table, m.src, func(id string) error { return m.runExec(ctx, id) }); err != nil {
				m.logger.Error("waitlist tick failed", "waitlist", e.id, "error", err)
			}

		case e.random != nil:
			if err := e.random.Tick(now, m.table, m.src, func(id string) error { return m.runExec(ctx, id) }); err != nil {
				m.logger.Error("random tick failed", "random", e.id, "error", err)
			}
		}
	}
}

func (m *Manager) runExec(ctx context.Context, id string) error {
	if err := m.exec(ctx, id); err != nil {
		return fmt.Errorf("execute %q: %w", id, err)
	}
	m.events.Publish("scheduler.fired", map[string]any{"instruction": id})
	return nil
}
