// Package runtime executes BeanScript's instruction graph: it is the only
// package that turns an instruction into driver calls. The archived
// reference implementation never actually filled this in (its
// instruction_execute stub always returns false), so these semantics are
// authored directly from the instruction kind taxonomy: press is a tap,
// hold keeps the key down without releasing it, release lifts a
// previously held key, start/stop drive a referenced script or window,
// and group is a plain sequential sub-program.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beanscript-lang/beanscript/internal/driver"
	"github.com/beanscript-lang/beanscript/internal/events"
	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/keycatalog"
	"github.com/beanscript-lang/beanscript/internal/param"
)

// SchedulerControl activates and deactivates a top-level scheduler by id,
// in response to start/stop directives. The scheduler package's Manager
// implements this; runtime only depends on the interface so it never needs
// to import scheduler internals.
type SchedulerControl interface {
	Activate(id string)
	Deactivate(id string)
}

// Runtime executes instructions against a driver.Sink, resolving key
// references through a keycatalog.Catalog and sampling timing parameters
// through a param.Source.
type Runtime struct {
	Table      *instr.Table
	Catalog    *keycatalog.Catalog
	Driver     driver.Sink
	Source     param.Source
	Sleep      Sleeper
	Events     *events.Hub
	Logger     *slog.Logger
	RunID      string
	Schedulers SchedulerControl
}

// Execute runs the instruction named id to completion, including its
// repeat count: a sampled repeat of 2 fires the instruction twice, 0 (the
// default) fires it once, and -1 loops forever -- meaningful for a group,
// whose repeat governs how many times it runs through its children.
func (r *Runtime) Execute(ctx context.Context, id string) error {
	inst, ok := r.Table.Get(id)
	if !ok {
		return fmt.Errorf("execute %q: no such instruction", id)
	}

	reps := inst.Params.Sample(param.Repeat, r.Source)
	infinite := reps < 0
	if !infinite && reps < 1 {
		reps = 1
	}
	for n := 0; infinite || n < reps; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.executeOnce(ctx, inst); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runtime) executeOnce(ctx context.Context, inst *instr.Instruction) error {
	if err := r.sleepFor(ctx, inst, param.Before); err != nil {
		return err
	}

	switch inst.Kind {
	case instr.Press:
		if err := r.tap(ctx, inst); err != nil {
			return err
		}
	case instr.Hold:
		if err := r.holdDown(ctx, inst); err != nil {
			return err
		}
	case instr.Release:
		if err := r.liftUp(ctx, inst); err != nil {
			return err
		}
	case instr.Start:
		if err := r.start(ctx, inst); err != nil {
			return err
		}
	case instr.Stop:
		if err := r.stop(ctx, inst); err != nil {
			return err
		}
	case instr.Group, instr.Script:
		if err := r.runChildren(ctx, inst); err != nil {
			return err
		}
	case instr.Key, instr.Window, instr.Waitlist, instr.Routine, instr.Random:
		// Pure definitions: nothing fires when reached directly. They are
		// only meaningful as something else's Ref or Children entry.
	default:
		return fmt.Errorf("execute %q: unhandled instruction kind %s", inst.ID, inst.Kind)
	}

	if err := r.sleepFor(ctx, inst, param.After); err != nil {
		return err
	}

	r.publish(inst)
	return nil
}

func (r *Runtime) tap(ctx context.Context, inst *instr.Instruction) error {
	code, ok := r.resolveKey(inst)
	if !ok {
		return fmt.Errorf("press %q: unresolved key %q", inst.ID, inst.KeyRef)
	}
	if err := r.Driver.Down(ctx, code); err != nil {
		return nil // driver errors are non-fatal; the driver already published the event
	}
	if err := r.sleepFor(ctx, inst, param.Duration); err != nil {
		return err
	}
	_ = r.Driver.Up(ctx, code)
	return nil
}

func (r *Runtime) holdDown(ctx context.Context, inst *instr.Instruction) error {
	code, ok := r.resolveKey(inst)
	if !ok {
		return fmt.Errorf("hold %q: unresolved key %q", inst.ID, inst.KeyRef)
	}
	_ = r.Driver.Down(ctx, code)
	return nil
}

func (r *Runtime) liftUp(ctx context.Context, inst *instr.Instruction) error {
	code, ok := r.resolveKey(inst)
	if !ok {
		return fmt.Errorf("release %q: unresolved key %q", inst.ID, inst.KeyRef)
	}
	_ = r.Driver.Up(ctx, code)
	return nil
}

// start dispatches a Start instruction to whatever it references: a window
// gets focused, a routine/waitlist/random is activated on the scheduler
// manager so its tick loop starts dispatching it, anything else (a script
// or a plain group) runs its children in order, as many times as the
// target's own repeat parameter says.
func (r *Runtime) start(ctx context.Context, inst *instr.Instruction) error {
	target, ok := r.Table.Get(inst.Ref)
	if !ok {
		return fmt.Errorf("start %q: unresolved reference %q", inst.ID, inst.Ref)
	}
	switch {
	case target.Kind == instr.Window:
		_ = r.Driver.Focus(ctx, target.KeyRef)
		return nil
	case target.Kind.IsScheduler():
		if r.Schedulers != nil {
			r.Schedulers.Activate(target.ID)
		}
		return nil
	default:
		// A script or group: route through Execute, not a bare runChildren,
		// so a group's own repeat (including -1, infinite) governs how many
		// times it runs through its children.
		return r.Execute(ctx, target.ID)
	}
}

// stop deactivates a running scheduler. Stopping anything else is a no-op:
// scripts and groups have no persistent running state to cancel.
func (r *Runtime) stop(ctx context.Context, inst *instr.Instruction) error {
	target, ok := r.Table.Get(inst.Ref)
	if !ok {
		return fmt.Errorf("stop %q: unresolved reference %q", inst.ID, inst.Ref)
	}
	if r.Schedulers != nil && target.Kind.IsScheduler() {
		r.Schedulers.Deactivate(target.ID)
	}
	r.logger().Info("stop", "instruction", inst.ID, "target", inst.Ref)
	return nil
}

func (r *Runtime) runChildren(ctx context.Context, inst *instr.Instruction) error {
	for _, childID := range inst.Children {
		if err := r.Execute(ctx, childID); err != nil {
			return err
		}
	}
	return nil
}

// resolveKey resolves the scan code a Press/Hold/Release instruction acts
// on. In-place definitions carry the key name directly in KeyRef; named
// references go through the table to the Key definition they point at.
func (r *Runtime) resolveKey(inst *instr.Instruction) (uint16, bool) {
	name := inst.KeyRef
	if name == "" && inst.Ref != "" {
		if keyDef, ok := r.Table.Get(inst.Ref); ok {
			name = keyDef.KeyRef
		}
	}
	return r.Catalog.Lookup(name)
}

func (r *Runtime) sleepFor(ctx context.Context, inst *instr.Instruction, kind param.Kind) error {
	ms := inst.Params.Sample(kind, r.Source)
	if ms <= 0 {
		return nil
	}
	return r.Sleep.Sleep(ctx, time.Duration(ms)*time.Millisecond)
}

func (r *Runtime) publish(inst *instr.Instruction) {
	if r.Events == nil {
		return
	}
	r.Events.Publish("instruction.executed", map[string]any{
		"run_id":      r.RunID,
		"instruction": inst.ID,
		"kind":        inst.Kind.String(),
	})
}

func (r *Runtime) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
