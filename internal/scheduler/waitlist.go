package scheduler

import (
	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/param"
	"github.com/beanscript-lang/beanscript/internal/timeheap"
)

// Waitlist is the cooldown-driven scheduler: every member sits in a
// timestamp min-heap keyed by when it next becomes eligible, and a tick
// fires every member whose eligibility has already arrived, not just the
// earliest one. A member that fires is immediately requeued at
// now + cooldown.sample() (at least now + 1), so each member fires at most
// once per tick, however far behind the scheduler fell.
type Waitlist struct {
	ID   string
	heap *timeheap.Heap
}

// NewWaitlist seeds every member at timestamp 0, so all members are
// immediately eligible the first time the scheduler ticks.
func NewWaitlist(id string, members []string) *Waitlist {
	h := timeheap.New(len(members))
	for _, m := range members {
		h.Push(0, m)
	}
	return &Waitlist{ID: id, heap: h}
}

// Tick fires every eligible member, calling exec for each and requeuing it
// at now + its instruction's sampled cooldown. table resolves member ids
// to instructions; src supplies the cooldown sample's randomness.
func (w *Waitlist) Tick(now int64, table *instr.Table, src param.Source, exec func(id string) error) error {
	for w.heap.CanPop(now) {
		id, ok := w.heap.PeekValue()
		if !ok {
			break
		}
		member := table.MustGet(id)
		cooldown := int64(member.Params.Sample(param.Cooldown, src))
		next := now + cooldown
		if next <= now {
			// A zero cooldown would otherwise re-key the root to now itself,
			// leaving it eligible and re-selected forever within this same
			// Tick call. Advancing past now guarantees this member won't
			// surface again until the next tick.
			next = now + 1
		}
		w.heap.Pop(next)

		if err := exec(id); err != nil {
			return err
		}
	}
	return nil
}
