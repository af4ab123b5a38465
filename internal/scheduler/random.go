package scheduler

import (
	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/param"
)

// Random is the uniform-pick scheduler: each tick it picks one member,
// uniformly, among those whose cooldown has elapsed, and blocks (does
// nothing) if none are currently eligible.
type Random struct {
	ID            string
	members       []string
	cooldownUntil map[string]int64
}

// NewRandom constructs a random scheduler with every member immediately
// eligible.
func NewRandom(id string, members []string) *Random {
	return &Random{
		ID:            id,
		members:       append([]string(nil), members...),
		cooldownUntil: make(map[string]int64, len(members)),
	}
}

// Tick picks and executes one eligible member, or does nothing if none are
// eligible yet.
func (r *Random) Tick(now int64, table *instr.Table, src param.Source, exec func(id string) error) error {
	eligible := make([]string, 0, len(r.members))
	for _, m := range r.members {
		if now >= r.cooldownUntil[m] {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	chosen := eligible[src.IntN(len(eligible))]
	member := table.MustGet(chosen)
	cooldown := member.Params.Sample(param.Cooldown, src)
	r.cooldownUntil[chosen] = now + int64(cooldown)

	return exec(chosen)
}
