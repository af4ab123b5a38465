package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/param"
)

type zeroSource struct{}

func (zeroSource) IntN(n int) int { return 0 }

func tableWithCooldown(t *testing.T, id string, lo, hi int) *instr.Table {
	tbl := instr.NewTable()
	i := instr.New(id, instr.Press, 1)
	i.Params = i.Params.Set(param.Cooldown, param.Range{Lo: lo, Hi: hi})
	require.NoError(t, tbl.Insert(i))
	return tbl
}

func TestWaitlistFiresAllMembersImmediately(t *testing.T) {
	tbl := instr.NewTable()
	require.NoError(t, tbl.Insert(instr.New("a", instr.Press, 1)))
	require.NoError(t, tbl.Insert(instr.New("b", instr.Press, 2)))

	w := NewWaitlist("w1", []string{"a", "b"})

	var fired []string
	err := w.Tick(0, tbl, zeroSource{}, func(id string) error {
		fired = append(fired, id)
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, fired)
}

func TestWaitlistRequeuesAfterCooldown(t *testing.T) {
	tbl := tableWithCooldown(t, "a", 100, 100)
	w := NewWaitlist("w1", []string{"a"})

	var fired int
	exec := func(id string) error { fired++; return nil }

	require.NoError(t, w.Tick(0, tbl, zeroSource{}, exec))
	assert.Equal(t, 1, fired)

	// Not yet eligible.
	require.NoError(t, w.Tick(50, tbl, zeroSource{}, exec))
	assert.Equal(t, 1, fired)

	// Eligible again.
	require.NoError(t, w.Tick(100, tbl, zeroSource{}, exec))
	assert.Equal(t, 2, fired)
}

func TestWaitlistZeroCooldownFiresEachMemberExactlyOnce(t *testing.T) {
	tbl := instr.NewTable()
	require.NoError(t, tbl.Insert(instr.New("a", instr.Press, 1)))
	require.NoError(t, tbl.Insert(instr.New("b", instr.Press, 2)))
	require.NoError(t, tbl.Insert(instr.New("c", instr.Press, 3)))

	w := NewWaitlist("w1", []string{"a", "b", "c"})

	var fired []string
	done := make(chan struct{})
	go func() {
		_ = w.Tick(0, tbl, zeroSource{}, func(id string) error {
			fired = append(fired, id)
			return nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Tick did not return: a zero cooldown must not loop forever")
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, fired)
}

func TestWaitlistFiresOncePerTickWhenBehind(t *testing.T) {
	tbl := tableWithCooldown(t, "a", 10, 10)
	w := NewWaitlist("w1", []string{"a"})

	var fired int
	exec := func(id string) error { fired++; return nil }

	require.NoError(t, w.Tick(35, tbl, zeroSource{}, exec))
	assert.Equal(t, 1, fired) // seeded at 0, requeued at 35+10 = 45 > 35
}
