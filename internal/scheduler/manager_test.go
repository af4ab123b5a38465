package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanscript-lang/beanscript/internal/events"
	"github.com/beanscript-lang/beanscript/internal/instr"
)

type fakeClock struct {
	mu  sync.Mutex
	now int64
}

func (c *fakeClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func TestManagerTicksRoutineMembers(t *testing.T) {
	tbl := instr.NewTable()
	routine := instr.New("r1", instr.Routine, 1)
	routine.Children = []string{"a", "b"}
	require.NoError(t, tbl.Insert(routine))
	require.NoError(t, tbl.Insert(instr.New("a", instr.Press, 2)))
	require.NoError(t, tbl.Insert(instr.New("b", instr.Press, 3)))

	var count atomic.Int64
	m := New(Config{
		Table:    tbl,
		Clock:    &fakeClock{},
		Source:   zeroSource{},
		Exec:     func(ctx context.Context, id string) error { count.Add(1); return nil },
		Events:   events.NewHub(16),
		Interval: 5 * time.Millisecond,
	}, []*instr.Instruction{routine})

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), count.Load(), "an unstarted routine must not tick")

	m.Activate("r1")
	time.Sleep(40 * time.Millisecond)
	cancel()
	m.Stop()

	assert.Greater(t, count.Load(), int64(0))
}

func TestManagerDeactivateStopsFutureTicks(t *testing.T) {
	tbl := instr.NewTable()
	routine := instr.New("r1", instr.Routine, 1)
	routine.Children = []string{"a"}
	require.NoError(t, tbl.Insert(routine))
	require.NoError(t, tbl.Insert(instr.New("a", instr.Press, 2)))

	var count atomic.Int64
	m := New(Config{
		Table:    tbl,
		Clock:    &fakeClock{},
		Source:   zeroSource{},
		Exec:     func(ctx context.Context, id string) error { count.Add(1); return nil },
		Events:   events.NewHub(16),
		Interval: 5 * time.Millisecond,
	}, []*instr.Instruction{routine})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	defer m.Stop()

	m.Activate("r1")
	time.Sleep(20 * time.Millisecond)
	m.Deactivate("r1")
	seenAtStop := count.Load()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, seenAtStop, count.Load())
}
