package graph

import (
	"context"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/easywork/internal/ctxlog"
	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
)

// counting is a test node class: zero-arg forward increments a shared
// counter; Echo relays its input; Open/Close toggle a shared flag.
type counting struct {
	n      *int
	opened *bool
}

func (c *counting) Forward() int {
	*c.n++
	return *c.n
}

func (c *counting) Echo(x int) int { return x }

func (c *counting) Open() error {
	if c.opened != nil {
		*c.opened = true
	}
	return nil
}

func (c *counting) Close() error {
	if c.opened != nil {
		*c.opened = false
	}
	return nil
}

// relay has only an Echo method — no forward — so wiring it downstream of
// a counting source isolates the echoed value from any zero-arity method
// of its own.
type relay struct{}

func (r *relay) Echo(x int) int { return x }

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&counting{}))
	if _, _, ok := reg.Lookup(method.Forward); !ok {
		reg.Register("forward", (*counting).Forward)
		reg.Register("Echo", (*counting).Echo)
		reg.Register("Open", (*counting).Open)
		reg.Register("Close", (*counting).Close)
	}

	rreg := method.ClassRegistry(reflect.TypeOf(&relay{}))
	if _, _, ok := rreg.Lookup(method.HashName("Echo")); !ok {
		rreg.Register("Echo", (*relay).Echo)
	}
}

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestGraph_AddTaskAndPrecedenceDepCount(t *testing.T) {
	g := New()
	up := node.New(&counting{n: new(int)})
	down := node.New(&counting{n: new(int)})

	up.Build(g)
	down.Build(g)
	down.SetInput(up)
	down.Connect()

	assert.Equal(t, 0, g.depCount[up])
	assert.Equal(t, 1, g.depCount[down])
}

func TestExecutor_OpenCloseFansOutToTasks(t *testing.T) {
	g := New()
	opened := false
	n := node.New(&counting{n: new(int), opened: &opened})
	n.Build(g)
	n.Connect()

	ex := NewExecutor(g)
	ctx := testCtx()

	require.NoError(t, ex.Open(ctx))
	assert.True(t, opened)
	assert.Equal(t, StateOpen, g.CurrentState())

	require.NoError(t, ex.Close(ctx))
	assert.False(t, opened)
	assert.Equal(t, StateClosed, g.CurrentState())
}

func TestExecutor_RunCycleDrivesChain(t *testing.T) {
	g := New()
	var srcCount int
	src := node.New(&counting{n: &srcCount})
	sink := node.New(&relay{})

	src.Build(g)
	sink.Build(g)
	sink.SetInputFor("Echo", src)
	src.Connect()
	sink.Connect()

	ex := NewExecutor(g)
	ctx := testCtx()

	for i := 0; i < 3; i++ {
		require.NoError(t, ex.runCycle(ctx, 2))
	}
	assert.Equal(t, 3, srcCount)

	out := sink.Output()
	require.True(t, out.HasValue())
}

func TestExecutor_RunStopsWhenGraphStopped(t *testing.T) {
	g := New()
	src := node.New(&counting{n: new(int)})
	src.Build(g)
	src.Connect()

	ex := NewExecutor(g)
	ctx, cancel := context.WithTimeout(testCtx(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- ex.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	g.Stop()

	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, g.CurrentState())
}
