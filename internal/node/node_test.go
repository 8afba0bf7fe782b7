package node

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/packet"
)

// counter is a minimal node class used across this package's tests.
type counter struct {
	n int
}

func (c *counter) Forward() int {
	c.n++
	return c.n
}

func (c *counter) Add(x int) int { return x + 1 }

func (c *counter) Open() error  { c.n = 100; return nil }
func (c *counter) Close() error { c.n = -1; return nil }

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&counter{}))
	registerOnce(reg, "forward", (*counter).Forward)
	registerOnce(reg, "Add", (*counter).Add)
	registerOnce(reg, "Open", (*counter).Open)
	registerOnce(reg, "Close", (*counter).Close)
}

func registerOnce(reg *method.Registry, name string, fn any) {
	if _, _, ok := reg.Lookup(method.HashName(name)); ok {
		return
	}
	reg.Register(name, fn)
}

func TestNode_OpenCloseIdempotent(t *testing.T) {
	n := New(&counter{})
	require.NoError(t, n.Open())
	assert.True(t, n.IsOpen())
	require.NoError(t, n.Open()) // second call is a no-op

	require.NoError(t, n.Close())
	assert.False(t, n.IsOpen())
	require.NoError(t, n.Close()) // second call is a no-op
}

func TestNode_SetInputAutoOrdersForwardLast(t *testing.T) {
	upstream := New(&counter{})
	n := New(&counter{})
	n.SetInputFor("Add", upstream)
	n.SetInput(upstream) // forward

	order := n.EffectiveMethodOrder()
	require.Len(t, order, 2)
	assert.Equal(t, method.Forward, order[len(order)-1])
}

func TestNode_ClearUpstreamsPreservesUserOrder(t *testing.T) {
	upstream := New(&counter{})
	n := New(&counter{})
	n.SetMethodOrder([]string{"Add", "forward"})
	n.SetInputFor("Add", upstream)

	n.ClearUpstreams()
	assert.Empty(t, n.Upstreams())
	assert.Equal(t, []method.ID{method.HashName("Add"), method.Forward}, n.EffectiveMethodOrder())
}

func TestNode_InvokeBypassesDispatcher(t *testing.T) {
	n := New(&counter{n: 41})
	out, err := n.Invoke(method.HashName("Add"), []packet.Packet{packet.From(1, 0)})
	require.NoError(t, err)
	v, err := packet.Cast[int](out)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestNode_DispatchSourceStampsTimestamp(t *testing.T) {
	n := New(&counter{})
	n.Dispatch()
	out := n.Output()
	require.True(t, out.HasValue())
	assert.NotZero(t, out.Timestamp())
}
