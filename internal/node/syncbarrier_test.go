package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/easywork/internal/packet"
)

func pairProject(fronts []packet.Packet) packet.Packet {
	a, _ := packet.Cast[int](fronts[0])
	b, _ := packet.Cast[int](fronts[1])
	return packet.FromAny([2]int{a, b}, 0)
}

func TestSyncBarrier_AlignsWithinTolerance(t *testing.T) {
	// A at ts 1,2,3 and B at ts 2,3,4: the ts=1 front from A is dropped as
	// unaligned, then ts=2 and ts=3 both align and publish within the same
	// cycle. The single output slot holds only the last of those — the
	// barrier keeps draining until a port runs dry, same as Node.Dispatch
	// keeps only the last method's result for the cycle.
	b := NewSyncBarrier(0, pairProject)
	b.buffers = [][]packet.Packet{
		{packet.From(1, 1), packet.From(2, 2), packet.From(3, 3)},
		{packet.From(10, 2), packet.From(20, 3), packet.From(30, 4)},
	}

	b.Dispatch()
	out := b.Output()
	require.True(t, out.HasValue())
	v, err := packet.Cast[[2]int](out)
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 20}, v)
	assert.Equal(t, int64(3), out.Timestamp())
}

func TestSyncBarrier_EmptyWhenAnyPortDrained(t *testing.T) {
	b := NewSyncBarrier(0, pairProject)
	b.buffers = [][]packet.Packet{
		{packet.From(1, 5)},
		nil,
	}
	b.Dispatch()
	assert.False(t, b.Output().HasValue())
}
