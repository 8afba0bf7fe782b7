package tuple

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/packet"
)

type pair struct {
	First  int
	Second string
}

func (p pair) TupleSize() int { return 2 }
func (p pair) Field(i int) any {
	switch i {
	case 0:
		return p.First
	case 1:
		return p.Second
	default:
		return nil
	}
}

func TestRegisterTupleType_IdempotentAndQueryable(t *testing.T) {
	RegisterTupleType[pair]()
	RegisterTupleType[pair]() // second call is a no-op

	size, ok := Size(reflect.TypeOf(pair{}))
	require.True(t, ok)
	assert.Equal(t, 2, size)
}

func TestSize_UnregisteredMiss(t *testing.T) {
	type unregistered struct{}
	_, ok := Size(reflect.TypeOf(unregistered{}))
	assert.False(t, ok)
}

func TestProjector_ForwardExtractsField(t *testing.T) {
	n := CreateProjectionNode(1)
	p := pair{First: 7, Second: "seven"}

	out, err := n.Invoke(method.Forward, []packet.Packet{packet.From[Value](p, 5)})
	require.NoError(t, err)
	v, err := packet.Cast[string](out)
	require.NoError(t, err)
	assert.Equal(t, "seven", v)
}
