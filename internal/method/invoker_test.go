package method

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/easywork/internal/packet"
)

type fakeNode struct {
	factor int
}

func (n *fakeNode) Multiply(x int) int { return x * n.factor }

func (n *fakeNode) Greet(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty name")
	}
	return "hello " + name, nil
}

func (n *fakeNode) Forward() {}

func TestNewInvoker_ExactMatch(t *testing.T) {
	_, invoke := NewInvoker("Multiply", (*fakeNode).Multiply)
	n := &fakeNode{factor: 3}

	out, err := invoke(n, []packet.Packet{packet.From(7, 0)})
	require.NoError(t, err)
	v, err := packet.Cast[int](out)
	require.NoError(t, err)
	assert.Equal(t, 21, v)
}

func TestNewInvoker_ConverterFallback(t *testing.T) {
	_, invoke := NewInvoker("Multiply", (*fakeNode).Multiply)
	n := &fakeNode{factor: 2}

	out, err := invoke(n, []packet.Packet{packet.From(int64(5), 0)})
	require.NoError(t, err)
	v, err := packet.Cast[int](out)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestNewInvoker_ArityMismatch(t *testing.T) {
	_, invoke := NewInvoker("Multiply", (*fakeNode).Multiply)
	n := &fakeNode{factor: 2}

	_, err := invoke(n, nil)
	require.Error(t, err)
	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	var arityErr *ArityError
	assert.ErrorAs(t, err, &arityErr)
}

func TestNewInvoker_TrailingErrorPropagates(t *testing.T) {
	_, invoke := NewInvoker("Greet", (*fakeNode).Greet)
	n := &fakeNode{}

	_, err := invoke(n, []packet.Packet{packet.From("", 0)})
	require.Error(t, err)

	out, err := invoke(n, []packet.Packet{packet.From("vk", 0)})
	require.NoError(t, err)
	v, err := packet.Cast[string](out)
	require.NoError(t, err)
	assert.Equal(t, "hello vk", v)
}

func TestNewInvoker_VoidMethod(t *testing.T) {
	sig, invoke := NewInvoker("Forward", (*fakeNode).Forward)
	assert.Equal(t, 0, sig.Arity())

	n := &fakeNode{}
	out, err := invoke(n, nil)
	require.NoError(t, err)
	assert.False(t, out.HasValue())
}

func TestNewInvoker_CastFailure(t *testing.T) {
	_, invoke := NewInvoker("Multiply", (*fakeNode).Multiply)
	n := &fakeNode{factor: 2}

	_, err := invoke(n, []packet.Packet{packet.From("not a number", 0)})
	require.Error(t, err)
	var castErr *CastError
	assert.ErrorAs(t, err, &castErr)
}
