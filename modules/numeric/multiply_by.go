package numeric

import (
	"reflect"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// MultiplyBy multiplies its single upstream int input by a fixed factor.
type MultiplyBy struct {
	Factor int
}

// Forward returns x * Factor.
func (m *MultiplyBy) Forward(x int) int { return x * m.Factor }

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&MultiplyBy{}))
	reg.Register("forward", (*MultiplyBy).Forward)

	registry.Register("multiply_by", []registry.Arg{
		{Name: "factor", Default: 1},
	}, func(values []any) (*node.Node, error) {
		return node.New(&MultiplyBy{Factor: values[0].(int)}), nil
	})
}
