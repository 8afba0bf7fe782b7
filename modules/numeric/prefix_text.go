package numeric

import (
	"reflect"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// PrefixText prepends a fixed prefix to its single upstream string input.
type PrefixText struct {
	Prefix string
}

// Forward returns Prefix + s.
func (p *PrefixText) Forward(s string) string { return p.Prefix + s }

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&PrefixText{}))
	reg.Register("forward", (*PrefixText).Forward)

	registry.Register("prefix_text", []registry.Arg{
		{Name: "prefix", Default: ""},
	}, func(values []any) (*node.Node, error) {
		return node.New(&PrefixText{Prefix: values[0].(string)}), nil
	})
}
