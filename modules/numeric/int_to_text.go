package numeric

import (
	"reflect"
	"strconv"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// IntToText renders its int input as decimal text.
type IntToText struct{}

// Forward returns strconv.Itoa(x).
func (IntToText) Forward(x int) string { return strconv.Itoa(x) }

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&IntToText{}))
	reg.Register("forward", (*IntToText).Forward)

	registry.Register("int_to_text", nil, func(values []any) (*node.Node, error) {
		return node.New(&IntToText{}), nil
	})
}
