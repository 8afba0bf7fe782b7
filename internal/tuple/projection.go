package tuple

import (
	"reflect"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
)

// projector is a 1-input node whose forward extracts one field from an
// incoming tuple.Value. One class serves every field of every registered
// tuple type; Index distinguishes instances.
type projector struct {
	Index int
}

// Forward returns v.Field(Index), the Go analogue of std::get<Index>(v).
func (p *projector) Forward(v Value) any {
	return v.Field(p.Index)
}

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&projector{}))
	reg.Register("forward", (*projector).Forward)
}

// CreateProjectionNode builds a node that projects field index out of
// every tuple it receives on its single input port. Wire it with
// node.SetInput from the tuple-producing upstream.
func CreateProjectionNode(index int) *node.Node {
	return node.New(&projector{Index: index})
}
