package node

import (
	"reflect"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/typesystem"
)

// TypeInfo returns the runtime type descriptor of the wrapped node
// instance.
func (n *Node) TypeInfo() typesystem.Descriptor {
	return typesystem.FromReflectType(reflect.TypeOf(n.self))
}

// ExposedMethods returns the method ids registered for this node's class.
func (n *Node) ExposedMethods() []method.ID {
	return n.registry.IDs()
}

// Upstreams returns a copy of this node's upstream edges, in port order.
func (n *Node) Upstreams() []UpstreamEdge {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]UpstreamEdge(nil), n.upstreams...)
}

// PortQueueLen returns, for every port wired to methodName, the number of
// packets currently buffered on that port. Callers use this to observe
// the max_queue bound from outside the package (tests, metrics) without
// reaching into unexported state.
func (n *Node) PortQueueLen(methodName string) []int {
	id := resolveMethodID(methodName)
	n.mu.Lock()
	defer n.mu.Unlock()
	var lens []int
	for i, e := range n.upstreams {
		if e.MethodID == id {
			lens = append(lens, len(n.buffers[i]))
		}
	}
	return lens
}
