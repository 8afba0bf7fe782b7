package numeric

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
	"github.com/vk/easywork/internal/tuple"
)

// Pair is the (int, string) tuple PairEmitter produces, registered with
// internal/tuple so a projection node can pull out either field.
type Pair struct {
	Index int
	Label string
}

// TupleSize reports Pair's field count: 2.
func (Pair) TupleSize() int { return 2 }

// Field returns Index for i==0, Label for i==1.
func (p Pair) Field(i int) any {
	switch i {
	case 0:
		return p.Index
	case 1:
		return p.Label
	default:
		panic(fmt.Sprintf("numeric: Pair has no field %d", i))
	}
}

// PairEmitter emits an incrementing (int, string) Pair every cycle:
// (0, "value_0"), (1, "value_1"), ...
type PairEmitter struct {
	mu   sync.Mutex
	next int
}

// Forward returns the next Pair in the sequence.
func (p *PairEmitter) Forward() Pair {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := Pair{Index: p.next, Label: fmt.Sprintf("value_%d", p.next)}
	p.next++
	return out
}

func init() {
	tuple.RegisterTupleType[Pair]()

	reg := method.ClassRegistry(reflect.TypeOf(&PairEmitter{}))
	reg.Register("forward", (*PairEmitter).Forward)

	registry.Register("pair_emitter", nil, func(values []any) (*node.Node, error) {
		return node.New(&PairEmitter{}), nil
	})
}
