package numeric

import (
	"reflect"
	"sync"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// MethodDispatchRecorder exposes three independently-wired methods —
// left, right, forward — and counts how many times each fired, plus how
// many times a cycle invoked them out of the expected left-before-right-
// before-forward order. It exists to make spec.md scenario 2 (method
// dispatch order) assertable.
type MethodDispatchRecorder struct {
	mu sync.Mutex

	LeftCount, RightCount, ForwardCount int
	OrderErrors                         int

	lastPhase int
}

// NewMethodDispatchRecorder returns a recorder ready for its first cycle.
func NewMethodDispatchRecorder() *MethodDispatchRecorder {
	return &MethodDispatchRecorder{lastPhase: -1}
}

func (r *MethodDispatchRecorder) observeLocked(phase int) {
	if phase <= r.lastPhase {
		r.OrderErrors++
	}
	r.lastPhase = phase
}

// Left is phase 0 of the expected per-cycle order.
func (r *MethodDispatchRecorder) Left(x int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observeLocked(0)
	r.LeftCount++
	return x
}

// Right is phase 1 of the expected per-cycle order.
func (r *MethodDispatchRecorder) Right(x int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observeLocked(1)
	r.RightCount++
	return x
}

// Forward is phase 2, the last method in the expected order; it resets
// the phase tracker so the next cycle starts fresh.
func (r *MethodDispatchRecorder) Forward(x int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observeLocked(2)
	r.ForwardCount++
	r.lastPhase = -1
	return x
}

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&MethodDispatchRecorder{}))
	reg.Register("left", (*MethodDispatchRecorder).Left)
	reg.Register("right", (*MethodDispatchRecorder).Right)
	reg.Register("forward", (*MethodDispatchRecorder).Forward)

	registry.Register("method_dispatch_recorder", nil, func(values []any) (*node.Node, error) {
		return node.New(NewMethodDispatchRecorder()), nil
	})
}
