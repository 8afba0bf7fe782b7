package numeric

import (
	"reflect"
	"sync"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// NumberSource emits start, start+step, start+2*step, ... up to and
// including max, then requests the graph stop on the following cycle.
type NumberSource struct {
	mu    sync.Mutex
	Name  string
	Start int
	Max   int
	Step  int

	cur     int
	started bool
}

// Forward produces the next value in the sequence. Once the sequence is
// exhausted it returns a *node.StopRequested instead of a value — the
// dispatcher treats that as "no output this cycle" and asks the owning
// graph to stop.
func (s *NumberSource) Forward() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.cur = s.Start
		s.started = true
	} else {
		s.cur += s.Step
	}

	if (s.Step >= 0 && s.cur > s.Max) || (s.Step < 0 && s.cur < s.Max) {
		return 0, &node.StopRequested{NodeName: s.Name}
	}
	return s.cur, nil
}

func init() {
	reg := method.ClassRegistry(reflect.TypeOf(&NumberSource{}))
	reg.Register("forward", (*NumberSource).Forward)

	registry.Register("number_source", []registry.Arg{
		{Name: "name", Default: "number_source"},
		{Name: "start", Default: 0},
		{Name: "max", Default: 0},
		{Name: "step", Default: 1},
	}, func(values []any) (*node.Node, error) {
		return node.New(&NumberSource{
			Name:  values[0].(string),
			Start: values[1].(int),
			Max:   values[2].(int),
			Step:  values[3].(int),
		}), nil
	})
}
