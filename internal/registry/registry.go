package registry

import (
	"fmt"
	"sync"

	"github.com/vk/easywork/internal/node"
)

// Constructor builds a node from already-extracted, already-cast argument
// values, in the order Args declares them.
type Constructor func(values []any) (*node.Node, error)

type classEntry struct {
	args        []Arg
	constructor Constructor
}

var (
	mu      sync.RWMutex
	classes = make(map[string]classEntry)
)

// Register adds name to the process-wide NodeRegistry. It panics if name
// is already registered, the same defensive posture the method package
// takes for duplicate method names.
func Register(name string, args []Arg, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := classes[name]; exists {
		panic(fmt.Sprintf("registry: node type %q already registered", name))
	}
	classes[name] = classEntry{args: args, constructor: ctor}
}

// Create constructs a node of the registered type name, extracting each
// declared argument positionally from positional, then by name from
// kwargs, then falling back to its default. Extraction or construction
// failure is a *node.ConstructionError.
func Create(name string, positional []any, kwargs map[string]any) (*node.Node, error) {
	mu.RLock()
	e, ok := classes[name]
	mu.RUnlock()
	if !ok {
		return nil, &node.ConstructionError{NodeName: name, Err: fmt.Errorf("no such node type")}
	}

	values := make([]any, len(e.args))
	for i, a := range e.args {
		v, ok := extract(a, i, positional, kwargs)
		if !ok {
			return nil, &node.ConstructionError{NodeName: name, Err: fmt.Errorf("missing required argument %q", a.Name)}
		}
		values[i] = v
	}

	n, err := e.constructor(values)
	if err != nil {
		return nil, &node.ConstructionError{NodeName: name, Err: err}
	}
	return n, nil
}

// Registered reports whether name has a constructor, for callers that want
// to validate a graph description before building it.
func Registered(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := classes[name]
	return ok
}
