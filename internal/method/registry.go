package method

import (
	"fmt"
	"reflect"
	"sync"
)

// entry pairs a method's signature with its invoker.
type entry struct {
	Signature Signature
	Invoker   Invoker
}

// Registry is the per-node-class reflected method table: methodId ->
// {signature, invoker}. It is initialized once before the first node of
// a class is constructed and is immutable thereafter, matching spec §3.
type Registry struct {
	mu      sync.RWMutex
	methods map[ID]entry
}

// process-wide table of per-class registries, one per node type, guarded
// the way the teacher guards its handler maps (internal/registry).
var (
	classesMu sync.RWMutex
	classes   = make(map[reflect.Type]*Registry)
)

// ClassRegistry returns the Registry for nodeType, creating it on first
// use. Every node class gets exactly one Registry, shared by every
// instance of that class, for the lifetime of the process.
func ClassRegistry(nodeType reflect.Type) *Registry {
	classesMu.RLock()
	r, ok := classes[nodeType]
	classesMu.RUnlock()
	if ok {
		return r
	}

	classesMu.Lock()
	defer classesMu.Unlock()
	if r, ok := classes[nodeType]; ok {
		return r
	}
	r = &Registry{methods: make(map[ID]entry)}
	classes[nodeType] = r
	return r
}

// Register adds methodName -> fn to the registry, where fn is a Go
// method expression (receiver, args...) -> (result?, error?). It panics
// if methodName is already registered on this class, the same defensive
// posture the teacher takes for duplicate handler names.
func (r *Registry) Register(methodName string, fn any) {
	id := HashName(methodName)
	sig, invoker := NewInvoker(methodName, fn)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.methods[id]; exists {
		panic(fmt.Sprintf("method: %q already registered for this node class", methodName))
	}
	r.methods[id] = entry{Signature: sig, Invoker: invoker}
}

// Lookup returns the signature and invoker registered for id. ok is false
// if no method with that id was registered — notably, a node class that
// never registers "Open" or "Close" is not an error: those lifecycle
// hooks are optional (spec §4.3).
func (r *Registry) Lookup(id ID) (Signature, Invoker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.methods[id]
	if !ok {
		return Signature{}, nil, false
	}
	return e.Signature, e.Invoker, true
}

// IDs returns the ids of every method registered on this class, in no
// particular order. Ids are hashes and are not reversible; the registry
// keeps no id->name map, so names cannot be recovered from the result.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.methods))
	for id := range r.methods {
		ids = append(ids, id)
	}
	return ids
}
