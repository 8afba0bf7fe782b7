package node

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/packet"
)

// UpstreamEdge declares that Upstream's output feeds this node's port
// assigned to MethodID. Order of insertion defines port index; multiple
// edges may share a MethodID, occupying distinct ports.
type UpstreamEdge struct {
	Upstream *Node
	MethodID method.ID
}

// MethodConfig is per-method, per-node-instance configuration.
type MethodConfig struct {
	SyncEnabled bool
	MaxQueue    int // 0 = unbounded
}

// Task is anything the graph executor can drive through one cycle: collect
// buffered upstream output, then dispatch. Both *Node and *SyncBarrier
// implement it.
type Task interface {
	CollectInputs()
	Dispatch()
}

// Graph is the back-pointer contract a Node needs from its owning graph:
// task registration at Build, precedence registration at Connect, and the
// termination signal a source raises via Stop. internal/graph implements
// this; internal/node does not import internal/graph, so the dependency
// runs graph -> node, never the reverse.
type Graph interface {
	AddTask(t Task)
	AddPrecedence(upstream, downstream Task)
	Stop()
}

// Node is one instance of a node class: a user type (Self) paired with the
// class-wide reflected method table, plus all per-instance dispatcher
// state. Per-node state is single-writer: only the owning task goroutine
// mutates it during a cycle, but the mutex still guards introspection and
// Invoke from concurrent callers (host scripting, tests).
type Node struct {
	mu sync.Mutex

	self     any
	registry *method.Registry
	logger   *slog.Logger

	graph Graph

	upstreams []UpstreamEdge
	buffers   [][]packet.Packet // buffers[i] belongs to upstreams[i]

	configs        map[method.ID]MethodConfig
	order          []method.ID
	orderIsUserSet bool

	opened bool
	output packet.Packet
}

// New constructs a Node wrapping self. self's concrete type must already
// have registered its methods in method.ClassRegistry(reflect.TypeOf(self))
// — typically from the type package's init() or a Register hook, per the
// node-authoring contract.
//
// If the class registered forward, it is seeded into the method order
// immediately: a source node has no upstream edges to trigger the usual
// edge-driven auto-insertion, so without this, forward would never be
// scheduled.
func New(self any) *Node {
	n := &Node{
		self:     self,
		registry: method.ClassRegistry(reflect.TypeOf(self)),
		logger:   slog.Default(),
		configs:  make(map[method.ID]MethodConfig),
	}
	if _, _, ok := n.registry.Lookup(method.Forward); ok {
		n.autoInsertMethodLocked(method.Forward)
	}
	return n
}

// WithLogger overrides the node's logger, returning n for chaining at
// construction time.
func (n *Node) WithLogger(logger *slog.Logger) *Node {
	n.logger = logger
	return n
}

// Self returns the wrapped node instance, for callers that need the
// concrete type (e.g. a projection-node constructor templated on it).
func (n *Node) Self() any { return n.self }

// Build registers this node as a task with g and remembers g for Stop.
func (n *Node) Build(g Graph) {
	n.mu.Lock()
	n.graph = g
	n.mu.Unlock()
	g.AddTask(n)
}

// Connect records, for every upstream edge, that the upstream's task must
// run before this node's task within a cycle.
func (n *Node) Connect() {
	n.mu.Lock()
	g := n.graph
	edges := append([]UpstreamEdge(nil), n.upstreams...)
	n.mu.Unlock()

	for _, e := range edges {
		g.AddPrecedence(e.Upstream, n)
	}
}

// SetInput wires upstream's "forward" output to this node, equivalent to
// SetInputFor("forward", upstream).
func (n *Node) SetInput(upstream *Node) {
	n.SetInputFor("forward", upstream)
}

// SetInputFor wires upstream's output for methodName to a new port on this
// node. An empty methodName or "forward" is equivalent to SetInput.
func (n *Node) SetInputFor(methodName string, upstream *Node) {
	id := resolveMethodID(methodName)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.upstreams = append(n.upstreams, UpstreamEdge{Upstream: upstream, MethodID: id})
	n.buffers = append(n.buffers, nil)
	n.autoInsertMethodLocked(id)
}

// ClearUpstreams resets all edges and buffers and the auto-derived method
// order. A user-set order (via SetMethodOrder) is preserved.
func (n *Node) ClearUpstreams() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.upstreams = nil
	n.buffers = nil
	if !n.orderIsUserSet {
		n.order = nil
	}
}

// SetMethodSync enables or disables timestamp-equality gating for name.
func (n *Node) SetMethodSync(name string, enabled bool) {
	id := resolveMethodID(name)
	n.mu.Lock()
	defer n.mu.Unlock()
	cfg := n.configs[id]
	cfg.SyncEnabled = enabled
	n.configs[id] = cfg
}

// SetMethodQueueSize bounds the port buffer(s) carrying name's input. An
// already-overflowing buffer is trimmed immediately, dropping the oldest
// entries first.
func (n *Node) SetMethodQueueSize(name string, size int) {
	id := resolveMethodID(name)
	n.mu.Lock()
	defer n.mu.Unlock()
	cfg := n.configs[id]
	cfg.MaxQueue = size
	n.configs[id] = cfg

	for i, e := range n.upstreams {
		if e.MethodID != id || cfg.MaxQueue <= 0 {
			continue
		}
		for len(n.buffers[i]) > cfg.MaxQueue {
			n.buffers[i] = n.buffers[i][1:]
		}
	}
}

// IsOpen reports whether Open has taken effect.
func (n *Node) IsOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.opened
}

// Open is idempotent: a second call is a no-op. It invokes the class's
// Open method if registered; Open absent from the registry is not an
// error. A failure from a registered Open is a *LifecycleError.
func (n *Node) Open(inputs ...packet.Packet) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.opened {
		return nil
	}
	if _, invoke, ok := n.registry.Lookup(method.Open); ok {
		if _, err := invoke(n.self, inputs); err != nil {
			return &LifecycleError{Phase: "Open", Err: err}
		}
	}
	n.opened = true
	return nil
}

// Close is idempotent: a second call is a no-op.
func (n *Node) Close(inputs ...packet.Packet) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.opened {
		return nil
	}
	if _, invoke, ok := n.registry.Lookup(method.Close); ok {
		if _, err := invoke(n.self, inputs); err != nil {
			return &LifecycleError{Phase: "Close", Err: err}
		}
	}
	n.opened = false
	return nil
}

// Invoke is a one-shot synchronous call that bypasses the dispatcher,
// for host-language scripting and testing.
func (n *Node) Invoke(id method.ID, inputs []packet.Packet) (packet.Packet, error) {
	n.mu.Lock()
	self := n.self
	_, invoke, ok := n.registry.Lookup(id)
	n.mu.Unlock()
	if !ok {
		return packet.Empty(), &WiringError{Want: 0, Got: len(inputs)}
	}
	return invoke(self, inputs)
}

// Stop requests graph termination by forwarding to the owning graph.
// Called by a source node's own method body.
func (n *Node) Stop() {
	n.mu.Lock()
	g := n.graph
	n.mu.Unlock()
	if g != nil {
		g.Stop()
	}
}

// Output returns the packet produced by the most recent Dispatch, or the
// empty packet if none was produced.
func (n *Node) Output() packet.Packet {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.output
}

func resolveMethodID(name string) method.ID {
	if name == "" || name == "forward" {
		return method.Forward
	}
	return method.HashName(name)
}
