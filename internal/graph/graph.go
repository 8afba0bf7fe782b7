package graph

import (
	"log/slog"
	"sync"

	"github.com/vk/easywork/internal/node"
)

// Builder is anything that can register itself as a task and wire its own
// precedence with the graph: both *node.Node and *node.SyncBarrier satisfy
// this.
type Builder interface {
	Build(g node.Graph)
	Connect()
}

// Graph holds the task topology (GraphState from the spec) and drives it
// through the lifecycle UNBUILT -> ... -> RESET. It implements
// node.Graph, so node.Node.Build/Connect/Stop operate against it directly.
type Graph struct {
	mu sync.Mutex

	state  State
	logger *slog.Logger

	tasks    []node.Task
	order    []node.Task // insertion order, for deterministic root discovery
	depCount map[node.Task]int
	precede  map[node.Task][]node.Task

	keepRunning bool
}

// New constructs an empty, UNBUILT graph.
func New() *Graph {
	return &Graph{
		logger:   slog.Default(),
		depCount: make(map[node.Task]int),
		precede:  make(map[node.Task][]node.Task),
	}
}

// WithLogger overrides the graph's logger, returning g for chaining.
func (g *Graph) WithLogger(logger *slog.Logger) *Graph {
	g.logger = logger
	return g
}

// AddTask registers t as a task in the topology. Implements node.Graph.
func (g *Graph) AddTask(t node.Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, seen := g.depCount[t]; seen {
		return
	}
	g.tasks = append(g.tasks, t)
	g.order = append(g.order, t)
	g.depCount[t] = 0
}

// AddPrecedence records that upstream's task must complete before
// downstream's task begins within a cycle. Implements node.Graph.
func (g *Graph) AddPrecedence(upstream, downstream node.Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.precede[upstream] = append(g.precede[upstream], downstream)
	g.depCount[downstream]++
}

// Stop flips keep_running to false; the in-flight cycle completes, then
// Run returns. Implements node.Graph.
func (g *Graph) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.keepRunning = false
}

// Build drives every builder's Build(g), populating the task topology,
// then moves the graph to BUILT.
func (g *Graph) Build(builders ...Builder) {
	for _, b := range builders {
		b.Build(g)
	}
	g.mu.Lock()
	g.state = StateBuilt
	g.mu.Unlock()
}

// Connect drives every builder's Connect(), wiring precedence, then moves
// the graph to CONNECTED.
func (g *Graph) Connect(builders ...Builder) {
	for _, b := range builders {
		b.Connect()
	}
	g.mu.Lock()
	g.state = StateConnected
	g.mu.Unlock()
}

// CurrentState returns the graph's current lifecycle state.
func (g *Graph) CurrentState() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Reset clears the task topology and re-arms keep_running, returning the
// graph to UNBUILT.
func (g *Graph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tasks = nil
	g.order = nil
	g.depCount = make(map[node.Task]int)
	g.precede = make(map[node.Task][]node.Task)
	g.keepRunning = true
	g.state = StateUnbuilt
}
