package graph

import (
	"context"
	"sync"

	"github.com/vk/easywork/internal/ctxlog"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/packet"
)

// DefaultWorkers is used when Executor.Workers is left at zero.
const DefaultWorkers = 10

// Opener is the optional lifecycle hook a task may satisfy; *node.Node
// does, *node.SyncBarrier does not.
type Opener interface {
	Open(inputs ...packet.Packet) error
}

// Closer is the optional lifecycle hook a task may satisfy symmetrically
// with Opener.
type Closer interface {
	Close(inputs ...packet.Packet) error
}

// Executor drives a Graph's tasks: Open/Close fan-out, and the cycle loop
// that runs every task exactly once per cycle subject to precedence,
// using a worker pool sized by Workers.
type Executor struct {
	Graph   *Graph
	Workers int
}

// NewExecutor builds an Executor over g with the default worker count.
func NewExecutor(g *Graph) *Executor {
	return &Executor{Graph: g, Workers: DefaultWorkers}
}

// Open fans Open out to every task that implements Opener, in insertion
// order, idempotent per task (Node.Open already is). The first
// *node.LifecycleError returned aborts the fan-out and propagates.
func (ex *Executor) Open(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	g := ex.Graph

	g.mu.Lock()
	tasks := append([]node.Task(nil), g.order...)
	g.mu.Unlock()

	for _, t := range tasks {
		if o, ok := t.(Opener); ok {
			if err := o.Open(); err != nil {
				logger.Error("graph: task Open failed", "error", err)
				return err
			}
		}
	}

	g.mu.Lock()
	g.state = StateOpen
	g.mu.Unlock()
	logger.Debug("graph: opened", "tasks", len(tasks))
	return nil
}

// Close fans Close out to every task that implements Closer, in insertion
// order. Idempotent per task. Unlike Open, Close does not abort early: it
// attempts every task and returns the first error encountered, so one
// node's failed teardown does not leak every other node's resources.
func (ex *Executor) Close(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	g := ex.Graph

	g.mu.Lock()
	tasks := append([]node.Task(nil), g.order...)
	g.mu.Unlock()

	var firstErr error
	for _, t := range tasks {
		if c, ok := t.(Closer); ok {
			if err := c.Close(); err != nil {
				logger.Error("graph: task Close failed", "error", err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	g.mu.Lock()
	g.state = StateClosed
	g.mu.Unlock()
	return firstErr
}

// Run sets keep_running and repeatedly drives the whole task graph to
// completion, one cycle per pass, until Stop is called on the graph or ctx
// is cancelled. It blocks the caller.
func (ex *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	g := ex.Graph

	g.mu.Lock()
	g.keepRunning = true
	g.state = StateRunning
	g.mu.Unlock()

	workers := ex.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	cycle := 0
	for {
		g.mu.Lock()
		keepRunning := g.keepRunning
		g.mu.Unlock()
		if !keepRunning {
			break
		}
		select {
		case <-ctx.Done():
			logger.Warn("graph: run cancelled", "cycle", cycle)
			g.mu.Lock()
			g.state = StateIdle
			g.mu.Unlock()
			return ctx.Err()
		default:
		}

		if err := ex.runCycle(ctx, workers); err != nil {
			g.mu.Lock()
			g.state = StateIdle
			g.mu.Unlock()
			return err
		}
		cycle++
	}

	g.mu.Lock()
	g.state = StateIdle
	g.mu.Unlock()
	logger.Info("graph: run stopped", "cycles", cycle)
	return nil
}

// runCycle drives every task exactly once, respecting precedence, with a
// worker pool of readyChan consumers — the same ready-channel / WaitGroup
// shape as the teacher's internal/dag executor, run once per cycle instead
// of once per process lifetime.
func (ex *Executor) runCycle(ctx context.Context, workers int) error {
	g := ex.Graph

	g.mu.Lock()
	tasks := append([]node.Task(nil), g.order...)
	remaining := make(map[node.Task]int, len(g.depCount))
	for t, c := range g.depCount {
		remaining[t] = c
	}
	precede := g.precede
	g.mu.Unlock()

	if len(tasks) == 0 {
		return nil
	}

	ready := make(chan node.Task, len(tasks))
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for _, t := range tasks {
		if remaining[t] == 0 {
			ready <- t
		}
	}

	release := func(t node.Task) {
		mu.Lock()
		defer mu.Unlock()
		for _, dep := range precede[t] {
			remaining[dep]--
			if remaining[dep] == 0 {
				ready <- dep
			}
		}
	}

	for i := 0; i < workers; i++ {
		go func() {
			for t := range ready {
				t.CollectInputs()
				t.Dispatch()
				release(t)
				wg.Done()
			}
		}()
	}

	wg.Wait()
	close(ready)
	return nil
}
