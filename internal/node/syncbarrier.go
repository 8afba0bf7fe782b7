package node

import (
	"sync"

	"github.com/vk/easywork/internal/packet"
)

// Project builds a single output packet from one front packet per input
// port, in port order. Typically it constructs a tuple.Value; SyncBarrier
// itself is agnostic to the result's shape.
type Project func(fronts []packet.Packet) packet.Packet

// SyncBarrier is an N-input timestamp aligner: a node variant with exactly
// one output, built by projecting the front of every port once their
// timestamps fall within ToleranceNs of each other.
type SyncBarrier struct {
	mu sync.Mutex

	upstreams   []*Node
	buffers     [][]packet.Packet
	toleranceNs int64
	project     Project

	graph  Graph
	output packet.Packet
}

// NewSyncBarrier constructs a barrier over upstreams, publishing once their
// front timestamps are within toleranceNs of each other.
func NewSyncBarrier(toleranceNs int64, project Project, upstreams ...*Node) *SyncBarrier {
	return &SyncBarrier{
		upstreams:   upstreams,
		buffers:     make([][]packet.Packet, len(upstreams)),
		toleranceNs: toleranceNs,
		project:     project,
	}
}

// Build registers the barrier as a task with g.
func (b *SyncBarrier) Build(g Graph) {
	b.mu.Lock()
	b.graph = g
	b.mu.Unlock()
	g.AddTask(b)
}

// Connect records precedence from every upstream to this barrier.
func (b *SyncBarrier) Connect() {
	b.mu.Lock()
	g := b.graph
	upstreams := append([]*Node(nil), b.upstreams...)
	b.mu.Unlock()

	for _, u := range upstreams {
		g.AddPrecedence(u, b)
	}
}

// CollectInputs buffers each upstream's output produced this cycle.
func (b *SyncBarrier) CollectInputs() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, u := range b.upstreams {
		p := u.Output()
		if p.HasValue() {
			b.buffers[i] = append(b.buffers[i], p)
		}
	}
}

// Dispatch runs the alignment algorithm: while every port is non-empty,
// compute the timestamp spread across fronts; within tolerance, project
// and pop one packet from every port; otherwise drop the fronts at the
// minimum timestamp and retry. The barrier's single output slot holds the
// last projection published this cycle, or the empty packet if none was.
func (b *SyncBarrier) Dispatch() {
	b.mu.Lock()
	defer b.mu.Unlock()

	produced := false
	for b.allNonEmptyLocked() {
		minTS, maxTS := b.tsRangeLocked()
		if maxTS-minTS <= b.toleranceNs {
			fronts := make([]packet.Packet, len(b.buffers))
			for i := range b.buffers {
				fronts[i] = b.buffers[i][0]
				b.buffers[i] = b.buffers[i][1:]
			}
			b.output = b.project(fronts).WithTimestamp(maxTS)
			produced = true
			continue
		}
		for i := range b.buffers {
			if len(b.buffers[i]) > 0 && b.buffers[i][0].Timestamp() == minTS {
				b.buffers[i] = b.buffers[i][1:]
			}
		}
	}

	if !produced {
		b.output = packet.Empty()
	}
}

func (b *SyncBarrier) allNonEmptyLocked() bool {
	for _, buf := range b.buffers {
		if len(buf) == 0 {
			return false
		}
	}
	return len(b.buffers) > 0
}

func (b *SyncBarrier) tsRangeLocked() (minTS, maxTS int64) {
	for i, buf := range b.buffers {
		ts := buf[0].Timestamp()
		if i == 0 || ts < minTS {
			minTS = ts
		}
		if i == 0 || ts > maxTS {
			maxTS = ts
		}
	}
	return minTS, maxTS
}

// Output returns the packet produced by the most recent Dispatch.
func (b *SyncBarrier) Output() packet.Packet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output
}
