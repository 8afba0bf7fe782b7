package node

import (
	"errors"

	"github.com/vk/easywork/internal/method"
	"github.com/vk/easywork/internal/packet"
)

// CollectInputs pulls the most recent output from each upstream that
// produced one this cycle into this node's port buffers, trimming to the
// port's configured max queue. Called by the graph executor after every
// upstream precedence has been satisfied, before Dispatch.
func (n *Node) CollectInputs() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.upstreams {
		p := e.Upstream.Output()
		if !p.HasValue() {
			continue
		}
		n.buffers[i] = append(n.buffers[i], p)
		cfg := n.configs[e.MethodID]
		if cfg.MaxQueue > 0 {
			for len(n.buffers[i]) > cfg.MaxQueue {
				n.buffers[i] = n.buffers[i][1:]
			}
		}
	}
}

// Dispatch runs one cycle of the per-node algorithm: for each methodId in
// EffectiveMethodOrder, gate on arity, sync policy and buffer readiness,
// then invoke and write to the single output_packet slot. Every method
// whose inputs are ready runs; when several return a value in one cycle,
// the slot holds the last of them. If none does, the output is emptied.
func (n *Node) Dispatch() {
	n.mu.Lock()
	defer n.mu.Unlock()

	produced := false
	for _, id := range n.order {
		ports := n.portsForMethodLocked(id)
		sig, invoke, ok := n.registry.Lookup(id)
		if !ok {
			continue
		}
		if len(ports) != sig.Arity() {
			continue
		}

		cfg := n.configs[id]
		if cfg.SyncEnabled {
			if !n.allNonEmptyLocked(ports) {
				continue
			}
			minTS, maxTS := n.tsRangeLocked(ports)
			if maxTS != minTS {
				n.dropFrontsAtLocked(ports, minTS)
				continue
			}
		}

		if !n.allNonEmptyLocked(ports) {
			continue
		}

		inputs := n.popFrontsLocked(ports)
		result, err := invoke(n.self, inputs)
		if err != nil {
			var stop *StopRequested
			if errors.As(err, &stop) && n.graph != nil {
				n.logger.Info("node: stop requested", "method_id", id)
				n.graph.Stop()
			} else {
				n.logger.Warn("node: method invocation failed", "method_id", id, "error", err)
			}
			continue
		}
		if !result.HasValue() {
			continue
		}
		if result.Timestamp() == 0 {
			if len(inputs) > 0 {
				result = result.WithTimestamp(inputs[0].Timestamp())
			} else {
				result = result.WithTimestamp(packet.NowNs())
			}
		}
		n.output = result
		produced = true
	}

	if !produced {
		n.output = packet.Empty()
	}
}

func (n *Node) portsForMethodLocked(id method.ID) []int {
	ports := make([]int, 0, len(n.upstreams))
	for i, e := range n.upstreams {
		if e.MethodID == id {
			ports = append(ports, i)
		}
	}
	return ports
}

func (n *Node) allNonEmptyLocked(ports []int) bool {
	for _, i := range ports {
		if len(n.buffers[i]) == 0 {
			return false
		}
	}
	return true
}

func (n *Node) tsRangeLocked(ports []int) (minTS, maxTS int64) {
	for k, i := range ports {
		ts := n.buffers[i][0].Timestamp()
		if k == 0 || ts < minTS {
			minTS = ts
		}
		if k == 0 || ts > maxTS {
			maxTS = ts
		}
	}
	return minTS, maxTS
}

func (n *Node) dropFrontsAtLocked(ports []int, ts int64) {
	for _, i := range ports {
		if len(n.buffers[i]) > 0 && n.buffers[i][0].Timestamp() == ts {
			n.buffers[i] = n.buffers[i][1:]
		}
	}
}

func (n *Node) popFrontsLocked(ports []int) []packet.Packet {
	inputs := make([]packet.Packet, len(ports))
	for k, i := range ports {
		inputs[k] = n.buffers[i][0]
		n.buffers[i] = n.buffers[i][1:]
	}
	return inputs
}
