// Package node implements the per-instance node model and the per-cycle
// dispatcher: upstream edges, per-port FIFO buffers, per-method sync/queue
// configuration, auto-derived method order, and the buffer/gate/invoke/emit
// algorithm that turns buffered packets into at most one output packet per
// node per cycle.
package node
