package graphdef

import "github.com/hashicorp/hcl/v2"

// fileSchema is the top-level shape of one graph definition file.
type fileSchema struct {
	Nodes []nodeBlock `hcl:"node,block"`
	Edges []edgeBlock `hcl:"edge,block"`
}

// nodeBlock declares one node instance: `node "name" "type" { args = {...} }`.
// Args is kept as a raw hcl.Expression rather than eagerly typed, the same
// deferred-evaluation approach the teacher's model.Step uses for its
// Arguments field — Load evaluates it once the body has been parsed.
type nodeBlock struct {
	Name string         `hcl:"name,label"`
	Type string         `hcl:"type,label"`
	Args hcl.Expression `hcl:"args,optional"`
}

// edgeBlock wires one upstream node's output into a downstream node's port:
// `edge { from = "name" method = "forward" to = "name" }`. Method defaults
// to "forward" when omitted. Sync and QueueSize map onto
// Node.SetMethodSync / Node.SetMethodQueueSize for the edge's method.
type edgeBlock struct {
	From      string `hcl:"from"`
	Method    string `hcl:"method,optional"`
	To        string `hcl:"to"`
	Sync      *bool  `hcl:"sync,optional"`
	QueueSize *int   `hcl:"queue_size,optional"`
}

func (e edgeBlock) methodName() string {
	if e.Method == "" {
		return "forward"
	}
	return e.Method
}
