package graphdef

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/easywork/internal/ctxlog"
	"github.com/vk/easywork/internal/graph"
	"github.com/vk/easywork/internal/node"
	"github.com/vk/easywork/internal/registry"
)

// Loaded is the result of loading one graph definition file: the built and
// connected Graph, plus the instantiated nodes keyed by their declared
// name, for callers that want to wire additional programmatic edges or
// inspect specific instances before running.
type Loaded struct {
	Graph *graph.Graph
	Nodes map[string]*node.Node
}

// Load parses path as an HCL graph definition, constructs every declared
// node via internal/registry.Create, wires every declared edge, and
// returns the built-and-connected graph. It does not Open or Run it.
func Load(ctx context.Context, path string) (*Loaded, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("graphdef: parse %s: %w", path, diags)
	}

	var schema fileSchema
	diags = gohcl.DecodeBody(hclFile.Body, nil, &schema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("graphdef: decode %s: %w", path, diags)
	}

	logger.Debug("graphdef: parsed file", "path", path, "nodes", len(schema.Nodes), "edges", len(schema.Edges))

	nodes := make(map[string]*node.Node, len(schema.Nodes))
	for _, nb := range schema.Nodes {
		if _, exists := nodes[nb.Name]; exists {
			return nil, fmt.Errorf("graphdef: duplicate node name %q", nb.Name)
		}
		args, err := exprArgsToNative(nb.Args)
		if err != nil {
			return nil, fmt.Errorf("graphdef: node %q: %w", nb.Name, err)
		}
		n, err := registry.Create(nb.Type, nil, args)
		if err != nil {
			return nil, fmt.Errorf("graphdef: node %q: %w", nb.Name, err)
		}
		nodes[nb.Name] = n
	}

	for _, eb := range schema.Edges {
		from, ok := nodes[eb.From]
		if !ok {
			return nil, fmt.Errorf("graphdef: edge references unknown node %q", eb.From)
		}
		to, ok := nodes[eb.To]
		if !ok {
			return nil, fmt.Errorf("graphdef: edge references unknown node %q", eb.To)
		}

		method := eb.methodName()
		to.SetInputFor(method, from)
		if eb.Sync != nil {
			to.SetMethodSync(method, *eb.Sync)
		}
		if eb.QueueSize != nil {
			to.SetMethodQueueSize(method, *eb.QueueSize)
		}
	}

	g := graph.New().WithLogger(logger)
	builders := make([]graph.Builder, 0, len(nodes))
	for _, n := range nodes {
		builders = append(builders, n)
	}
	g.Build(builders...)
	g.Connect(builders...)

	return &Loaded{Graph: g, Nodes: nodes}, nil
}
