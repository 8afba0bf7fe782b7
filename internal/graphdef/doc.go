// Package graphdef loads a graph description from an HCL file: a node
// block per instance and an edge block per wiring, layered over the
// programmatic internal/registry.Create / internal/node surface. It is new
// surface the distilled core never specified, added so a graph can be
// described without writing Go — grounded in the teacher's
// internal/model (HCL step parsing via gohcl.DecodeBody) and
// internal/hcl_adapter (cty.Value -> native Go conversion).
package graphdef
