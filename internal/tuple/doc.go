// Package tuple provides the marker interface Go uses in place of
// std::tuple, and the process-wide TupleProjection registry. A tuple type
// is registered explicitly with RegisterTupleType, which records its field
// count only. CreateProjectionNode builds a node that extracts one field
// from any incoming Value, letting downstream nodes subscribe to a single
// field; it is not tied to a registered type and does not consult the
// registry.
package tuple
