// Package convert implements the process-wide type converter registry: a
// lookup table from (fromType, toType) to a conversion function, used by
// the method invoker when a packet's payload does not exactly match a
// method's declared argument type. It is read-mostly and safe under
// concurrent reads, following the mutex discipline the teacher applies to
// its own process-wide registries (internal/registry.Registry).
package convert
