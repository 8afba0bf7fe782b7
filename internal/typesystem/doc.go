// Package typesystem identifies runtime types by a stable index, not by
// name. A Descriptor is created once per Go type and compared by that
// index; its display name exists for diagnostics only.
package typesystem
