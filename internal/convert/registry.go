package convert

import (
	"sync"

	"github.com/vk/easywork/internal/typesystem"
)

// Func converts a value of one type to another. It returns the converted
// value and true on success; false means the conversion was attempted
// against a value of the wrong runtime type.
type Func func(any) (any, bool)

type key struct {
	from typesystem.Descriptor
	to   typesystem.Descriptor
}

var (
	mu         sync.RWMutex
	converters = make(map[key]Func)
)

// Register installs a converter from the runtime type From to the
// runtime type To. Registering the same (From, To) pair twice replaces
// the earlier converter; this mirrors the teacher's panic-on-duplicate
// discipline for named registrations, but converters are keyed by type,
// not name, so silent replacement is the safer default here.
func Register[From, To any](fn func(From) To) {
	from := typesystem.Of[From]()
	to := typesystem.Of[To]()

	mu.Lock()
	defer mu.Unlock()
	converters[key{from, to}] = func(v any) (any, bool) {
		typed, ok := v.(From)
		if !ok {
			return nil, false
		}
		return fn(typed), true
	}
}

// RegisterForeign installs the pair of converters a host-language binding
// needs: Foreign -> T and T -> Foreign. The core never imports a binding
// package; the binding calls this at load time instead (spec §6.1).
func RegisterForeign[Foreign, T any](toT func(Foreign) T, toForeign func(T) Foreign) {
	Register(toT)
	Register(toForeign)
}

// Convert attempts to convert src (whose runtime type is from) to the
// runtime type to. It reports ok == false if no converter is registered
// for that exact (from, to) pair, or if src does not hold a value of the
// registered From type.
func Convert(src any, from, to typesystem.Descriptor) (any, bool) {
	mu.RLock()
	fn, ok := converters[key{from, to}]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	return fn(src)
}

// HasConverter reports whether a converter is registered for the exact
// (from, to) pair.
func HasConverter(from, to typesystem.Descriptor) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := converters[key{from, to}]
	return ok
}

func init() {
	registerNumericWidenings()
}

// registerNumericWidenings pre-populates the safe, individually-registered
// numeric conversions the spec requires: int <-> int64 <-> float64 <->
// float32. Narrowing conversions are allowed but truncating, never
// throwing, matching spec §4.1.
func registerNumericWidenings() {
	Register(func(v int) int64 { return int64(v) })
	Register(func(v int64) int { return int(v) })
	Register(func(v int) float64 { return float64(v) })
	Register(func(v float64) int { return int(v) })
	Register(func(v int) float32 { return float32(v) })
	Register(func(v float32) int { return int(v) })
	Register(func(v int64) float64 { return float64(v) })
	Register(func(v float64) int64 { return int64(v) })
	Register(func(v int64) float32 { return float32(v) })
	Register(func(v float32) int64 { return int64(v) })
	Register(func(v float32) float64 { return float64(v) })
	Register(func(v float64) float32 { return float32(v) })
}
