package packet

import (
	"fmt"
	"reflect"
	"time"

	"github.com/vk/easywork/internal/typesystem"
)

// box holds the actual payload behind a pointer so that cloning a Packet
// (a plain struct copy) shares the payload rather than duplicating it.
type box struct {
	value any
}

// Packet is a shared-owned pair of (payload, timestamp_ns). A Packet with
// a nil payload is the empty packet: HasValue reports false.
type Packet struct {
	data *box
	ts   int64
}

// Empty returns the empty Packet.
func Empty() Packet {
	return Packet{}
}

// From wraps value in a new Packet timestamped ts. T may be any type,
// including interface types; the Packet's runtime type is whatever
// concrete type T carries.
func From[T any](value T, ts int64) Packet {
	return Packet{data: &box{value: value}, ts: ts}
}

// FromAny wraps an already-erased value in a new Packet timestamped ts.
func FromAny(value any, ts int64) Packet {
	return Packet{data: &box{value: value}, ts: ts}
}

// HasValue reports whether the Packet carries a payload. By invariant,
// payload == nil iff this is the empty packet.
func (p Packet) HasValue() bool {
	return p.data != nil && p.data.value != nil
}

// Timestamp returns the Packet's nanosecond timestamp.
func (p Packet) Timestamp() int64 {
	return p.ts
}

// WithTimestamp returns a copy of p stamped with ts, sharing the same
// payload.
func (p Packet) WithTimestamp(ts int64) Packet {
	p.ts = ts
	return p
}

// Type returns the TypeDescriptor of the Packet's payload, or the Void
// descriptor if the Packet is empty.
func (p Packet) Type() typesystem.Descriptor {
	if !p.HasValue() {
		return typesystem.Void
	}
	return typesystem.FromReflectType(reflect.TypeOf(p.data.value))
}

// Any returns the Packet's payload as a type-erased value. It returns nil
// for the empty packet.
func (p Packet) Any() any {
	if p.data == nil {
		return nil
	}
	return p.data.value
}

// Cast returns the Packet's payload as T. It fails with a type-mismatch
// error unless the payload's concrete type is exactly T; callers that
// need narrowing or widening go through the converter registry one level
// up, inside the method invoker.
func Cast[T any](p Packet) (T, error) {
	var zero T
	if !p.HasValue() {
		return zero, fmt.Errorf("packet: cannot cast empty packet to %s", typesystem.Of[T]().Name())
	}
	v, ok := p.data.value.(T)
	if !ok {
		return zero, fmt.Errorf("packet: type mismatch: expected %s, got %s",
			typesystem.Of[T]().Name(), p.Type().Name())
	}
	return v, nil
}

// clockEpoch anchors NowNs: its monotonic reading measures elapsed time,
// its wall-clock value keeps readings non-zero.
var clockEpoch = time.Now()

// NowNs returns a monotonic nanosecond reading, used by source nodes to
// stamp a packet that was returned with a zero timestamp.
func NowNs() int64 {
	return clockEpoch.UnixNano() + int64(time.Since(clockEpoch))
}
