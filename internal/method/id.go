package method

import "hash/fnv"

// ID is a method identifier: the FNV-1a hash of the method's name, per
// spec §3 (`methodId = fnv1a(methodName)`).
type ID uint64

// Reserved method ids, computed the same way user method ids are.
var (
	Forward = HashName("forward")
	Open    = HashName("Open")
	Close   = HashName("Close")
)

// HashName computes the FNV-1a hash of name. Go's standard library ships
// FNV-1a (hash/fnv); this is the one algorithm the spec names explicitly,
// so no substitute is sought.
func HashName(name string) ID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return ID(h.Sum64())
}
