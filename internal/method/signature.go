package method

import "github.com/vk/easywork/internal/typesystem"

// Signature is the fixed, immutable shape of a registered method: its
// ordered input types and its single output type (Void for methods that
// return nothing).
type Signature struct {
	ArgTypes   []typesystem.Descriptor
	ReturnType typesystem.Descriptor
}

// Arity returns the number of declared input arguments.
func (s Signature) Arity() int { return len(s.ArgTypes) }
