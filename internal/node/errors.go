package node

import "fmt"

// ConstructionError is fatal to Node construction: an unknown node name, or
// argument extraction that could not cast even after defaulting. Raised by
// internal/registry, not by this package, but defined here so node and
// registry errors sort under one hierarchy for callers that switch on kind.
type ConstructionError struct {
	NodeName string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("node: cannot construct %q: %v", e.NodeName, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// WiringError reports a method that cannot be called with the inputs at
// hand. Node.Invoke returns it when the method id is not registered for
// the node's class. Dispatch does not construct it: a method whose wired
// port count differs from its arity is skipped silently for the cycle.
type WiringError struct {
	MethodName string
	Want, Got  int
}

func (e *WiringError) Error() string {
	return fmt.Sprintf("node: method %q wants %d input port(s), has %d wired", e.MethodName, e.Want, e.Got)
}

// LifecycleError wraps a failure from Open or Close other than "method not
// registered". Fatal: it propagates to the caller of Node.Open / Node.Close.
type LifecycleError struct {
	Phase string // "Open" or "Close"
	Err   error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("node: %s failed: %v", e.Phase, e.Err)
}

func (e *LifecycleError) Unwrap() error { return e.Err }

// StopRequested is not an error in the ordinary sense: a source node's
// method returns it to request graph termination, and Dispatch, on
// finding it, calls Stop on the owning graph instead of logging a
// failure. It exists as a type so that case is told apart from a genuine
// failure without a sentinel string.
type StopRequested struct {
	NodeName string
}

func (e *StopRequested) Error() string {
	return fmt.Sprintf("node: %q requested stop", e.NodeName)
}
