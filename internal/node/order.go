package node

import "github.com/vk/easywork/internal/method"

// SetMethodOrder overrides the auto-derived method order with names, in
// order. forward is forced to the last position regardless of where it
// appears in names. Once called, new edges no longer auto-insert into the
// order (ClearUpstreams preserves it rather than resetting it).
func (n *Node) SetMethodOrder(names []string) {
	ids := make([]method.ID, len(names))
	for i, name := range names {
		ids[i] = resolveMethodID(name)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.order = ids
	n.orderIsUserSet = true
	n.enforceForwardLastLocked()
}

// EffectiveMethodOrder returns the order the dispatcher follows this cycle.
func (n *Node) EffectiveMethodOrder() []method.ID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]method.ID(nil), n.order...)
}

// autoInsertMethodLocked appends id to the order if absent, unless the user
// has taken over ordering with SetMethodOrder, then re-asserts that forward
// is last. Called with n.mu held.
func (n *Node) autoInsertMethodLocked(id method.ID) {
	if n.orderIsUserSet {
		return
	}
	if !containsID(n.order, id) {
		n.order = append(n.order, id)
	}
	n.enforceForwardLastLocked()
}

// enforceForwardLastLocked moves forward to the final position of n.order
// if present anywhere else. Called with n.mu held.
func (n *Node) enforceForwardLastLocked() {
	if len(n.order) == 0 {
		return
	}
	idx := indexOfID(n.order, method.Forward)
	if idx == -1 || idx == len(n.order)-1 {
		return
	}
	reordered := make([]method.ID, 0, len(n.order))
	reordered = append(reordered, n.order[:idx]...)
	reordered = append(reordered, n.order[idx+1:]...)
	reordered = append(reordered, method.Forward)
	n.order = reordered
}

func containsID(ids []method.ID, target method.ID) bool {
	return indexOfID(ids, target) != -1
}

func indexOfID(ids []method.ID, target method.ID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}
