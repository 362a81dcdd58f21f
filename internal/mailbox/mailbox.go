// Package mailbox is the real-time-safe handoff between a dynamic
// network's frontend (Commit, called from any goroutine) and its
// backend (render, called from the audio thread). Unlike a bounded
// channel carrying an ongoing message stream, a network commit is a
// single most-recent-snapshot-wins handoff: only the latest topology
// matters, and the render thread must never block waiting for one.
package mailbox

import "sync/atomic"

// Mailbox holds at most one pending value of type T. Post overwrites
// whatever was pending; Take atomically claims it. Both are lock-free
// and allocation-free after Post, safe to call from any goroutine
// including a render callback.
type Mailbox[T any] struct {
	slot atomic.Pointer[T]
}

// Post deposits v, replacing any value not yet taken.
func (m *Mailbox[T]) Post(v *T) {
	m.slot.Store(v)
}

// Take claims and clears the pending value, if any. It returns
// (nil, false) if nothing has been posted since the last Take.
func (m *Mailbox[T]) Take() (*T, bool) {
	v := m.slot.Swap(nil)
	if v == nil {
		return nil, false
	}
	return v, true
}

// Peek returns the pending value without clearing it, for callers that
// need to inspect but not consume (e.g. Error()).
func (m *Mailbox[T]) Peek() (*T, bool) {
	v := m.slot.Load()
	if v == nil {
		return nil, false
	}
	return v, true
}
