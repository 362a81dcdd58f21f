package sequencer

import "sync/atomic"

// clock is shared between a Sequencer's frontend and backend so
// push_relative can resolve "current stream time" without the
// frontend blocking on the render thread. Grounded on svar's
// atomic-cell pattern (spec.md §5's "shared variables are atomic
// cells readable and writable from any thread").
type clock struct {
	samples atomic.Uint64
}

func (c *clock) advance(n int) {
	c.samples.Add(uint64(n))
}

func (c *clock) now() uint64 {
	return c.samples.Load()
}
