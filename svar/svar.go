// Package svar provides a shared, atomically updated control-rate
// variable: a cell an external thread can write to (a UI slider, an
// LFO on another goroutine) and a graph.Node reads from every tick
// without any lock or channel on the render path. It plays the role
// the reference implementation gives dc()/tag()-style shared inputs
// wired through an Arc<AtomicF32/AtomicF64>, expressed here with
// sync/atomic's Uint64 directly since Go's atomic package already
// gives a lock-free cell without a third-party dependency.
package svar

import (
	"math"
	"sync/atomic"

	graph "github.com/loomaudio/graph"
)

// Shared is a lock-free float64 cell safe for concurrent Load/Store.
type Shared struct {
	bits atomic.Uint64
}

// New returns a Shared initialized to v.
func New(v float64) *Shared {
	s := &Shared{}
	s.Store(v)
	return s
}

// Load returns the current value.
func (s *Shared) Load() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Store sets the current value.
func (s *Shared) Store(v float64) {
	s.bits.Store(math.Float64bits(v))
}

// Node wraps a Shared as a zero-input, one-output graph.Node emitting
// its current value on every tick - the bridge between a Shared cell
// and the combinator algebra (e.g. constant frequency control fed into
// a sine oscillator, updated live from outside the render path).
type Node struct {
	s *Shared
}

// NewNode returns a graph.Node reading s on every render call.
func NewNode(s *Shared) graph.Node { return &Node{s: s} }

func (n *Node) Inputs() int                      { return 0 }
func (n *Node) Outputs() int                     { return 1 }
func (n *Node) Reset()                           {}
func (n *Node) SetSampleRate(sampleRate float64) {}
func (n *Node) Allocate()                        {}

func (n *Node) Tick(input graph.Frame) graph.Frame {
	return graph.Frame{float32(n.s.Load())}
}

func (n *Node) Process(input graph.BufferRef, output graph.BufferMut, size int) {
	v := float32(n.s.Load())
	row := output.Channel(0)
	for i := 0; i < size; i++ {
		row[i] = v
	}
}

func (n *Node) Set(setting graph.Setting, addr graph.Address) {}
func (n *Node) Ping(probe bool, hash uint64) uint64            { return hash }
func (n *Node) Route(in []graph.Tag) []graph.Tag {
	return []graph.Tag{graph.Value(n.s.Load())}
}
func (n *Node) Latency() float64 { return 0 }
