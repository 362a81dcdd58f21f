package nodes

import graph "github.com/loomaudio/graph"

// noise is a zero-input white noise generator, uniform on [-1, 1].
//
// Grounded on original_source/src/noise.rs's Noise: state seeded from
// the node's own location hash so structurally identical noise() leaves
// (e.g. two channels of a stack) decorrelate, mirrored here through
// graph.RNG rather than porting the reference's bespoke hash32f, since
// this module already grounds one splitmix64 mixer for exactly this
// role (§4.8, hash.go).
type noise struct {
	rng  *graph.RNG
	seed uint64
}

// Noise returns a zero-input, one-output white noise generator.
func Noise() graph.Node { return &noise{} }

func (n *noise) Inputs() int  { return 0 }
func (n *noise) Outputs() int { return 1 }

func (n *noise) Reset() {
	if n.rng != nil {
		n.rng = graph.NewRNG(n.seed)
	}
}

func (n *noise) SetSampleRate(sr float64) {}
func (n *noise) Allocate()                {}

func (n *noise) Tick(input graph.Frame) graph.Frame {
	return graph.Frame{float32(n.rng.Float()*2 - 1)}
}

func (n *noise) Process(input graph.BufferRef, output graph.BufferMut, size int) {
	row := output.Channel(0)
	for i := 0; i < size; i++ {
		row[i] = float32(n.rng.Float()*2 - 1)
	}
}

func (n *noise) Set(setting graph.Setting, addr graph.Address) {}

func (n *noise) Ping(probe bool, hash uint64) uint64 {
	if !probe {
		n.seed = hash
		n.rng = graph.NewRNG(hash)
	}
	return hash
}

func (n *noise) Route(in []graph.Tag) []graph.Tag {
	return []graph.Tag{graph.Unknown}
}

func (n *noise) Latency() float64 { return 0 }
