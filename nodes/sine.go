package nodes

import (
	"math"

	graph "github.com/loomaudio/graph"
)

// sine is a phase-accumulating sine oscillator.
// Input 0: frequency in Hz. Output 0: the wave, range [-1, 1].
//
// Grounded on original_source/src/oscillator.rs's Sine: its initial
// phase is drawn from the node's own location hash (Set ignores every
// setting, phase included), so two sine() leaves at different tree
// positions start decorrelated even though they share identical code
// (§4.8).
type sine struct {
	phase    float64
	duration float64
	hash     uint64
}

// Sine returns a one-input (frequency, Hz), one-output sine oscillator.
func Sine() graph.Node { return &sine{} }

func (s *sine) Inputs() int  { return 1 }
func (s *sine) Outputs() int { return 1 }

func (s *sine) Reset() {
	s.phase = graph.NewRNG(s.hash).Float()
}

func (s *sine) SetSampleRate(sr float64) { s.duration = 1 / sr }
func (s *sine) Allocate()                {}

func (s *sine) Tick(input graph.Frame) graph.Frame {
	s.phase += float64(input[0]) * s.duration
	_, frac := math.Modf(s.phase)
	if frac < 0 {
		frac++
	}
	s.phase = frac
	return graph.Frame{float32(math.Sin(s.phase * 2 * math.Pi))}
}

func (s *sine) Process(input graph.BufferRef, output graph.BufferMut, size int) {
	for i := 0; i < size; i++ {
		out := s.Tick(graph.Frame{input.At(0, i)})
		output.Set(0, i, out[0])
	}
}

func (s *sine) Set(setting graph.Setting, addr graph.Address) {}

func (s *sine) Ping(probe bool, hash uint64) uint64 {
	s.hash = hash
	if !probe {
		s.Reset()
	}
	return hash
}

func (s *sine) Route(in []graph.Tag) []graph.Tag {
	return []graph.Tag{graph.Unknown}
}

func (s *sine) Latency() float64 { return 0 }
