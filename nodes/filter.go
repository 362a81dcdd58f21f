package nodes

import (
	"math"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/internal/denormal"
)

// onePoleLowpass is a single-pole exponential smoothing lowpass.
// Input 0: signal. Output 0: filtered signal. The cutoff in Hz comes
// from the constructor or a later center Setting; there is no cutoff
// input.
//
// Grounded on original_source/src/filter.rs's Lowpole: coeff =
// exp(-2*pi*cutoff/sampleRate); value = (1-coeff)*x + coeff*value.
type onePoleLowpass struct {
	cutoff float64
	sr     float64
	coeff  float64
	value  float64
}

// OnePoleLowpass returns a one-pole lowpass filter with the given
// initial cutoff frequency in Hz.
func OnePoleLowpass(cutoff float64) graph.Node {
	return &onePoleLowpass{cutoff: cutoff}
}

func (f *onePoleLowpass) Inputs() int  { return 1 }
func (f *onePoleLowpass) Outputs() int { return 1 }

func (f *onePoleLowpass) Reset() { f.value = 0 }

func (f *onePoleLowpass) SetSampleRate(sr float64) {
	f.sr = sr
	f.recompute()
}

func (f *onePoleLowpass) recompute() {
	f.coeff = math.Exp(-2 * math.Pi * f.cutoff / f.sr)
}

func (f *onePoleLowpass) Allocate() {}

func (f *onePoleLowpass) Tick(input graph.Frame) graph.Frame {
	x := float64(input[0])
	f.value = denormal.Flush64((1-f.coeff)*x + f.coeff*f.value)
	return graph.Frame{float32(f.value)}
}

func (f *onePoleLowpass) Process(input graph.BufferRef, output graph.BufferMut, size int) {
	row := input.Channel(0)
	out := output.Channel(0)
	for i := 0; i < size; i++ {
		f.value = denormal.Flush64((1-f.coeff)*float64(row[i]) + f.coeff*f.value)
		out[i] = float32(f.value)
	}
}

func (f *onePoleLowpass) Set(setting graph.Setting, addr graph.Address) {
	if setting.Kind == graph.SettingKindCenter {
		f.cutoff = float64(setting.Center)
		f.recompute()
	}
}

func (f *onePoleLowpass) Ping(probe bool, hash uint64) uint64 { return hash }

func (f *onePoleLowpass) Route(in []graph.Tag) []graph.Tag {
	coeff := complex(f.coeff, 0)
	transfer := func(z complex128) complex128 {
		return complex(1-f.coeff, 0) / (1 - coeff/z)
	}
	return []graph.Tag{in[0].Filter(0, transfer)}
}

func (f *onePoleLowpass) Latency() float64 { return 0 }
