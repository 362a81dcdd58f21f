package graph

import "math"

// Init seeds a freshly built node with its location hash and prepares
// it for rendering: a two-pass Ping (probe then commit), a
// SetSampleRate, an Allocate and a Reset. Callers should call Init
// once before the first Tick or Process.
func Init(n Node, sampleRate float64) Node {
	hash := n.Ping(true, 0)
	n.Ping(false, hash)
	n.SetSampleRate(sampleRate)
	n.Allocate()
	n.Reset()
	return n
}

// GetMono renders and returns the next single-channel sample from a
// zero-input, one-output generator.
func GetMono(n Node) float32 {
	return n.Tick(nil)[0]
}

// GetStereo renders and returns the next stereo frame from a
// zero-input, two-output generator.
func GetStereo(n Node) (float32, float32) {
	out := n.Tick(nil)
	return out[0], out[1]
}

// FilterMono ticks a one-input, one-output filter with a single sample.
func FilterMono(n Node, x float32) float32 {
	return n.Tick(Frame{x})[0]
}

// FilterStereo ticks a two-input, two-output filter with one stereo
// frame.
func FilterStereo(n Node, l, r float32) (float32, float32) {
	out := n.Tick(Frame{l, r})
	return out[0], out[1]
}

// Response evaluates channel ch's frequency response at f Hz, given
// sampleRate, returning the complex gain and whether the channel's tag
// analyzed to a Response (linear, analyzable) shape.
func Response(n Node, ch int, f, sampleRate float64) (complex128, bool) {
	in := make([]Tag, n.Inputs())
	for i := range in {
		in[i] = Identity
	}
	out := n.Route(in)
	if ch < 0 || ch >= len(out) {
		return 0, false
	}
	return out[ch].AtFrequency(f, sampleRate)
}

// ResponseDB is Response expressed in decibels of magnitude.
func ResponseDB(n Node, ch int, f, sampleRate float64) (float64, bool) {
	h, ok := Response(n, ch, f, sampleRate)
	if !ok {
		return 0, false
	}
	mag := math.Hypot(real(h), imag(h))
	if mag <= 0 {
		return math.Inf(-1), true
	}
	return 20 * math.Log10(mag), true
}

// Latency reports the analyzed causal latency of n, per §4.5.
func Latency(n Node) float64 { return n.Latency() }
