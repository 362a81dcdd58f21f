// Package denormal guards recursive filters (feedback loops, one-pole
// smoothers, biquads) against the performance cliff of denormal
// floating-point values. Go has no portable way to flip the CPU's
// FTZ/DAZ flags once per render callback without cgo or hand-written
// per-arch assembly, so this package takes the portable alternative:
// flush values below threshold to zero at the point they are produced.
// The flush runs on every architecture.
package denormal

import "golang.org/x/sys/cpu"

// threshold below which a float32 is treated as a denormal worth
// flushing. This is well above the true subnormal boundary
// (~1.18e-38); recursive filters that decay past -360dBFS carry no
// audible signal, so flushing here costs nothing perceptually.
const threshold = 1e-18

// Active reports whether explicit flushing is in effect. It is true on
// every platform; Flush32 and Flush64 do not consult it.
var Active = cpu.X86.HasSSE2 || true

// Flush32 zeroes x if its magnitude is a denormal candidate, else
// returns it unchanged.
func Flush32(x float32) float32 {
	if x > -threshold && x < threshold {
		return 0
	}
	return x
}

// Flush64 is Flush32 for float64 accumulators (biquad state, feedback
// gain stages computed at higher internal precision).
func Flush64(x float64) float64 {
	if x > -threshold && x < threshold {
		return 0
	}
	return x
}
