package graph

// Node is the uniform contract implemented by every processing element:
// generators (Inputs() == 0), filters (Inputs() > 0 && Outputs() > 0),
// sinks (Outputs() == 0), and every combinator in this package.
//
// For a given internal state and sample rate, Process(x, n) followed by
// Process(y, m) must produce the same output samples as a single call
// Process(x‖y, n+m) starting from the same initial state (block-split
// equivalence); Tick must be observationally equivalent to Process with
// n=1.
type Node interface {
	// Inputs returns the number of input channels.
	Inputs() int
	// Outputs returns the number of output channels.
	Outputs() int

	// Reset returns the node to its initial phase/state, re-establishing
	// time zero for any time-varying control. It does not change the
	// sample rate, and is idempotent: two consecutive calls leave the
	// node in the same state as one.
	Reset()
	// SetSampleRate recomputes rate-dependent coefficients. Unlike
	// Reset, state is preserved where meaningful.
	SetSampleRate(sampleRate float64)
	// Allocate preallocates any remaining heap memory so that
	// subsequent Process/Tick calls are allocation-free. Idempotent.
	Allocate()

	// Tick processes a single frame. input has Inputs() channels; the
	// returned frame has Outputs() channels.
	Tick(input Frame) Frame
	// Process consumes and produces exactly n frames (n <= BlockSize).
	// input has Inputs() channels, output has Outputs() channels. No
	// allocation is permitted once Allocate has been called.
	Process(input BufferRef, output BufferMut, n int)

	// Set applies setting at the position addr navigates to; an empty
	// Address applies here. Unrecognized settings are silently ignored.
	Set(setting Setting, addr Address)

	// Ping computes the node's location hash. In probe mode (probe ==
	// true) the call is observational only; otherwise the node records
	// hashIn and seeds its pseudorandom state from it. The returned
	// value is the hash to report upward.
	Ping(probe bool, hashIn uint64) uint64

	// Route produces an output Tag per output channel given a Tag per
	// input channel, without processing any audio.
	Route(in []Tag) []Tag

	// Latency is the node's involuntary causal latency in samples,
	// derived from Route. It returns the minimum latency among outputs,
	// or 0 if no output carries an analyzable latency.
	Latency() float64
}

// AddressKind identifies one navigation step of an Address.
type AddressKind int

const (
	// Left picks the left child of a binary combinator.
	Left AddressKind = iota
	// Right picks the right child of a binary combinator.
	Right
	// Index picks the i-th child of an n-ary builder.
	Index
	// ByNode picks a specific node inside a dynamic network.
	ByNode
)

// AddressToken is one step of an Address.
type AddressToken struct {
	Kind AddressKind
	I    int    // meaningful when Kind == Index
	Node uint64 // meaningful when Kind == ByNode
}

// Address is a stack of up to four navigation tokens routing a Setting
// to the node it targets. Address[0] is consumed first; the remainder is
// forwarded to the selected child.
type Address []AddressToken

// AtLeft returns the Address token selecting the left child.
func AtLeft() AddressToken { return AddressToken{Kind: Left} }

// AtRight returns the Address token selecting the right child.
func AtRight() AddressToken { return AddressToken{Kind: Right} }

// AtIndex returns the Address token selecting the i-th child.
func AtIndex(i int) AddressToken { return AddressToken{Kind: Index, I: i} }

// AtNode returns the Address token selecting a node by dynamic id.
func AtNode(id uint64) AddressToken { return AddressToken{Kind: ByNode, Node: id} }

// Head returns the first token and the remaining address, or ok=false if
// addr is empty.
func (addr Address) Head() (AddressToken, Address, bool) {
	if len(addr) == 0 {
		return AddressToken{}, nil, false
	}
	return addr[0], addr[1:], true
}

// SettingKind enumerates the eleven parameter kinds a node may accept.
type SettingKind int

const (
	// SettingKindValue replaces a constant node's output.
	SettingKindValue SettingKind = iota
	// SettingKindCenter sets a filter's cutoff/center frequency in Hz.
	SettingKindCenter
	// SettingKindCenterQ sets a filter's center frequency and Q.
	SettingKindCenterQ
	// SettingKindCenterQGain sets a shelving/bell filter's center, Q,
	// and gain (amplitude ratio).
	SettingKindCenterQGain
	// SettingKindBiquad sets raw biquad coefficients (a1, a2, b0, b1, b2).
	SettingKindBiquad
	// SettingKindPhase sets an oscillator's initial phase, in [0, 1],
	// taking effect at the next Reset.
	SettingKindPhase
	// SettingKindAttackRelease sets an asymmetric follower's attack and
	// release times in seconds.
	SettingKindAttackRelease
	// SettingKindPan sets a panner's position in [-1, 1].
	SettingKindPan
	// SettingKindDelay sets an allpass/allpole delay in samples.
	SettingKindDelay
	// SettingKindRoughness sets a DSF oscillator's roughness in [0, 1].
	SettingKindRoughness
	// SettingKindVariability sets a sample-and-hold's variability in
	// [0, 1].
	SettingKindVariability
)

// Setting is a tagged parameter update. Exactly the fields relevant to
// Kind are meaningful; the rest are zero. Use the SettingX constructors
// rather than building one directly.
type Setting struct {
	Kind                   SettingKind
	Value                  float32
	Center, Q, Gain        float32
	A1, A2, B0, B1, B2     float32
	Phase                  float32
	Attack, Release        float32
	Pan                    float32
	DelaySamples           float32
	Roughness, Variability float32
}

// SettingValue constructs a "value" setting.
func SettingValue(v float32) Setting { return Setting{Kind: SettingKindValue, Value: v} }

// SettingCenter constructs a "center" setting.
func SettingCenter(hz float32) Setting { return Setting{Kind: SettingKindCenter, Center: hz} }

// SettingCenterQ constructs a "center_q" setting.
func SettingCenterQ(hz, q float32) Setting {
	return Setting{Kind: SettingKindCenterQ, Center: hz, Q: q}
}

// SettingCenterQGain constructs a "center_q_gain" setting.
func SettingCenterQGain(hz, q, gain float32) Setting {
	return Setting{Kind: SettingKindCenterQGain, Center: hz, Q: q, Gain: gain}
}

// SettingBiquad constructs a raw "biquad_coeffs" setting.
func SettingBiquad(a1, a2, b0, b1, b2 float32) Setting {
	return Setting{Kind: SettingKindBiquad, A1: a1, A2: a2, B0: b0, B1: b1, B2: b2}
}

// SettingPhase constructs a "phase" setting.
func SettingPhase(phase float32) Setting { return Setting{Kind: SettingKindPhase, Phase: phase} }

// SettingAttackRelease constructs an "attack_release" setting.
func SettingAttackRelease(attack, release float32) Setting {
	return Setting{Kind: SettingKindAttackRelease, Attack: attack, Release: release}
}

// SettingPan constructs a "pan" setting.
func SettingPan(pan float32) Setting { return Setting{Kind: SettingKindPan, Pan: pan} }

// SettingDelay constructs a "delay" setting.
func SettingDelay(samples float32) Setting {
	return Setting{Kind: SettingKindDelay, DelaySamples: samples}
}

// SettingRoughness constructs a "roughness" setting.
func SettingRoughness(r float32) Setting { return Setting{Kind: SettingKindRoughness, Roughness: r} }

// SettingVariability constructs a "variability" setting.
func SettingVariability(v float32) Setting {
	return Setting{Kind: SettingKindVariability, Variability: v}
}
