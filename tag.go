package graph

import "math/cmplx"

// TagKind distinguishes the four shapes an analytic signal description
// can take.
type TagKind int

const (
	// TagUnknown means no analytic description is available for this
	// channel (it is, or has passed through, a nonlinear component).
	TagUnknown TagKind = iota
	// TagValue means the channel is provably constant at X.
	TagValue
	// TagLatency means the channel carries arbitrary audio delayed by
	// Latency samples at unit gain.
	TagLatency
	// TagResponse means the channel is a linear transformation of some
	// input channel with transfer function Transfer and causal latency
	// Latency.
	TagResponse
)

// Transfer is a z-domain transfer function H(z), evaluated at points on
// (or inside) the unit circle.
type Transfer func(z complex128) complex128

// Tag is the per-channel analytic descriptor threaded through Route.
type Tag struct {
	Kind     TagKind
	X        float64 // meaningful when Kind == TagValue
	Latency  float64 // meaningful when Kind == TagLatency or TagResponse
	Transfer Transfer
}

// Value returns a Tag describing a channel provably constant at x.
func Value(x float64) Tag { return Tag{Kind: TagValue, X: x} }

// LatencyTag returns a Tag describing a channel carrying arbitrary audio
// delayed by d samples.
func LatencyTag(d float64) Tag { return Tag{Kind: TagLatency, Latency: d} }

// ResponseTag returns a Tag describing a linear transformation with
// transfer function h and causal latency d.
func ResponseTag(h Transfer, d float64) Tag { return Tag{Kind: TagResponse, Transfer: h, Latency: d} }

// Unknown is the Tag for a channel with no analytic description.
var Unknown = Tag{Kind: TagUnknown}

// Identity is the pass-through Tag (unit gain, zero latency) used by
// combinators for channels that bypass a child untouched.
var Identity = ResponseTag(identityTransfer, 0)

func identityTransfer(z complex128) complex128 { return 1 }

// Filter composes t through a linear transfer function, adding extra
// latency samples. A Value becomes a Value scaled by the filter's DC
// gain; a Latency or Response gains the filter's response; Unknown stays
// Unknown.
func (t Tag) Filter(latency float64, h Transfer) Tag {
	switch t.Kind {
	case TagValue:
		return Value(real(h(complex(1, 0))) * t.X)
	case TagLatency:
		return ResponseTag(h, t.Latency+latency)
	case TagResponse:
		prior := t.Transfer
		return ResponseTag(func(z complex128) complex128 {
			return h(z) * prior(z)
		}, t.Latency+latency)
	default:
		return Unknown
	}
}

// Distort erases any Value or Response information while preserving
// latency, modeling a nonlinear component: its output can no longer be
// described as a scaled constant or a linear transfer function, but the
// delay it introduces is still known.
func (t Tag) Distort(latency float64) Tag {
	switch t.Kind {
	case TagLatency:
		return LatencyTag(t.Latency + latency)
	case TagResponse:
		return LatencyTag(t.Latency + latency)
	default:
		return Unknown
	}
}

// Delay adds latency samples to t. A Response also has its transfer
// function multiplied by z^-latency, the response of a pure delay.
// Value stays Value (delaying a constant is still that constant).
func (t Tag) Delay(latency float64) Tag {
	switch t.Kind {
	case TagLatency:
		return LatencyTag(t.Latency + latency)
	case TagResponse:
		prior := t.Transfer
		return ResponseTag(func(z complex128) complex128 {
			return prior(z) * cmplx.Pow(z, complex(-latency, 0))
		}, t.Latency+latency)
	default:
		return t
	}
}

// Scale multiplies a Value or a Response's magnitude by factor, as a
// gain-by-scalar node's Route would.
func (t Tag) Scale(factor float64) Tag {
	switch t.Kind {
	case TagValue:
		return Value(t.X * factor)
	case TagResponse:
		prior := t.Transfer
		return ResponseTag(func(z complex128) complex128 {
			return prior(z) * complex(factor, 0)
		}, t.Latency)
	default:
		return t
	}
}

// CombineNonlinear merges two tags through a nonlinear combination (e.g.
// product of two non-constant signals), adding extra latency. The result
// can at best be a Latency: any Value/Response precision is lost.
func (t Tag) CombineNonlinear(other Tag, latency float64) Tag {
	a, b := t.Distort(0), other.Distort(0)
	switch {
	case a.Kind == TagLatency && b.Kind == TagLatency:
		return LatencyTag(min64(a.Latency, b.Latency) + latency)
	case a.Kind == TagLatency:
		return LatencyTag(a.Latency + latency)
	case b.Kind == TagLatency:
		return LatencyTag(b.Latency + latency)
	default:
		return Unknown
	}
}

// CombineLinear merges two tags through a linear combination (sum,
// difference, bus) given how to combine two constant values and how to
// combine two transfer functions, adding extra latency. Constant signals
// are treated as zero-response when combined with a genuine Response.
func (t Tag) CombineLinear(other Tag, latency float64, value func(x, y float64) float64, response func(x, y Transfer) Transfer) Tag {
	switch {
	case t.Kind == TagValue && other.Kind == TagValue:
		return Value(value(t.X, other.X))
	case t.Kind == TagLatency && other.Kind == TagLatency:
		return LatencyTag(min64(t.Latency, other.Latency) + latency)
	case t.Kind == TagResponse && other.Kind == TagResponse:
		return ResponseTag(response(t.Transfer, other.Transfer), min64(t.Latency, other.Latency)+latency)
	case t.Kind == TagResponse && other.Kind == TagValue:
		return ResponseTag(response(t.Transfer, zeroTransfer), t.Latency+latency)
	case t.Kind == TagValue && other.Kind == TagResponse:
		return ResponseTag(response(zeroTransfer, other.Transfer), other.Latency+latency)
	case t.Kind == TagResponse && other.Kind == TagLatency:
		return LatencyTag(min64(t.Latency, other.Latency) + latency)
	case t.Kind == TagLatency && other.Kind == TagResponse:
		return LatencyTag(min64(t.Latency, other.Latency) + latency)
	case t.Kind == TagLatency:
		return LatencyTag(t.Latency + latency)
	case t.Kind == TagResponse:
		return LatencyTag(t.Latency + latency)
	case other.Kind == TagLatency:
		return LatencyTag(other.Latency + latency)
	case other.Kind == TagResponse:
		return LatencyTag(other.Latency + latency)
	default:
		return Unknown
	}
}

// CombineMul merges two tags through multiplication, adding extra
// latency. Unlike CombineLinear, this is not a linear combination:
// Response*Value scales the response's magnitude by the constant
// (still a Response), but Response*Response cannot be expressed as a
// single transfer function from one shared input, so it degrades to a
// Latency carrying only the smaller of the two causal delays.
func (t Tag) CombineMul(other Tag, latency float64) Tag {
	switch {
	case t.Kind == TagValue && other.Kind == TagValue:
		return Value(t.X * other.X)
	case t.Kind == TagResponse && other.Kind == TagValue:
		prior := t.Transfer
		scale := complex(other.X, 0)
		return ResponseTag(func(z complex128) complex128 { return prior(z) * scale }, t.Latency+latency)
	case t.Kind == TagValue && other.Kind == TagResponse:
		prior := other.Transfer
		scale := complex(t.X, 0)
		return ResponseTag(func(z complex128) complex128 { return prior(z) * scale }, other.Latency+latency)
	case t.Kind == TagResponse && other.Kind == TagResponse:
		return LatencyTag(min64(t.Latency, other.Latency) + latency)
	default:
		return t.CombineNonlinear(other, latency)
	}
}

func zeroTransfer(complex128) complex128 { return 0 }

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// AtFrequency evaluates the complex gain of t at f Hz for the given
// sample rate, returning ok=false if t carries no Response.
func (t Tag) AtFrequency(f, sampleRate float64) (gain complex128, ok bool) {
	if t.Kind != TagResponse {
		return 0, false
	}
	omega := 2 * 3.141592653589793 * f / sampleRate
	return t.Transfer(cmplx.Exp(complex(0, omega))), true
}

// CausalLatency returns the causal latency carried by t, or ok=false if
// t is Unknown or a bare Value (no delay is defined for a constant).
func (t Tag) CausalLatency() (samples float64, ok bool) {
	switch t.Kind {
	case TagLatency, TagResponse:
		return t.Latency, true
	default:
		return 0, false
	}
}

// Routing captures the four reusable channel-routing patterns that a
// leaf node's Route typically reduces to, so concrete nodes rarely need
// to hand-roll tag algebra (grounded on the analogous helper in the
// original library's signal-flow module).
type Routing struct {
	Kind RoutingKind
	// Latency is the extra latency contributed by this node, used by
	// Arbitrary and Generator.
	Latency float64
}

// RoutingKind enumerates the reusable routing shapes.
type RoutingKind int

const (
	// RoutingArbitrary means every input nonlinearly influences every
	// output, with extra latency.
	RoutingArbitrary RoutingKind = iota
	// RoutingSplit repeats input channels across more output channels.
	RoutingSplit
	// RoutingJoin averages bundles of input channels down to fewer
	// outputs (the bundle sum scaled by outputs/inputs).
	RoutingJoin
	// RoutingGenerator means the node is a source: every output carries
	// Latency with no input dependency.
	RoutingGenerator
)

// Route applies the routing pattern to in, producing outputs tags.
func (r Routing) Route(in []Tag, outputs int) []Tag {
	out := make([]Tag, outputs)
	switch r.Kind {
	case RoutingGenerator:
		for i := range out {
			out[i] = LatencyTag(r.Latency)
		}
		return out
	}
	if len(in) == 0 {
		for i := range out {
			out[i] = Unknown
		}
		return out
	}
	switch r.Kind {
	case RoutingArbitrary:
		combo := in[0].Distort(r.Latency)
		for i := 1; i < len(in); i++ {
			combo = combo.CombineNonlinear(in[i], r.Latency)
		}
		for i := range out {
			out[i] = combo
		}
	case RoutingSplit:
		for i := range out {
			out[i] = in[i%len(in)]
		}
	case RoutingJoin:
		bundle := len(in) / outputs
		if bundle == 0 {
			bundle = 1
		}
		for i := range out {
			combo := in[i]
			for j := 1; j < bundle; j++ {
				idx := i + j*outputs
				if idx >= len(in) {
					break
				}
				combo = combo.CombineLinear(in[idx], 0,
					func(x, y float64) float64 { return x + y },
					func(x, y Transfer) Transfer {
						return func(z complex128) complex128 { return x(z) + y(z) }
					})
			}
			out[i] = combo.Scale(float64(outputs) / float64(len(in)))
		}
	}
	return out
}
