package graph

// This file implements the unary combinators negate and thru, plus the
// shared processViaTick and routeLatency helpers; the arithmetic
// combinators live in arithmetic.go and pipe, bus, branch and stack in
// structural.go. Each combinator is itself a
// Node wrapping one or two children; constructors consume their operands
// (never retain a reference usable by the caller again), which is what
// keeps a graph built this way a tree - the only way back to a cycle is
// the explicit Feedback wrapper in feedback.go.

// processViaTick is the shared Process fallback for nodes that only
// implement Tick: it calls n.Tick once per frame, copying each input
// frame out of input and each output frame into output.
func processViaTick(n Node, input BufferRef, output BufferMut, size int) {
	in := NewFrame(n.Inputs())
	for i := 0; i < size; i++ {
		if len(in) > 0 {
			for ch := range in {
				in[ch] = input.At(ch, i)
			}
		}
		out := n.Tick(in)
		for ch := range out {
			output.Set(ch, i, out[ch])
		}
	}
}

// --- negate: -A ---

type negateNode struct{ x Node }

// Negate returns a node that inverts the sign of every output of x.
func Negate(x Node) Node { return &negateNode{x: x} }

func (n *negateNode) Inputs() int  { return n.x.Inputs() }
func (n *negateNode) Outputs() int { return n.x.Outputs() }
func (n *negateNode) Reset()       { n.x.Reset() }
func (n *negateNode) SetSampleRate(sr float64) { n.x.SetSampleRate(sr) }
func (n *negateNode) Allocate()    { n.x.Allocate() }

func (n *negateNode) Tick(input Frame) Frame {
	out := n.x.Tick(input)
	for i := range out {
		out[i] = -out[i]
	}
	return out
}

func (n *negateNode) Process(input BufferRef, output BufferMut, size int) {
	n.x.Process(input, output, size)
	for ch := 0; ch < output.Channels(); ch++ {
		row := output.Channel(ch)[:size]
		for i := range row {
			row[i] = -row[i]
		}
	}
}

func (n *negateNode) Set(s Setting, addr Address)   { n.x.Set(s, addr) }
func (n *negateNode) Ping(probe bool, hash uint64) uint64 {
	return n.x.Ping(probe, childHash(hash, kindNegate, 0))
}
func (n *negateNode) Route(in []Tag) []Tag {
	out := n.x.Route(in)
	for i := range out {
		out[i] = out[i].Scale(-1)
	}
	return out
}
func (n *negateNode) Latency() float64 { return routeLatency(n) }

// --- thru: !A ---

type thruNode struct{ x Node }

// Thru re-exposes x's inputs: it outputs min(Inputs(x), Outputs(x)) of
// x's own outputs, then passes any remaining inputs through unchanged.
// Extra outputs of x beyond its own input count are discarded. Its
// arity is I(A) in, I(A) out.
func Thru(x Node) Node { return &thruNode{x: x} }

func (n *thruNode) Inputs() int  { return n.x.Inputs() }
func (n *thruNode) Outputs() int { return n.x.Inputs() }
func (n *thruNode) Reset()       { n.x.Reset() }
func (n *thruNode) SetSampleRate(sr float64) { n.x.SetSampleRate(sr) }
func (n *thruNode) Allocate()    { n.x.Allocate() }

func (n *thruNode) Tick(input Frame) Frame {
	inner := n.x.Tick(input)
	out := NewFrame(n.Outputs())
	k := min(len(inner), n.x.Outputs())
	copy(out, inner[:k])
	for i := k; i < len(out); i++ {
		out[i] = input[i]
	}
	return out
}

func (n *thruNode) Process(input BufferRef, output BufferMut, size int) {
	processViaTick(n, input, output, size)
}

func (n *thruNode) Set(s Setting, addr Address) { n.x.Set(s, addr) }
func (n *thruNode) Ping(probe bool, hash uint64) uint64 {
	return n.x.Ping(probe, childHash(hash, kindThru, 0))
}
func (n *thruNode) Route(in []Tag) []Tag {
	inner := n.x.Route(in)
	out := make([]Tag, n.Outputs())
	k := min(len(inner), n.x.Outputs())
	copy(out, inner[:k])
	for i := k; i < len(out); i++ {
		out[i] = in[i]
	}
	return out
}
func (n *thruNode) Latency() float64 { return routeLatency(n) }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// routeLatency is the shared Latency() implementation: the minimum
// analyzable causal latency across a node's outputs, fed by Identity
// input tags.
func routeLatency(n Node) float64 {
	in := make([]Tag, n.Inputs())
	for i := range in {
		in[i] = Identity
	}
	out := n.Route(in)
	best := 0.0
	found := false
	for _, t := range out {
		if d, ok := t.CausalLatency(); ok {
			if !found || d < best {
				best, found = d, true
			}
		}
	}
	return best
}
