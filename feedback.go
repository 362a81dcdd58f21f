package graph

import "github.com/loomaudio/graph/internal/denormal"

// Feedback is the sole escape hatch from the tree-shaped combinator
// algebra into a cycle (§4.2). It does not insert an explicit delay
// node; the one-sample loop delay falls out of state: on tick n, x is
// fed external input n plus x's own output from tick n-1. The wrapped
// node must have equal input and output arity, since its own output is
// what gets mixed back into its own next input.
type feedbackNode struct {
	x     Node
	value Frame
}

// Feedback wraps x so that its output is mixed back into its input one
// sample later. x must have Inputs() == Outputs().
func Feedback(x Node) Node {
	if x.Inputs() != x.Outputs() {
		arityMismatch("feedback", x.Inputs(), x.Outputs())
	}
	return &feedbackNode{x: x, value: NewFrame(x.Outputs())}
}

func (n *feedbackNode) Inputs() int  { return n.x.Inputs() }
func (n *feedbackNode) Outputs() int { return n.x.Outputs() }

func (n *feedbackNode) Reset() {
	n.x.Reset()
	for i := range n.value {
		n.value[i] = 0
	}
}

func (n *feedbackNode) SetSampleRate(sr float64) { n.x.SetSampleRate(sr) }
func (n *feedbackNode) Allocate()                { n.x.Allocate() }

func (n *feedbackNode) Tick(input Frame) Frame {
	mixed := NewFrame(len(input))
	for i := range mixed {
		mixed[i] = input[i] + n.value[i]
	}
	out := n.x.Tick(mixed)
	for i := range out {
		n.value[i] = denormal.Flush32(out[i])
	}
	return out
}

// Process ticks sample by sample: feedback is an inherently sequential
// dependency chain and cannot be vectorized across a block, but it
// still honors the block-split-equivalence invariant (§8) because each
// Tick call is identical to calling Process with size 1.
func (n *feedbackNode) Process(input BufferRef, output BufferMut, size int) {
	processViaTick(n, input, output, size)
}

func (n *feedbackNode) Set(s Setting, addr Address) { n.x.Set(s, addr) }

func (n *feedbackNode) Ping(probe bool, hash uint64) uint64 {
	return n.x.Ping(probe, childHash(hash, kindFeedback, 0))
}

// Route does not attempt to analytically solve the loop: a feedback
// path is generally an IIR system whose transfer function this engine
// does not derive. Each output simply carries its corresponding input
// tag, distorted (marked nonlinear, zero added latency) rather than
// passed through as Identity.
func (n *feedbackNode) Route(in []Tag) []Tag {
	out := make([]Tag, len(in))
	for i, t := range in {
		out[i] = t.Distort(0)
	}
	return out
}

func (n *feedbackNode) Latency() float64 { return 0 }
