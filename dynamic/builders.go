package dynamic

import graph "github.com/loomaudio/graph"

// wrap pushes node into a fresh network sized to its own arity, wires
// every graph input/output straight through to it, and commits. It is
// the shared plumbing behind every "combinator has a dynamic form"
// builder below: the static combinators in combinator.go/arithmetic.go/
// structural.go already embody the composition rule, so the dynamic
// form's job is only to make that composition mutable/replaceable at
// commit granularity, not to re-derive the composition itself.
// An arity mismatch between the operands panics inside the static
// combinator before wrap runs, so no NetError is returned for it.
func wrap(node graph.Node) (*Network, error) {
	net, err := New(node.Inputs(), node.Outputs())
	if err != nil {
		return nil, err
	}
	id := net.Push(node)
	for ch := 0; ch < node.Inputs(); ch++ {
		if err := net.Connect(GraphInput(ch), NodeEndpoint(id, ch)); err != nil {
			return net, err
		}
	}
	for ch := 0; ch < node.Outputs(); ch++ {
		if err := net.Connect(NodeEndpoint(id, ch), GraphOutput(ch)); err != nil {
			return net, err
		}
	}
	if err := net.Commit(); err != nil {
		return net, err
	}
	return net, nil
}

// Pipe is the dynamic form of graph.Pipe: a network of one node (A
// piped into B) whose internals can later be Replace'd or Crossfade'd
// without the caller re-synthesizing the composition.
func Pipe(a, b graph.Node) (*Network, error) { return wrap(graph.Pipe(a, b)) }

// Bus is the dynamic form of graph.Bus (componentwise sum of two
// equal-arity nodes).
func Bus(a, b graph.Node) (*Network, error) { return wrap(graph.Bus(a, b)) }

// Branch is the dynamic form of graph.Branch (one input feeds both A
// and B, outputs concatenate).
func Branch(a, b graph.Node) (*Network, error) { return wrap(graph.Branch(a, b)) }

// Stack is the dynamic form of graph.Stack (inputs and outputs both
// concatenate, A and B run on disjoint channels).
func Stack(a, b graph.Node) (*Network, error) { return wrap(graph.Stack(a, b)) }

// Thru is the dynamic form of graph.Thru (as many outputs as A has
// inputs: A's first outputs, then A's remaining inputs passed through).
func Thru(a graph.Node) (*Network, error) { return wrap(graph.Thru(a)) }

// Negate is the dynamic form of graph.Negate.
func Negate(a graph.Node) (*Network, error) { return wrap(graph.Negate(a)) }

// Feedback is the dynamic form of graph.Feedback: x's output feeds
// back into its own input one block... no, one sample later, exactly
// as the static combinator does; the dynamic layer adds nothing here
// beyond making x itself replaceable/crossfadeable via its own id if
// the caller pushes it directly instead of going through this helper.
func Feedback(x graph.Node) (*Network, error) { return wrap(graph.Feedback(x)) }

// Add, Mul and Sub are the dynamic forms of the pointwise arithmetic
// combinators.
func Add(a, b graph.Node) (*Network, error) { return wrap(graph.Add(a, b)) }
func Mul(a, b graph.Node) (*Network, error) { return wrap(graph.Mul(a, b)) }
func Sub(a, b graph.Node) (*Network, error) { return wrap(graph.Sub(a, b)) }
