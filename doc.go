/*
Package graph builds and renders composable audio signal-processing
networks.

Concept

A Node is the only abstraction: a processing element with a fixed number
of input and output channels, internal state, and a handful of lifecycle
entry points (Reset, SetSampleRate, Allocate, Tick, Process, Set, Ping,
Route). Everything else in this package - generators, filters, sinks,
the combinators - is a Node.

Networks are built by combining nodes with a small algebra:

	Negate, Thru        unary
	Mul, Add, Sub       channelwise arithmetic (node-node or node-scalar)
	Pipe                series composition, A's outputs feed B's inputs
	Bus                 parallel composition, outputs summed
	Branch              parallel composition, outputs concatenated
	Stack               parallel composition, disjoint in and out
	Feedback            wraps a subgraph with one sample of delayed feedback

Combinators consume their operands, so a graph built this way is
necessarily a tree: structural cycles are only possible through Feedback,
which introduces exactly one sample of delay and is the sole escape hatch.

Arities are checked when a combinator is constructed rather than at a
compile-time type level - the nearest Go equivalent available without
const generics (see DESIGN.md, "type-level channel arities"). A mismatch
panics immediately, the same way a bad pattern panics out of
regexp.MustCompile.

Rendering

The host drives the root node with Process (a block of up to BlockSize
frames) or Tick (a single frame). Process and Tick must always agree, and
splitting one Process call into several smaller ones covering the same
input must produce the same samples - no node may depend on block
boundaries for correctness.

Analysis

Every node exposes Route, which propagates a Tag (constant value,
latency, or linear transfer function) per channel without producing any
audio. Composing Tags answers "what is the frequency response here" and
"how much causal latency does this path introduce" for the linear parts
of a graph, without ever calling Process.

Beyond the static tree

Package dynamic offers the same operator algebra over a heap-allocated,
mutable graph with stable node identities, suited to live-editable signal
chains; package sequencer offers time-scheduled mixing of nodes with
fades. Both split into a mutation-capable frontend and a real-time-safe
backend joined by a lock-free single-slot mailbox (package
internal/mailbox).

Non-goals

This package does not ship a catalog of DSP algorithms, audio file
codecs, a CLI, or device I/O - those are external collaborators that
happen to implement Node. Package nodes contains a handful of minimal
leaf components (sine, delay, one-pole lowpass, noise, a decibel gain,
a wave player) just deep enough to exercise every path through the core.
*/
package graph
