package dynamic

import graph "github.com/loomaudio/graph"

// endpointKind distinguishes a connection endpoint that names a node's
// channel from one naming a graph boundary channel.
type endpointKind int

const (
	endpointNode endpointKind = iota
	endpointGraphInput
	endpointGraphOutput
)

// Endpoint is one side of a connect() call: either (nodeID, channel) or
// a graph input/output index.
type Endpoint struct {
	kind    endpointKind
	node    uint64
	channel int
}

// NodeEndpoint addresses channel ch of the node with the given id.
func NodeEndpoint(id uint64, ch int) Endpoint {
	return Endpoint{kind: endpointNode, node: id, channel: ch}
}

// GraphInput addresses channel ch of the network's own input.
func GraphInput(ch int) Endpoint { return Endpoint{kind: endpointGraphInput, channel: ch} }

// GraphOutput addresses channel ch of the network's own output.
func GraphOutput(ch int) Endpoint { return Endpoint{kind: endpointGraphOutput, channel: ch} }

// crossfadeState advances an envelope mixing an old node's output out
// in favor of a new node's output in, over totalSamples, using curve to
// shape the transition.
type crossfadeState struct {
	old, new     nodeEntry
	elapsed      int
	totalSamples int
	curve        Curve
}

func (c *crossfadeState) done() bool { return c.elapsed >= c.totalSamples }

// nodeEntry is one node as tracked inside a committed snapshot: the
// node itself plus its preallocated scratch output buffer.
type nodeEntry struct {
	id     uint64
	node   graph.Node
	input  *graph.Buffer
	output *graph.Buffer
}

// snapshot is the immutable, fully-resolved graph state published from
// frontend to backend by Commit. Rebuilt wholesale on every commit;
// never mutated once posted to the mailbox.
type snapshot struct {
	nIn, nOut int
	order     []nodeEntry          // nodes in topological order (or best-effort if cyclic)
	byID      map[uint64]int       // node id -> index into order
	edges     map[Endpoint]Endpoint // dst -> src
	cyclic    bool
	crossfade map[uint64]*crossfadeState // keyed by the node id under crossfade
	err       *NetError
}

