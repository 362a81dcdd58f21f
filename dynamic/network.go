// Package dynamic implements the heap-allocated, mutable node graph
// (C5): a frontend for construction/mutation/query on any goroutine,
// and a render-side Backend connected to it through a single-slot
// mailbox (internal/mailbox).
package dynamic

import (
	"sort"
	"sync"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/internal/bufpool"
	"github.com/loomaudio/graph/internal/errs"
	"github.com/loomaudio/graph/internal/mailbox"
	"github.com/sirupsen/logrus"
)

// Option configures a Network at construction via the functional-option
// style.
type Option func(*Network) error

// WithLogger attaches a structured logger; node pushes, node removals
// and published commits are logged at Debug level. Without one, logging
// is a no-op.
func WithLogger(log logrus.FieldLogger) Option {
	return func(n *Network) error {
		n.log = log
		return nil
	}
}

// Network is the frontend of a dynamic graph: every method here is
// safe to call from any single goroutine (not concurrently with
// itself - callers serialize their own edits) but never touches the
// render path. Call Commit to publish pending edits to a Backend.
type Network struct {
	mu sync.Mutex

	nIn, nOut int
	nextID    uint64
	sampleRate float64

	nodes       map[uint64]graph.Node
	initialized map[uint64]bool
	edges       map[Endpoint]Endpoint
	pendingFade map[uint64]*pendingCrossfade

	box *mailbox.Mailbox[snapshot]
	err *NetError
	log logrus.FieldLogger
}

type pendingCrossfade struct {
	old       graph.Node
	new       graph.Node
	duration  float64
	curve     Curve
}

// New returns an empty network declaring nIn/nOut external channels.
func New(nIn, nOut int, opts ...Option) (*Network, error) {
	n := &Network{
		nIn: nIn, nOut: nOut,
		sampleRate:  graph.DefaultSampleRate,
		nodes:       make(map[uint64]graph.Node),
		initialized: make(map[uint64]bool),
		edges:       make(map[Endpoint]Endpoint),
		pendingFade: make(map[uint64]*pendingCrossfade),
		box:         &mailbox.Mailbox[snapshot]{},
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Backend returns the render-side counterpart of n, paired through n's
// mailbox. Call Commit at least once before the backend renders
// anything meaningful.
func (n *Network) Backend() *Backend {
	return newBackend(n.box, n.nIn, n.nOut)
}

// SetSampleRate records the sample rate applied to nodes as they are
// (re)initialized on commit.
func (n *Network) SetSampleRate(sr float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sampleRate = sr
	for id := range n.initialized {
		n.initialized[id] = false
	}
}

// Push inserts node, returning a stable id valid until Remove.
func (n *Network) Push(node graph.Node) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.nodes[id] = node
	n.initialized[id] = false
	if n.log != nil {
		n.log.WithField("node", id).Debug("dynamic: node pushed")
	}
	return id
}

// Remove deletes the node with id. Edges into it are dropped with it.
// Any edge sourced from it becomes dangling and the network enters the
// error state (ErrDanglingEdge); the error clears at the first Commit
// after the caller has reconnected those edges' destinations.
func (n *Network) Remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.nodes, id)
	delete(n.initialized, id)
	delete(n.pendingFade, id)
	for dst, src := range n.edges {
		if dst.kind == endpointNode && dst.node == id {
			delete(n.edges, dst)
			continue
		}
		if src.kind == endpointNode && src.node == id {
			n.err = newNetError(ErrDanglingEdge, "edge from removed node %d", id)
		}
	}
	if n.log != nil {
		n.log.WithField("node", id).Debug("dynamic: node removed")
	}
}

// Connect wires src into dst, replacing any existing edge into dst.
// Rejects (recording a NetError, not panicking) if either endpoint
// names a node or channel that does not exist.
func (n *Network) Connect(src, dst Endpoint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.validate(src, false); err != nil {
		n.err = err
		return err
	}
	if err := n.validate(dst, true); err != nil {
		n.err = err
		return err
	}
	n.edges[dst] = src
	return nil
}

func (n *Network) validate(e Endpoint, asDst bool) *NetError {
	switch e.kind {
	case endpointGraphInput:
		if asDst {
			return newNetError(ErrOutOfRange, "graph input %d cannot be a connect destination", e.channel)
		}
		if e.channel < 0 || e.channel >= n.nIn {
			return newNetError(ErrOutOfRange, "graph input %d out of range [0,%d)", e.channel, n.nIn)
		}
	case endpointGraphOutput:
		if !asDst {
			return newNetError(ErrOutOfRange, "graph output %d cannot be a connect source", e.channel)
		}
		if e.channel < 0 || e.channel >= n.nOut {
			return newNetError(ErrOutOfRange, "graph output %d out of range [0,%d)", e.channel, n.nOut)
		}
	case endpointNode:
		node, ok := n.nodes[e.node]
		if !ok {
			return newNetError(ErrDanglingEdge, "node %d does not exist", e.node)
		}
		arity := node.Outputs()
		if asDst {
			arity = node.Inputs()
		}
		if e.channel < 0 || e.channel >= arity {
			return newNetError(ErrOutOfRange, "node %d channel %d out of range [0,%d)", e.node, e.channel, arity)
		}
	}
	return nil
}

// Replace substitutes node for the one at id, which must share its
// input and output arity. Discontinuous: the swap takes effect on the
// next commit with no crossfade.
func (n *Network) Replace(id uint64, node graph.Node) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	old, ok := n.nodes[id]
	if !ok {
		err := newNetError(ErrDanglingEdge, "node %d does not exist", id)
		n.err = err
		return err
	}
	if old.Inputs() != node.Inputs() || old.Outputs() != node.Outputs() {
		err := newNetError(ErrArityMismatch, "replace: node %d is %d/%d, replacement is %d/%d",
			id, old.Inputs(), old.Outputs(), node.Inputs(), node.Outputs())
		n.err = err
		return err
	}
	n.nodes[id] = node
	n.initialized[id] = false
	return nil
}

// Crossfade logically replaces the node at id with node over duration
// seconds using curve, keeping the old node alive internally until the
// fade completes. Both must share the same arity as Replace requires.
func (n *Network) Crossfade(id uint64, curve Curve, duration float64, node graph.Node) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	old, ok := n.nodes[id]
	if !ok {
		err := newNetError(ErrDanglingEdge, "node %d does not exist", id)
		n.err = err
		return err
	}
	if old.Inputs() != node.Inputs() || old.Outputs() != node.Outputs() {
		err := newNetError(ErrArityMismatch, "crossfade: node %d is %d/%d, replacement is %d/%d",
			id, old.Inputs(), old.Outputs(), node.Inputs(), node.Outputs())
		n.err = err
		return err
	}
	if curve == nil {
		curve = EqualPowerCurve
	}
	n.pendingFade[id] = &pendingCrossfade{old: old, new: node, duration: duration, curve: curve}
	n.nodes[id] = node
	n.initialized[id] = false
	return nil
}

// Error returns the structural error recorded by the most recent edit
// or Commit that found one, or nil. Only the latest error is kept: a
// later failing edit replaces an earlier one, and each Commit replaces
// it with that commit's own result (nil when the commit found none).
func (n *Network) Error() *NetError {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

// Commit publishes all pending edits to the paired Backend atomically:
// it computes a topological order (best-effort if the edge set is
// cyclic, which is itself reported via NetError), initializes any
// node touched since the last commit, and posts the resulting snapshot
// through the mailbox.
func (n *Network) Commit() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	order, cyclic := n.topoOrder()

	var agg errs.List
	entries := make([]nodeEntry, len(order))
	byID := make(map[uint64]int, len(order))
	for i, id := range order {
		node := n.nodes[id]
		if !n.initialized[id] {
			hash := node.Ping(true, 0)
			node.Ping(false, hash)
			node.SetSampleRate(n.sampleRate)
			node.Allocate()
			node.Reset()
			n.initialized[id] = true
		}
		in := bufpool.Get(maxInt(node.Inputs(), 1), graph.BlockSize)
		out := bufpool.Get(maxInt(node.Outputs(), 1), graph.BlockSize)
		entries[i] = nodeEntry{
			id:     id,
			node:   node,
			input:  bufferFromPool(in),
			output: bufferFromPool(out),
		}
		byID[id] = i
	}

	cfs := make(map[uint64]*crossfadeState, len(n.pendingFade))
	for id, pf := range n.pendingFade {
		idx, ok := byID[id]
		if !ok {
			continue
		}
		oldOut := bufferFromPool(bufpool.Get(maxInt(pf.old.Outputs(), 1), graph.BlockSize))
		cfs[id] = &crossfadeState{
			// old shares the new entry's input buffer: Crossfade requires
			// matching arity, and both read the same edges (the id is
			// unchanged across the swap), so the inputs already gathered
			// for the new node apply unchanged to the old one.
			old:          nodeEntry{id: id, node: pf.old, input: entries[idx].input, output: oldOut},
			new:          entries[idx],
			totalSamples: int(pf.duration * n.sampleRate),
			curve:        pf.curve,
		}
	}

	edgesCopy := make(map[Endpoint]Endpoint, len(n.edges))
	for dst, src := range n.edges {
		if dst.kind == endpointNode {
			if _, ok := n.nodes[dst.node]; !ok {
				agg = agg.Add(newNetError(ErrDanglingEdge, "edge into missing node %d", dst.node))
				continue
			}
		}
		if src.kind == endpointNode {
			if _, ok := n.nodes[src.node]; !ok {
				agg = agg.Add(newNetError(ErrDanglingEdge, "edge from missing node %d", src.node))
				continue
			}
		}
		edgesCopy[dst] = src
	}

	s := &snapshot{
		nIn: n.nIn, nOut: n.nOut,
		order: entries, byID: byID, edges: edgesCopy,
		cyclic: cyclic, crossfade: cfs,
	}
	if cyclic {
		s.err = newNetError(ErrCycle, "edge set contains a cycle outside an explicit feedback wrapper")
	}
	if s.err == nil && len(agg) > 0 {
		if first, ok := agg[0].(*NetError); ok {
			s.err = first
		}
	}
	n.err = s.err

	n.box.Post(s)
	if n.log != nil {
		n.log.WithField("nodes", len(entries)).Debug("dynamic: commit published")
	}
	return s.err.asError()
}

func bufferFromPool(b *bufpool.Buffer) *graph.Buffer {
	return graph.BufferFromChannels(b.Data)
}

// topoOrder computes a best-effort topological order of n.nodes over
// n.edges via Kahn's algorithm. cyclic reports whether any node could
// not be ordered (forming or belonging to a cycle); those nodes are
// appended in ascending id order and rendered using their
// previous block's state, one block behind, per §4.4.
func (n *Network) topoOrder() (order []uint64, cyclic bool) {
	indegree := make(map[uint64]int, len(n.nodes))
	deps := make(map[uint64]map[uint64]bool, len(n.nodes))
	for id := range n.nodes {
		indegree[id] = 0
		deps[id] = map[uint64]bool{}
	}
	for dst, src := range n.edges {
		if dst.kind == endpointNode && src.kind == endpointNode {
			if _, ok := n.nodes[dst.node]; !ok {
				continue
			}
			if _, ok := n.nodes[src.node]; !ok {
				continue
			}
			if dst.node == src.node {
				continue
			}
			if !deps[dst.node][src.node] {
				deps[dst.node][src.node] = true
				indegree[dst.node]++
			}
		}
	}

	var ready []uint64
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	visited := make(map[uint64]bool, len(n.nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		id := ready[0]
		ready = ready[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)
		for other, ds := range deps {
			if visited[other] {
				continue
			}
			if ds[id] {
				delete(ds, id)
				indegree[other]--
				if indegree[other] == 0 {
					ready = append(ready, other)
				}
			}
		}
	}
	if len(order) != len(n.nodes) {
		cyclic = true
		var remaining []uint64
		for id := range n.nodes {
			if !visited[id] {
				remaining = append(remaining, id)
			}
		}
		sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })
		order = append(order, remaining...)
	}
	return order, cyclic
}

func (e *NetError) asError() error {
	if e == nil {
		return nil
	}
	return e
}
