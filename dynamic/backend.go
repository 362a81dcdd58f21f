package dynamic

import (
	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/internal/mailbox"
)

// Backend is the render-side half of a dynamic network: allocation-
// free once running, never blocking, swapping to a newly committed
// snapshot only at a process call boundary (§4.5). It implements
// graph.Node so a dynamic network can be embedded anywhere a static
// Node is expected.
type Backend struct {
	box     *mailbox.Mailbox[snapshot]
	current *snapshot
	nIn     int
	nOut    int
}

func newBackend(box *mailbox.Mailbox[snapshot], nIn, nOut int) *Backend {
	return &Backend{box: box, nIn: nIn, nOut: nOut}
}

func (b *Backend) Inputs() int  { return b.nIn }
func (b *Backend) Outputs() int { return b.nOut }

func (b *Backend) Reset() {
	b.pull()
	if b.current == nil {
		return
	}
	for i := range b.current.order {
		b.current.order[i].node.Reset()
	}
}

func (b *Backend) SetSampleRate(sr float64) {
	b.pull()
	if b.current == nil {
		return
	}
	for i := range b.current.order {
		b.current.order[i].node.SetSampleRate(sr)
	}
}

func (b *Backend) Allocate() {
	b.pull()
	if b.current == nil {
		return
	}
	for i := range b.current.order {
		b.current.order[i].node.Allocate()
	}
}

// pull swaps in the latest committed snapshot, if one is pending. It
// never blocks: Take is a non-blocking atomic swap.
func (b *Backend) pull() {
	if s, ok := b.box.Take(); ok {
		b.current = s
	}
}

// Error returns the structural error recorded by the newest commit, if
// any: a posted snapshot the backend has not yet taken is consulted
// first, then the one it is rendering.
func (b *Backend) Error() *NetError {
	if s, ok := b.box.Peek(); ok {
		return s.err
	}
	if b.current != nil {
		return b.current.err
	}
	return nil
}

func (b *Backend) Tick(input graph.Frame) graph.Frame {
	out := graph.NewFrame(b.nOut)
	in := graph.NewBuffer(maxInt(b.nIn, 1))
	for ch, v := range input {
		in.Set(ch, 0, v)
	}
	scratch := graph.NewBuffer(maxInt(b.nOut, 1))
	b.Process(graph.RefOf(in), graph.MutOf(scratch), 1)
	for ch := range out {
		out[ch] = scratch.At(ch, 0)
	}
	return out
}

func (b *Backend) Process(input graph.BufferRef, output graph.BufferMut, n int) {
	b.pull()
	for ch := 0; ch < b.nOut; ch++ {
		row := output.Channel(ch)[:n]
		for i := range row {
			row[i] = 0
		}
	}
	if b.current == nil {
		return
	}
	s := b.current

	for idx := range s.order {
		entry := &s.order[idx]
		inputs := entry.node.Inputs()
		for ch := 0; ch < inputs; ch++ {
			dst := NodeEndpoint(entry.id, ch)
			row := entry.input.Channel(ch)[:n]
			src, ok := s.edges[dst]
			if !ok {
				for i := range row {
					row[i] = 0
				}
				continue
			}
			switch src.kind {
			case endpointGraphInput:
				copy(row, input.Channel(src.channel)[:n])
			case endpointNode:
				if si, ok := s.byID[src.node]; ok {
					copy(row, s.order[si].output.Channel(src.channel)[:n])
				} else {
					for i := range row {
						row[i] = 0
					}
				}
			default:
				for i := range row {
					row[i] = 0
				}
			}
		}
		entry.node.Process(graph.RefOf(entry.input), graph.MutOf(entry.output), n)

		if cf, ok := s.crossfade[entry.id]; ok && !cf.done() {
			cf.old.node.Process(graph.RefOf(cf.old.input), graph.MutOf(cf.old.output), n)
		}
	}

	b.advanceCrossfades(s, n)

	for ch := 0; ch < b.nOut; ch++ {
		dst := GraphOutput(ch)
		src, ok := s.edges[dst]
		if !ok {
			continue
		}
		row := output.Channel(ch)[:n]
		switch src.kind {
		case endpointGraphInput:
			copy(row, input.Channel(src.channel)[:n])
		case endpointNode:
			if si, ok := s.byID[src.node]; ok {
				copy(row, s.order[si].output.Channel(src.channel)[:n])
			}
		}
	}
}

// advanceCrossfades mixes each active crossfade's old/new node output
// directly into the new node's published output slot, sample-accurately,
// so downstream consumers of that node id see one continuous signal.
func (b *Backend) advanceCrossfades(s *snapshot, n int) {
	for id, cf := range s.crossfade {
		newIdx, ok := s.byID[id]
		if !ok {
			continue
		}
		out := s.order[newIdx].output
		for ch := 0; ch < out.Channels(); ch++ {
			newRow := cf.new.output.Channel(ch)
			oldRow := cf.old.output.Channel(ch)
			dstRow := out.Channel(ch)
			for i := 0; i < n; i++ {
				t := float64(cf.elapsed+i) / float64(cf.totalSamples)
				if t > 1 {
					t = 1
				}
				w := cf.curve(t)
				dstRow[i] = float32(float64(newRow[i])*w + float64(oldRow[i])*(1-w))
			}
		}
		cf.elapsed += n
	}
}

func (b *Backend) Set(setting graph.Setting, addr graph.Address) {
	b.pull()
	if b.current == nil {
		return
	}
	tok, rest, ok := addr.Head()
	if !ok || tok.Kind != graph.ByNode {
		return
	}
	if idx, ok := b.current.byID[tok.Node]; ok {
		b.current.order[idx].node.Set(setting, rest)
	}
}

func (b *Backend) Ping(probe bool, hash uint64) uint64 {
	b.pull()
	if b.current == nil {
		return hash
	}
	for i := range b.current.order {
		hash = b.current.order[i].node.Ping(probe, hash)
	}
	return hash
}

// Route reports Unknown for every output: a dynamic network's topology
// can change after any commit, so no static analysis of it survives
// past the commit that invalidated it.
func (b *Backend) Route(in []graph.Tag) []graph.Tag {
	out := make([]graph.Tag, b.nOut)
	for i := range out {
		out[i] = graph.Unknown
	}
	return out
}

func (b *Backend) Latency() float64 { return 0 }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
