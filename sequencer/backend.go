package sequencer

import (
	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/internal/mailbox"
)

// Backend is the render-side half of a sequencer: allocation-free
// once running, advancing the shared clock by exactly the number of
// frames it renders each call so push_relative on the frontend always
// resolves against the stream position the backend has actually
// reached.
type Backend struct {
	box     *mailbox.Mailbox[snapshot]
	clock   *clock
	current *snapshot
	nOut    int
}

func newBackend(box *mailbox.Mailbox[snapshot], c *clock, nOut int) *Backend {
	return &Backend{box: box, clock: c, nOut: nOut}
}

func (b *Backend) Inputs() int  { return 0 }
func (b *Backend) Outputs() int { return b.nOut }

func (b *Backend) Reset() {
	b.pull()
	b.clock.samples.Store(0)
}

func (b *Backend) SetSampleRate(sr float64) {}
func (b *Backend) Allocate()                {}

func (b *Backend) pull() {
	if s, ok := b.box.Take(); ok {
		b.current = s
	}
}

func (b *Backend) Tick(input graph.Frame) graph.Frame {
	out := graph.NewFrame(b.nOut)
	scratch := graph.NewBuffer(maxInt(b.nOut, 1))
	b.Process(graph.RefOf(scratch), graph.MutOf(scratch), 1)
	for ch := range out {
		out[ch] = scratch.At(ch, 0)
	}
	return out
}

// Process renders n frames of every event overlapping
// [blockStart, blockStart+n), applies its fade envelope sample by
// sample, and commutatively sums into output - per spec.md §4.6's
// per-process algorithm. Completed events (end <= blockStart) are
// skipped without rendering, and never reappear once this snapshot's
// backend-local view has advanced past them.
func (b *Backend) Process(input graph.BufferRef, output graph.BufferMut, n int) {
	b.pull()
	for ch := 0; ch < b.nOut; ch++ {
		row := output.Channel(ch)[:n]
		for i := range row {
			row[i] = 0
		}
	}
	blockStart := b.clock.now()
	if b.current != nil {
		for i := range b.current.events {
			e := &b.current.events[i]
			if e.spec.done(blockStart) {
				continue
			}
			if e.spec.start >= blockStart+uint64(n) {
				break // ascending by start: nothing further overlaps this block
			}
			// Render only the event's own active sub-range of the block:
			// ticking it over frames before its start would silently
			// advance a stateful node's internal clock (e.g. an
			// oscillator's phase) before its audible window opens.
			startIndex := 0
			if e.spec.start > blockStart {
				startIndex = int(e.spec.start - blockStart)
			}
			endIndex := n
			if e.spec.end < blockStart+uint64(n) {
				endIndex = int(e.spec.end - blockStart)
			}
			active := endIndex - startIndex
			if active <= 0 {
				continue
			}
			for ch := 0; ch < e.spec.node.Inputs(); ch++ {
				row := e.input.Channel(ch)[:active]
				for f := range row {
					row[f] = 0
				}
			}
			e.spec.node.Process(graph.RefOf(e.input), graph.MutOf(e.output), active)
			for ch := 0; ch < b.nOut; ch++ {
				row := output.Channel(ch)[:n]
				src := e.output.Channel(ch)
				for f := 0; f < active; f++ {
					w := e.spec.envelope(blockStart + uint64(startIndex+f))
					if w == 0 {
						continue
					}
					row[startIndex+f] += src[f] * float32(w)
				}
			}
		}
	}
	b.clock.advance(n)
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
	for i := range b.current.events {
		if b.current.events[i].id == tok.Node {
			b.current.events[i].spec.node.Set(setting, rest)
			return
		}
	}
}

func (b *Backend) Ping(probe bool, hash uint64) uint64 {
	b.pull()
	if b.current == nil {
		return hash
	}
	for i := range b.current.events {
		hash = b.current.events[i].spec.node.Ping(probe, hash)
	}
	return hash
}

// Route reports Unknown: which events are active, and therefore which
// node's tags apply, changes every commit.
func (b *Backend) Route(in []graph.Tag) []graph.Tag {
	out := make([]graph.Tag, b.nOut)
	for i := range out {
		out[i] = graph.Unknown
	}
	return out
}

func (b *Backend) Latency() float64 { return 0 }
