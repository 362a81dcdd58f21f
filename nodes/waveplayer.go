package nodes

import (
	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/wave"
)

// wavePlayer streams one channel of a shared, pre-loaded wave from
// startPoint to endPoint, looping to loopPoint if set, else emitting
// silence past the end.
//
// Grounded on original_source/src/wave.rs's WavePlayer: a zero-input
// generator over an Arc<Wave>, mirrored here by *wave.Shared.
type wavePlayer struct {
	w          *wave.Shared
	channel    int
	index      int
	startPoint int
	endPoint   int
	loopPoint  int
	hasLoop    bool
}

// WavePlayer returns a zero-input, one-output generator streaming
// channel ch of w from startPoint to endPoint (samples), looping to
// loopPoint if hasLoop.
func WavePlayer(w *wave.Shared, ch, startPoint, endPoint, loopPoint int, hasLoop bool) graph.Node {
	if ch < 0 || ch >= w.Channels() {
		panic("nodes: wave_player: channel out of range")
	}
	if endPoint > w.Length() {
		panic("nodes: wave_player: end point beyond wave length")
	}
	return &wavePlayer{
		w: w, channel: ch,
		index: startPoint, startPoint: startPoint, endPoint: endPoint,
		loopPoint: loopPoint, hasLoop: hasLoop,
	}
}

func (p *wavePlayer) Inputs() int  { return 0 }
func (p *wavePlayer) Outputs() int { return 1 }

func (p *wavePlayer) Reset() { p.index = p.startPoint }

func (p *wavePlayer) SetSampleRate(sr float64) {}
func (p *wavePlayer) Allocate()                {}

func (p *wavePlayer) Tick(input graph.Frame) graph.Frame {
	if p.index >= p.endPoint {
		return graph.Frame{0}
	}
	v := p.w.At(p.channel, p.index)
	p.index++
	if p.index == p.endPoint && p.hasLoop {
		p.index = p.loopPoint
	}
	return graph.Frame{v}
}

func (p *wavePlayer) Process(input graph.BufferRef, output graph.BufferMut, size int) {
	row := output.Channel(0)
	for i := 0; i < size; i++ {
		row[i] = p.Tick(nil)[0]
	}
}

func (p *wavePlayer) Set(setting graph.Setting, addr graph.Address) {}

func (p *wavePlayer) Ping(probe bool, hash uint64) uint64 { return hash }

func (p *wavePlayer) Route(in []graph.Tag) []graph.Tag {
	return graph.Routing{Kind: graph.RoutingGenerator}.Route(in, 1)
}

func (p *wavePlayer) Latency() float64 { return 0 }
