package nodes_test

import (
	"math"
	"testing"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/nodes"
	"github.com/loomaudio/graph/wave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sr = 44100.0

func TestDelayEmitsZeroThenInput(t *testing.T) {
	d := graph.Init(nodes.Delay(2/sr), sr)
	assert.Equal(t, float32(0), graph.FilterMono(d, 1))
	assert.Equal(t, float32(0), graph.FilterMono(d, 2))
	assert.Equal(t, float32(1), graph.FilterMono(d, 3))
	assert.Equal(t, float32(2), graph.FilterMono(d, 0))
}

func TestDelayRejectsNegativeTime(t *testing.T) {
	assert.Panics(t, func() { nodes.Delay(-1) })
}

func TestOnePoleLowpassSettlesToDCInput(t *testing.T) {
	f := graph.Init(nodes.OnePoleLowpass(200), sr)
	var out float32
	for i := 0; i < 10000; i++ {
		out = graph.FilterMono(f, 1)
	}
	assert.InDelta(t, 1.0, out, 1e-3)
}

func TestOnePoleLowpassDCGainIsUnity(t *testing.T) {
	f := graph.Init(nodes.OnePoleLowpass(500), sr)
	gain, ok := graph.Response(f, 0, 0, sr)
	require.True(t, ok)
	assert.InDelta(t, 1.0, real(gain), 1e-6)
}

func TestNoiseStaysWithinUnitRange(t *testing.T) {
	n := graph.Init(nodes.Noise(), sr)
	for i := 0; i < 1000; i++ {
		v := graph.GetMono(n)
		assert.LessOrEqual(t, v, float32(1))
		assert.GreaterOrEqual(t, v, float32(-1))
	}
}

func TestDbAmpUnityAtZeroDB(t *testing.T) {
	n := graph.Init(nodes.DbAmp(0), sr)
	assert.InDelta(t, 1.0, graph.GetMono(n), 1e-6)
}

func TestDbAmpMatchesLogFormula(t *testing.T) {
	n := graph.Init(nodes.DbAmp(-6), sr)
	assert.InDelta(t, math.Pow(10, -6.0/20), graph.GetMono(n), 1e-6)
}

func TestWavePlayerStreamsThenSilence(t *testing.T) {
	w := wave.New([][]float32{{1, 2, 3, 4}}, sr)
	p := graph.Init(nodes.WavePlayer(w, 0, 0, 4, 0, false), sr)
	assert.Equal(t, float32(1), graph.GetMono(p))
	assert.Equal(t, float32(2), graph.GetMono(p))
	assert.Equal(t, float32(3), graph.GetMono(p))
	assert.Equal(t, float32(4), graph.GetMono(p))
	assert.Equal(t, float32(0), graph.GetMono(p))
}

func TestWavePlayerLoopsToLoopPoint(t *testing.T) {
	w := wave.New([][]float32{{1, 2, 3, 4}}, sr)
	p := graph.Init(nodes.WavePlayer(w, 0, 0, 4, 1, true), sr)
	for i := 0; i < 4; i++ {
		graph.GetMono(p)
	}
	assert.Equal(t, float32(2), graph.GetMono(p))
}

func TestWavePlayerRejectsChannelOutOfRange(t *testing.T) {
	w := wave.New([][]float32{{1, 2}}, sr)
	assert.Panics(t, func() { nodes.WavePlayer(w, 1, 0, 2, 0, false) })
}

func TestSineProducesZeroFirstSample(t *testing.T) {
	n := graph.Init(graph.Pipe(graph.Constant(1000), nodes.Sine()), sr)
	assert.InDelta(t, 0, graph.GetMono(n), 1e-6)
}
