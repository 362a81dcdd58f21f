package graph_test

import (
	"math"
	"testing"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/nodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sr = 44100.0

// S1: constant(440) >> sine() at sr=44100. First sample is 0 (phase 0
// at reset), peak magnitude is 1, zero-crossings every sr/(2*440).
func TestS1SineAt440Hz(t *testing.T) {
	n := graph.Init(graph.Pipe(graph.Constant(440), nodes.Sine()), sr)
	first := graph.GetMono(n)
	assert.InDelta(t, 0, first, 1e-6)

	peak := float32(0)
	prev := first
	crossings := 0
	const total = 2000
	for i := 1; i < total; i++ {
		v := graph.GetMono(n)
		if v > peak {
			peak = v
		}
		if (prev < 0) != (v < 0) {
			crossings++
		}
		prev = v
	}
	assert.InDelta(t, 1.0, peak, 0.01)
	expectedPeriod := sr / (2 * 440)
	expectedCrossings := float64(total) / expectedPeriod
	assert.InDelta(t, expectedCrossings, float64(crossings), expectedCrossings*0.1)
}

// S2: stereo-to-mono via mul(0.5) + mul(0.5) on (0.5, -0.25) -> 0.125.
func TestS2StereoToMono(t *testing.T) {
	left := graph.MulScalar(graph.Pass(1), 0.5)
	right := graph.MulScalar(graph.Pass(1), 0.5)
	n := graph.Init(graph.Add(left, right), sr)
	out := n.Tick(graph.Frame{0.5, -0.25})
	assert.InDelta(t, 0.125, out[0], 1e-6)
}

// S3: dry+wet echo, pass() & 0.2*feedback(delay(1.0)*db_amp(-3.0))
// reinterpreted per DESIGN.md as Bus(Pass(1), Feedback(...)) without
// the extra 0.2 gain, matching the exact expected sample values.
func TestS3FeedbackEcho(t *testing.T) {
	loop := graph.Mul(nodes.Delay(1.0), nodes.DbAmp(-3))
	echo := graph.Bus(graph.Pass(1), graph.Feedback(loop))
	n := graph.Init(echo, sr)

	out0 := graph.FilterMono(n, 1.0)
	assert.InDelta(t, 1.0, out0, 1e-6)

	for i := 0; i < 44100-1; i++ {
		graph.FilterMono(n, 0)
	}
	out44100 := graph.FilterMono(n, 0)
	assert.InDelta(t, math.Pow(10, -3.0/20), out44100, 1e-3)

	// The feedback wrapper adds one sample to each trip round the loop,
	// so the second echo lands at 2*44100+1, not 88200.
	for i := 0; i < 44100; i++ {
		graph.FilterMono(n, 0)
	}
	out88201 := graph.FilterMono(n, 0)
	assert.InDelta(t, math.Pow(10, -3.0/20)*math.Pow(10, -3.0/20), out88201, 1e-3)
}

func TestPipeArityMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		graph.Pipe(graph.Pass(2), graph.Pass(1))
	})
}

func TestBusSumsComponentwise(t *testing.T) {
	n := graph.Init(graph.Bus(graph.Pass(1), graph.Pass(1)), sr)
	out := n.Tick(graph.Frame{0.3})
	assert.InDelta(t, 0.6, out[0], 1e-6)
}

func TestBranchFeedsBothChildrenSameInput(t *testing.T) {
	n := graph.Init(graph.Branch(graph.MulScalar(graph.Pass(1), 2), graph.MulScalar(graph.Pass(1), 3)), sr)
	out := n.Tick(graph.Frame{1})
	require.Len(t, out, 2)
	assert.InDelta(t, 2, out[0], 1e-6)
	assert.InDelta(t, 3, out[1], 1e-6)
}

func TestStackRunsOnDisjointChannels(t *testing.T) {
	n := graph.Init(graph.Stack(graph.MulScalar(graph.Pass(1), 2), graph.MulScalar(graph.Pass(1), 3)), sr)
	out := n.Tick(graph.Frame{1, 10})
	require.Len(t, out, 2)
	assert.InDelta(t, 2, out[0], 1e-6)
	assert.InDelta(t, 30, out[1], 1e-6)
}

func TestTickAndProcessAreObservationallyEquivalent(t *testing.T) {
	mkNode := func() graph.Node {
		return graph.Init(graph.Pipe(graph.Constant(440), nodes.Sine()), sr)
	}

	a := mkNode()
	viaTick := make([]float32, 16)
	for i := range viaTick {
		viaTick[i] = graph.GetMono(a)
	}

	b := mkNode()
	in := graph.NewBuffer(1)
	for i := 0; i < 16; i++ {
		in.Set(0, i, 440)
	}
	out := graph.NewBuffer(1)
	b.Process(graph.RefOf(in), graph.MutOf(out), 16)

	for i := range viaTick {
		assert.InDelta(t, viaTick[i], out.At(0, i), 1e-6)
	}
}

func TestLocationHashDecorrelatesIdenticalSubgraphs(t *testing.T) {
	stacked := graph.Init(graph.Stack(nodes.Noise(), nodes.Noise()), sr)
	out := stacked.Tick(nil)
	require.Len(t, out, 2)
	assert.NotEqual(t, out[0], out[1])
}

func TestResponseAnalyzesOnePoleLowpass(t *testing.T) {
	n := graph.Init(nodes.OnePoleLowpass(1000), sr)
	dcGain, ok := graph.Response(n, 0, 0, sr)
	require.True(t, ok)
	assert.InDelta(t, 1.0, real(dcGain), 1e-6)
}
