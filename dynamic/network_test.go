package dynamic_test

import (
	"testing"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/dynamic"
	"github.com/loomaudio/graph/nodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, b *dynamic.Backend, n int, in [][]float32) [][]float32 {
	t.Helper()
	inBuf := graph.NewBuffer(maxInt(len(in), 1))
	for ch, row := range in {
		for i, v := range row {
			inBuf.Set(ch, i, v)
		}
	}
	outBuf := graph.NewBuffer(maxInt(b.Outputs(), 1))
	b.Process(graph.RefOf(inBuf), graph.MutOf(outBuf), n)
	out := make([][]float32, b.Outputs())
	for ch := range out {
		out[ch] = append([]float32{}, outBuf.Channel(ch)[:n]...)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func TestNewGraphUnconnectedOutputIsZero(t *testing.T) {
	net, err := dynamic.New(1, 2)
	require.NoError(t, err)
	require.NoError(t, net.Commit())

	out := render(t, net.Backend(), 4, [][]float32{{1, 1, 1, 1}})
	for ch := range out {
		for _, v := range out[ch] {
			assert.Equal(t, float32(0), v)
		}
	}
}

func TestPushConnectCommitRenders(t *testing.T) {
	net, err := dynamic.New(1, 1)
	require.NoError(t, err)
	const sr = 48000.0
	net.SetSampleRate(sr)

	id := net.Push(nodes.Delay(2 / sr))
	require.NoError(t, net.Connect(dynamic.GraphInput(0), dynamic.NodeEndpoint(id, 0)))
	require.NoError(t, net.Connect(dynamic.NodeEndpoint(id, 0), dynamic.GraphOutput(0)))
	require.NoError(t, net.Commit())

	out := render(t, net.Backend(), 6, [][]float32{{1, 2, 3, 4, 5, 6}})
	assert.Equal(t, []float32{0, 0, 1, 2, 3, 4}, out[0])
}

func TestRemoveLeavesDanglingEdgeError(t *testing.T) {
	net, err := dynamic.New(1, 1)
	require.NoError(t, err)
	id := net.Push(nodes.Delay(1))
	require.NoError(t, net.Connect(dynamic.GraphInput(0), dynamic.NodeEndpoint(id, 0)))
	require.NoError(t, net.Connect(dynamic.NodeEndpoint(id, 0), dynamic.GraphOutput(0)))
	require.NoError(t, net.Commit())

	net.Remove(id)
	err = net.Commit()
	require.Error(t, err)
	netErr, ok := err.(*dynamic.NetError)
	require.True(t, ok)
	assert.Equal(t, dynamic.ErrDanglingEdge, netErr.Kind())
}

func TestConnectOutOfRangeRejected(t *testing.T) {
	net, err := dynamic.New(1, 1)
	require.NoError(t, err)
	id := net.Push(nodes.Delay(1))
	err = net.Connect(dynamic.GraphInput(5), dynamic.NodeEndpoint(id, 0))
	require.Error(t, err)
	netErr, ok := err.(*dynamic.NetError)
	require.True(t, ok)
	assert.Equal(t, dynamic.ErrOutOfRange, netErr.Kind())
}

func TestReplaceArityMismatchRejected(t *testing.T) {
	net, err := dynamic.New(1, 1)
	require.NoError(t, err)
	id := net.Push(nodes.Delay(1))
	err = net.Replace(id, graph.Pass(2))
	require.Error(t, err)
	netErr, ok := err.(*dynamic.NetError)
	require.True(t, ok)
	assert.Equal(t, dynamic.ErrArityMismatch, netErr.Kind())
}

func TestCommitDetectsCycle(t *testing.T) {
	net, err := dynamic.New(1, 1)
	require.NoError(t, err)
	a := net.Push(graph.Pass(1))
	b := net.Push(graph.Pass(1))
	require.NoError(t, net.Connect(dynamic.NodeEndpoint(a, 0), dynamic.NodeEndpoint(b, 0)))
	require.NoError(t, net.Connect(dynamic.NodeEndpoint(b, 0), dynamic.NodeEndpoint(a, 0)))

	err = net.Commit()
	require.Error(t, err)
	netErr, ok := err.(*dynamic.NetError)
	require.True(t, ok)
	assert.Equal(t, dynamic.ErrCycle, netErr.Kind())
}

func TestCrossfadeMixesOldAndNew(t *testing.T) {
	net, err := dynamic.New(0, 1)
	require.NoError(t, err)
	net.SetSampleRate(4)
	id := net.Push(graph.Constant(1))
	require.NoError(t, net.Connect(dynamic.NodeEndpoint(id, 0), dynamic.GraphOutput(0)))
	require.NoError(t, net.Commit())
	b := net.Backend()

	out := render(t, b, 1, nil)
	assert.InDelta(t, 1.0, out[0][0], 1e-6)

	require.NoError(t, net.Crossfade(id, dynamic.LinearCurve, 1.0, graph.Constant(-1)))
	require.NoError(t, net.Commit())

	out = render(t, b, 4, nil)
	assert.InDelta(t, 1.0, out[0][0], 1e-6)
	out = render(t, b, 4, nil)
	assert.InDelta(t, -1.0, out[0][3], 1e-6)
}

func TestDynamicPipeBuilderMatchesStaticComposition(t *testing.T) {
	net, err := dynamic.Pipe(graph.Pass(1), nodes.Delay(1/graph.DefaultSampleRate))
	require.NoError(t, err)

	out := render(t, net.Backend(), 3, [][]float32{{1, 2, 3}})
	assert.Equal(t, []float32{0, 1, 2}, out[0])
}
