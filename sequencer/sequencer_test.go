package sequencer_test

import (
	"testing"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, b *sequencer.Backend, n int) []float32 {
	t.Helper()
	out := graph.NewBuffer(1)
	in := graph.NewBuffer(1)
	b.Process(graph.RefOf(in), graph.MutOf(out), n)
	return append([]float32{}, out.Channel(0)[:n]...)
}

func TestEventRendersWithinWindowOnly(t *testing.T) {
	seq := sequencer.New(1)
	seq.SetSampleRate(1)
	_, err := seq.Push(2, 5, 0, 0, nil, graph.Constant(1))
	require.NoError(t, err)
	require.NoError(t, seq.Commit())

	out := render(t, seq.Backend(), 8)
	assert.Equal(t, []float32{0, 0, 1, 1, 1, 0, 0, 0}, out)
}

func TestEventsSumCommutatively(t *testing.T) {
	seq := sequencer.New(1)
	seq.SetSampleRate(1)
	_, err := seq.Push(0, 4, 0, 0, nil, graph.Constant(1))
	require.NoError(t, err)
	_, err = seq.Push(0, 4, 0, 0, nil, graph.Constant(2))
	require.NoError(t, err)
	require.NoError(t, seq.Commit())

	out := render(t, seq.Backend(), 4)
	for _, v := range out {
		assert.InDelta(t, 3.0, v, 1e-6)
	}
}

func TestFadeInRampsFromZero(t *testing.T) {
	seq := sequencer.New(1)
	seq.SetSampleRate(1)
	_, err := seq.Push(0, 4, 4, 0, nil, graph.Constant(1))
	require.NoError(t, err)
	require.NoError(t, seq.Commit())

	out := render(t, seq.Backend(), 4)
	assert.InDelta(t, 0.0, out[0], 1e-6)
	assert.InDelta(t, 0.75, out[3], 1e-6)
}

// tickCounter is a stateful zero-input generator whose output is the
// number of times it has been ticked, used to detect whether a node is
// advanced over frames outside its event's active window.
type tickCounter struct{ n int }

func (c *tickCounter) Inputs() int                      { return 0 }
func (c *tickCounter) Outputs() int                     { return 1 }
func (c *tickCounter) Reset()                           {}
func (c *tickCounter) SetSampleRate(sampleRate float64) {}
func (c *tickCounter) Allocate()                        {}
func (c *tickCounter) Tick(input graph.Frame) graph.Frame {
	c.n++
	return graph.Frame{float32(c.n)}
}
func (c *tickCounter) Process(input graph.BufferRef, output graph.BufferMut, size int) {
	row := output.Channel(0)
	for i := 0; i < size; i++ {
		row[i] = c.Tick(nil)[0]
	}
}
func (c *tickCounter) Set(setting graph.Setting, addr graph.Address) {}
func (c *tickCounter) Ping(probe bool, hash uint64) uint64            { return hash }
func (c *tickCounter) Route(in []graph.Tag) []graph.Tag               { return []graph.Tag{graph.Unknown} }
func (c *tickCounter) Latency() float64                                { return 0 }

func TestEventDoesNotTickNodeBeforeItsStart(t *testing.T) {
	seq := sequencer.New(1)
	seq.SetSampleRate(1)
	counter := &tickCounter{}
	_, err := seq.Push(3, 8, 0, 0, nil, counter)
	require.NoError(t, err)
	require.NoError(t, seq.Commit())

	out := render(t, seq.Backend(), 8)
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3, 4, 5}, out)
	assert.Equal(t, 5, counter.n)
}

func TestEditExtendsEnd(t *testing.T) {
	seq := sequencer.New(1)
	seq.SetSampleRate(1)
	id, err := seq.Push(0, 2, 0, 0, nil, graph.Constant(1))
	require.NoError(t, err)
	require.NoError(t, seq.Edit(id, 6, 0))
	require.NoError(t, seq.Commit())

	out := render(t, seq.Backend(), 6)
	for _, v := range out {
		assert.InDelta(t, 1.0, v, 1e-6)
	}
}
