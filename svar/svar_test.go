package svar_test

import (
	"testing"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/svar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnsLastStoredValue(t *testing.T) {
	s := svar.New(1.5)
	assert.Equal(t, 1.5, s.Load())
	s.Store(-2.25)
	assert.Equal(t, -2.25, s.Load())
}

func TestNodeReflectsLiveUpdatesToShared(t *testing.T) {
	s := svar.New(0.25)
	n := graph.Init(svar.NewNode(s), 44100)
	assert.InDelta(t, 0.25, graph.GetMono(n), 1e-6)
	s.Store(0.75)
	assert.InDelta(t, 0.75, graph.GetMono(n), 1e-6)
}

func TestNodeRoutesToValueTag(t *testing.T) {
	s := svar.New(3.0)
	n := graph.Init(svar.NewNode(s), 44100)
	out := n.Route(nil)
	require.Len(t, out, 1)
	assert.Equal(t, graph.TagValue, out[0].Kind)
	assert.InDelta(t, 3.0, out[0].X, 1e-6)
}
