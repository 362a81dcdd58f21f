package graph_test

import (
	"testing"

	graph "github.com/loomaudio/graph"
	"github.com/stretchr/testify/assert"
)

func TestConstantSetWithIndexAddressTargetsOneChannel(t *testing.T) {
	c := graph.Constant(1, 2, 3)
	c.Set(graph.SettingValue(99), graph.Address{graph.AtIndex(1)})
	out := c.Tick(nil)
	assert.Equal(t, graph.Frame{1, 99, 3}, out)
}

func TestConstantSetWithEmptyAddressBroadcastsToAllChannels(t *testing.T) {
	c := graph.Constant(1, 2, 3)
	c.Set(graph.SettingValue(7), graph.Address{})
	out := c.Tick(nil)
	assert.Equal(t, graph.Frame{7, 7, 7}, out)
}
