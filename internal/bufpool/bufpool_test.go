package bufpool_test

import (
	"testing"

	"github.com/loomaudio/graph/internal/bufpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsRequestedShape(t *testing.T) {
	bufpool.Wipe()
	b := bufpool.Get(2, 64)
	require.Len(t, b.Data, 2)
	for _, ch := range b.Data {
		assert.Len(t, ch, 64)
	}
}

func TestPutThenGetReusesTheSameBuffer(t *testing.T) {
	bufpool.Wipe()
	b := bufpool.Get(1, 64)
	b.Data[0][0] = 42
	bufpool.Put(b)
	reused := bufpool.Get(1, 64)
	assert.Equal(t, float32(42), reused.Data[0][0])
}

func TestGetGrowsCapacityWhenBlockSizeIncreases(t *testing.T) {
	bufpool.Wipe()
	b := bufpool.Get(1, 16)
	bufpool.Put(b)
	grown := bufpool.Get(1, 64)
	assert.Len(t, grown.Data[0], 64)
}

func TestPutNilIsANoOp(t *testing.T) {
	bufpool.Wipe()
	assert.NotPanics(t, func() { bufpool.Put(nil) })
}
