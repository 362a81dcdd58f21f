package wave_test

import (
	"testing"

	"github.com/loomaudio/graph/wave"
	"github.com/stretchr/testify/assert"
)

func TestNewReportsChannelsLengthAndSampleRate(t *testing.T) {
	w := wave.New([][]float32{{1, 2, 3}, {4, 5, 6}}, 48000)
	assert.Equal(t, 2, w.Channels())
	assert.Equal(t, 3, w.Length())
	assert.Equal(t, 48000.0, w.SampleRate())
}

func TestAtIndexesIntoTheRightChannel(t *testing.T) {
	w := wave.New([][]float32{{1, 2, 3}, {4, 5, 6}}, 48000)
	assert.Equal(t, float32(1), w.At(0, 0))
	assert.Equal(t, float32(6), w.At(1, 2))
}

func TestLengthOfEmptyWaveIsZero(t *testing.T) {
	w := wave.New(nil, 48000)
	assert.Equal(t, 0, w.Length())
}

func TestRetainReleaseTracksReferenceCount(t *testing.T) {
	w := wave.New([][]float32{{1}}, 48000)
	w.Retain()
	assert.False(t, w.Release())
	assert.True(t, w.Release())
}
