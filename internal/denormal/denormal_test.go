package denormal_test

import (
	"testing"

	"github.com/loomaudio/graph/internal/denormal"
	"github.com/stretchr/testify/assert"
)

func TestFlush32ZeroesTinyMagnitudes(t *testing.T) {
	assert.Equal(t, float32(0), denormal.Flush32(1e-30))
	assert.Equal(t, float32(0), denormal.Flush32(-1e-30))
}

func TestFlush32PassesAudibleValuesThrough(t *testing.T) {
	assert.Equal(t, float32(0.5), denormal.Flush32(0.5))
	assert.Equal(t, float32(-0.5), denormal.Flush32(-0.5))
}

func TestFlush64ZeroesTinyMagnitudes(t *testing.T) {
	assert.Equal(t, 0.0, denormal.Flush64(1e-30))
}

func TestFlush64PassesAudibleValuesThrough(t *testing.T) {
	assert.Equal(t, 0.5, denormal.Flush64(0.5))
}
