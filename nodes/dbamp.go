package nodes

import (
	"math"

	graph "github.com/loomaudio/graph"
)

// DbAmp converts a decibel value to a linear gain node usable directly
// as a Mul operand (e.g. graph.Mul(x, nodes.DbAmp(-3.0))), grounded on
// original_source/src/math.rs's db_amp: gain = 10^(db/20), 0 dB = unity.
// It is a zero-input constant generator, not a filter: it always emits
// the same value, one derived at construction time.
func DbAmp(db float32) graph.Node {
	gain := float32(math.Pow(10, float64(db)/20))
	return graph.Constant(gain)
}
