package sequencer

import (
	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/dynamic"
)

// eventSpec is a pending event as tracked by the frontend: the node
// plus its scheduling in absolute sample time.
type eventSpec struct {
	node     graph.Node
	start    uint64
	end      uint64
	fadeIn   uint64
	fadeOut  uint64
	curve    dynamic.Curve
	initialized bool
}

// envelope returns the fade weight in [0,1] for sample position pos
// (absolute stream time), given the event's window. Outside [start,
// end) the weight is 0; inside, it ramps 0->1 across fadeIn samples
// from the start, holds at 1, then ramps 1->0 across fadeOut samples
// into the end, shaped by curve. Grounded on spec.md §4.6's "0->1
// during fade-in, 1->curve->0 during fade-out".
func (e *eventSpec) envelope(pos uint64) float64 {
	if pos < e.start || pos >= e.end {
		return 0
	}
	curve := e.curve
	if curve == nil {
		curve = dynamic.LinearCurve
	}
	if e.fadeIn > 0 {
		if since := pos - e.start; since < e.fadeIn {
			return curve(float64(since) / float64(e.fadeIn))
		}
	}
	if e.fadeOut > 0 {
		if until := e.end - pos; until <= e.fadeOut {
			return curve(float64(until) / float64(e.fadeOut))
		}
	}
	return 1
}

func (e *eventSpec) done(blockStart uint64) bool {
	return e.end <= blockStart
}
