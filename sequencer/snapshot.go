package sequencer

import graph "github.com/loomaudio/graph"

// entry is one event as carried inside a committed snapshot: the event
// plus its preallocated render scratch.
type entry struct {
	id     uint64
	spec   *eventSpec
	input  *graph.Buffer
	output *graph.Buffer
}

// snapshot is the immutable, start-time-ordered event list published
// from frontend to backend by Commit, walked in ascending start time
// order at render time - the same publish-wholesale-on-commit shape as
// dynamic.snapshot.
type snapshot struct {
	nOut    int
	events  []entry // ascending by spec.start
}
