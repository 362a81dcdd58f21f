package graph

import "fmt"

// arityMismatch panics reporting a combinator construction-time channel
// count mismatch - the nearest Go analogue of the compile-time rejection
// called for by the static layer (see DESIGN.md, "type-level arities").
func arityMismatch(op string, a, b int) {
	panic(fmt.Sprintf("graph: %s: channel count mismatch (%d != %d)", op, a, b))
}
