package graph

// splitmix64 is a 64-bit bijective mix function, used both to fold new
// structural information into a running hash and to derive a
// pseudorandom stream from a seed. It is the reference mixer for
// splitmix64-style generators.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// mixHash folds tag into a running location hash. tag is either a role
// tag from childHash (a combinator's kind mixed with the index of the
// child being visited) or a child's own returned hash. Two structurally
// identical subgraphs that occupy different positions receive different
// hashes; the same subgraph built the same way always receives the same
// hash.
func mixHash(hash uint64, tag uint64) uint64 {
	return splitmix64(hash ^ splitmix64(tag))
}

// childHash derives a distinct hash to pass down to the i-th child of a
// combinator of the given kind, from the combinator's own incoming hash.
func childHash(hash uint64, kind uint64, i int) uint64 {
	return mixHash(hash, kind^ (uint64(i)*0x2545f4914f6cdd1d+1))
}

// RNG is a tiny splitmix64-based pseudorandom source, deterministic for
// a given seed. Leaf generators (oscillators, noise) seed one of these
// from their location hash (via Ping) to get a reproducible but
// decorrelated initial phase or sample stream - exported so that
// out-of-package leaf nodes (package nodes) can do the same without
// reimplementing the mixer.
type RNG struct {
	state uint64
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed uint64) *RNG { return &RNG{state: seed} }

// Next returns the next 64-bit pseudorandom value and advances state.
func (r *RNG) Next() uint64 {
	r.state = splitmix64(r.state)
	return r.state
}

// Float returns a pseudorandom value in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}
