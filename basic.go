package graph

// Core topology primitives with no signal-processing content of their
// own: pass, sink, zero and constant. These appear throughout the
// combinator identities (§8) as the units of the algebra - pass is the
// identity for pipe, zero the identity for bus, sink absorbs whatever
// stack sends it.

type passNode struct{ n int }

// Pass returns an n-channel identity node: Tick and Process copy input
// straight to output unchanged.
func Pass(n int) Node { return passNode{n: n} }

func (p passNode) Inputs() int                    { return p.n }
func (p passNode) Outputs() int                   { return p.n }
func (p passNode) Reset()                         {}
func (p passNode) SetSampleRate(sampleRate float64) {}
func (p passNode) Allocate()                      {}

func (p passNode) Tick(input Frame) Frame { return input.Clone() }

func (p passNode) Process(input BufferRef, output BufferMut, size int) {
	for ch := 0; ch < p.n; ch++ {
		copy(output.Channel(ch)[:size], input.Channel(ch)[:size])
	}
}

func (p passNode) Set(s Setting, addr Address)        {}
func (p passNode) Ping(probe bool, hash uint64) uint64 { return hash }
func (p passNode) Route(in []Tag) []Tag {
	out := make([]Tag, len(in))
	copy(out, in)
	return out
}
func (p passNode) Latency() float64 { return 0 }

type sinkNode struct{ n int }

// Sink absorbs n input channels and produces none.
func Sink(n int) Node { return sinkNode{n: n} }

func (s sinkNode) Inputs() int                    { return s.n }
func (s sinkNode) Outputs() int                   { return 0 }
func (s sinkNode) Reset()                         {}
func (s sinkNode) SetSampleRate(sampleRate float64) {}
func (s sinkNode) Allocate()                      {}
func (s sinkNode) Tick(input Frame) Frame          { return nil }
func (s sinkNode) Process(input BufferRef, output BufferMut, size int) {}
func (s sinkNode) Set(setting Setting, addr Address)                   {}
func (s sinkNode) Ping(probe bool, hash uint64) uint64                  { return hash }
func (s sinkNode) Route(in []Tag) []Tag                                 { return nil }
func (s sinkNode) Latency() float64                                     { return 0 }

type zeroNode struct{ n int }

// Zero is a generator of n channels of silence.
func Zero(n int) Node { return zeroNode{n: n} }

func (z zeroNode) Inputs() int                    { return 0 }
func (z zeroNode) Outputs() int                   { return z.n }
func (z zeroNode) Reset()                         {}
func (z zeroNode) SetSampleRate(sampleRate float64) {}
func (z zeroNode) Allocate()                      {}
func (z zeroNode) Tick(input Frame) Frame          { return NewFrame(z.n) }
func (z zeroNode) Process(input BufferRef, output BufferMut, size int) {
	for ch := 0; ch < z.n; ch++ {
		row := output.Channel(ch)[:size]
		for i := range row {
			row[i] = 0
		}
	}
}
func (z zeroNode) Set(setting Setting, addr Address) {}
func (z zeroNode) Ping(probe bool, hash uint64) uint64 { return hash }
func (z zeroNode) Route(in []Tag) []Tag {
	out := make([]Tag, z.n)
	for i := range out {
		out[i] = Value(0)
	}
	return out
}
func (z zeroNode) Latency() float64 { return 0 }

type constantNode struct{ values []float32 }

// Constant is a zero-input generator emitting a fixed value per channel
// on every tick, used throughout tests and examples to feed a literal
// into a parameter input (e.g. constant(440) >> sine()).
func Constant(values ...float32) Node {
	v := make([]float32, len(values))
	copy(v, values)
	return &constantNode{values: v}
}

func (c *constantNode) Inputs() int                    { return 0 }
func (c *constantNode) Outputs() int                   { return len(c.values) }
func (c *constantNode) Reset()                         {}
func (c *constantNode) SetSampleRate(sampleRate float64) {}
func (c *constantNode) Allocate()                      {}
func (c *constantNode) Tick(input Frame) Frame {
	out := NewFrame(len(c.values))
	copy(out, c.values)
	return out
}
func (c *constantNode) Process(input BufferRef, output BufferMut, size int) {
	for ch, v := range c.values {
		row := output.Channel(ch)[:size]
		for i := range row {
			row[i] = v
		}
	}
}
func (c *constantNode) Set(s Setting, addr Address) {
	if s.Kind == SettingKindValue {
		if tok, _, ok := addr.Head(); ok && tok.Kind == Index && tok.I >= 0 && tok.I < len(c.values) {
			c.values[tok.I] = s.Value
			return
		}
		for i := range c.values {
			c.values[i] = s.Value
		}
	}
}
func (c *constantNode) Ping(probe bool, hash uint64) uint64 {
	return childHash(hash, kindConstant, 0)
}
func (c *constantNode) Route(in []Tag) []Tag {
	out := make([]Tag, len(c.values))
	for i, v := range c.values {
		out[i] = Value(float64(v))
	}
	return out
}
func (c *constantNode) Latency() float64 { return 0 }
