package graph

// binOp is the shared shape of Mul/Add/Sub: two children with matching
// output arity, combined channelwise by op over their concatenated
// inputs.
type binOp struct {
	x, y Node
	kind uint64
	op   func(a, b float32) float32
	tag  func(a, b Tag) Tag
	name string
}

func newBinOp(name string, kind uint64, x, y Node, op func(a, b float32) float32, tag func(a, b Tag) Tag) Node {
	if x.Outputs() != y.Outputs() {
		arityMismatch(name, x.Outputs(), y.Outputs())
	}
	return &binOp{x: x, y: y, kind: kind, op: op, tag: tag, name: name}
}

func (n *binOp) Inputs() int  { return n.x.Inputs() + n.y.Inputs() }
func (n *binOp) Outputs() int { return n.x.Outputs() }
func (n *binOp) Reset()       { n.x.Reset(); n.y.Reset() }
func (n *binOp) SetSampleRate(sr float64) {
	n.x.SetSampleRate(sr)
	n.y.SetSampleRate(sr)
}
func (n *binOp) Allocate() { n.x.Allocate(); n.y.Allocate() }

func (n *binOp) Tick(input Frame) Frame {
	xi, yi := n.x.Inputs(), n.y.Inputs()
	xo := n.x.Tick(input[:xi])
	yo := n.y.Tick(input[xi : xi+yi])
	out := NewFrame(n.Outputs())
	for i := range out {
		out[i] = n.op(xo[i], yo[i])
	}
	return out
}

func (n *binOp) Process(input BufferRef, output BufferMut, size int) {
	processViaTick(n, input, output, size)
}

func (n *binOp) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		return
	}
	switch tok.Kind {
	case Left:
		n.x.Set(s, rest)
	case Right:
		n.y.Set(s, rest)
	}
}

func (n *binOp) Ping(probe bool, hash uint64) uint64 {
	hx := n.x.Ping(probe, childHash(hash, n.kind, 0))
	hy := n.y.Ping(probe, childHash(hash, n.kind, 1))
	return mixHash(hx, hy)
}

func (n *binOp) Route(in []Tag) []Tag {
	xi, yi := n.x.Inputs(), n.y.Inputs()
	xo := n.x.Route(in[:xi])
	yo := n.y.Route(in[xi : xi+yi])
	out := make([]Tag, n.Outputs())
	for i := range out {
		out[i] = n.tag(xo[i], yo[i])
	}
	return out
}
func (n *binOp) Latency() float64 { return routeLatency(n) }

// Mul returns the channelwise product of x and y, which must share an
// output arity. Its input arity is Inputs(x)+Inputs(y): x consumes the
// first Inputs(x) channels, y the rest.
func Mul(x, y Node) Node {
	return newBinOp("mul", kindMul, x, y,
		func(a, b float32) float32 { return a * b },
		func(a, b Tag) Tag { return a.CombineMul(b, 0) })
}

// Add returns the channelwise sum of x and y.
func Add(x, y Node) Node {
	return newBinOp("add", kindAdd, x, y,
		func(a, b float32) float32 { return a + b },
		func(a, b Tag) Tag {
			return a.CombineLinear(b, 0,
				func(vx, vy float64) float64 { return vx + vy },
				func(tx, ty Transfer) Transfer {
					return func(z complex128) complex128 { return tx(z) + ty(z) }
				})
		})
}

// Sub returns the channelwise difference x - y.
func Sub(x, y Node) Node {
	return newBinOp("sub", kindSub, x, y,
		func(a, b float32) float32 { return a - b },
		func(a, b Tag) Tag {
			return a.CombineLinear(b, 0,
				func(vx, vy float64) float64 { return vx - vy },
				func(tx, ty Transfer) Transfer {
					return func(z complex128) complex128 { return tx(z) - ty(z) }
				})
		})
}

// --- scalar broadcasting ---

// scalarOp broadcasts a constant c across every output of x, a distinct
// path from node-node arithmetic: it is legal for any arity, including
// zero (in which case it is a no-op), and never requires matching
// arities.
type scalarOp struct {
	x    Node
	c    float32
	kind uint64
	op   func(x, c float32) float32
	tag  func(t Tag, c float64) Tag
}

func (n *scalarOp) Inputs() int  { return n.x.Inputs() }
func (n *scalarOp) Outputs() int { return n.x.Outputs() }
func (n *scalarOp) Reset()       { n.x.Reset() }
func (n *scalarOp) SetSampleRate(sr float64) { n.x.SetSampleRate(sr) }
func (n *scalarOp) Allocate()    { n.x.Allocate() }

func (n *scalarOp) Tick(input Frame) Frame {
	out := n.x.Tick(input)
	for i := range out {
		out[i] = n.op(out[i], n.c)
	}
	return out
}

func (n *scalarOp) Process(input BufferRef, output BufferMut, size int) {
	n.x.Process(input, output, size)
	for ch := 0; ch < output.Channels(); ch++ {
		row := output.Channel(ch)[:size]
		for i := range row {
			row[i] = n.op(row[i], n.c)
		}
	}
}

func (n *scalarOp) Set(s Setting, addr Address) { n.x.Set(s, addr) }
func (n *scalarOp) Ping(probe bool, hash uint64) uint64 {
	return n.x.Ping(probe, childHash(hash, n.kind, 0))
}
func (n *scalarOp) Route(in []Tag) []Tag {
	out := n.x.Route(in)
	for i := range out {
		out[i] = n.tag(out[i], float64(n.c))
	}
	return out
}
func (n *scalarOp) Latency() float64 { return routeLatency(n) }

// MulScalar scales every output of x by c.
func MulScalar(x Node, c float32) Node {
	return &scalarOp{x: x, c: c, kind: kindMulScalar,
		op:  func(v, c float32) float32 { return v * c },
		tag: func(t Tag, c float64) Tag { return t.Scale(c) },
	}
}

// AddScalar adds the constant c to every output of x.
func AddScalar(x Node, c float32) Node {
	return &scalarOp{x: x, c: c, kind: kindAddScalar,
		op: func(v, c float32) float32 { return v + c },
		tag: func(t Tag, c float64) Tag {
			if t.Kind == TagValue {
				return Value(t.X + c)
			}
			return t
		},
	}
}

// SubScalar subtracts the constant c from every output of x (x - c).
func SubScalar(x Node, c float32) Node {
	return &scalarOp{x: x, c: c, kind: kindSubScalar,
		op: func(v, c float32) float32 { return v - c },
		tag: func(t Tag, c float64) Tag {
			if t.Kind == TagValue {
				return Value(t.X - c)
			}
			return t
		},
	}
}

// ScalarSub subtracts every output of x from the constant c (c - x).
func ScalarSub(c float32, x Node) Node {
	return &scalarOp{x: x, c: c, kind: kindScalarSub,
		op: func(v, c float32) float32 { return c - v },
		tag: func(t Tag, c float64) Tag {
			switch t.Kind {
			case TagValue:
				return Value(c - t.X)
			case TagResponse:
				prior := t.Transfer
				return ResponseTag(func(z complex128) complex128 { return -prior(z) }, t.Latency)
			default:
				return t
			}
		},
	}
}
