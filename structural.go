package graph

// This file implements the four structural, fully-associative
// combinators (pipe, bus, branch, stack). Each flattens associative
// chains into one n-ary node at construction time, per §4.2's
// associativity rule ("the implementation may flatten... but must not
// change observable samples") - this trades one interface-dispatch
// level for depth of nesting, without changing behavior.

// --- pipe: A >> B ---

type pipeNode struct {
	children []Node
	scratch  []*Buffer // len(children)-1 boundary buffers
	tickIn   *Buffer
	tickOut  *Buffer
}

// Pipe feeds a's outputs into b's inputs; a's output arity must equal
// b's input arity. Its own arity is Inputs(a) in, Outputs(b) out.
func Pipe(a, b Node) Node {
	if a.Outputs() != b.Inputs() {
		arityMismatch("pipe", a.Outputs(), b.Inputs())
	}
	children := append(flattenPipe(a), flattenPipe(b)...)
	return &pipeNode{children: children}
}

func flattenPipe(n Node) []Node {
	if p, ok := n.(*pipeNode); ok {
		return p.children
	}
	return []Node{n}
}

func (n *pipeNode) Inputs() int  { return n.children[0].Inputs() }
func (n *pipeNode) Outputs() int { return n.children[len(n.children)-1].Outputs() }

func (n *pipeNode) Reset() {
	for _, c := range n.children {
		c.Reset()
	}
}
func (n *pipeNode) SetSampleRate(sr float64) {
	for _, c := range n.children {
		c.SetSampleRate(sr)
	}
}

func (n *pipeNode) Allocate() {
	if n.scratch == nil {
		n.scratch = make([]*Buffer, len(n.children)-1)
		for i := range n.scratch {
			n.scratch[i] = NewBuffer(n.children[i].Outputs())
		}
		n.tickIn = NewBuffer(n.Inputs())
		n.tickOut = NewBuffer(n.Outputs())
	}
	for _, c := range n.children {
		c.Allocate()
	}
}

func (n *pipeNode) Process(input BufferRef, output BufferMut, size int) {
	n.Allocate()
	cur := input
	for i, c := range n.children {
		var out BufferMut
		if i == len(n.children)-1 {
			out = output
		} else {
			out = MutOf(n.scratch[i])
		}
		c.Process(cur, out, size)
		if i != len(n.children)-1 {
			cur = RefOf(n.scratch[i])
		}
	}
}

func (n *pipeNode) Tick(input Frame) Frame {
	n.Allocate()
	n.tickIn.WriteFrame(0, input)
	n.Process(RefOf(n.tickIn), MutOf(n.tickOut), 1)
	out := NewFrame(n.Outputs())
	n.tickOut.ReadFrame(0, out)
	return out
}

func (n *pipeNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok || tok.Kind != Index || tok.I < 0 || tok.I >= len(n.children) {
		return
	}
	n.children[tok.I].Set(s, rest)
}

func (n *pipeNode) Ping(probe bool, hash uint64) uint64 {
	h := hash
	for i, c := range n.children {
		h = mixHash(h, c.Ping(probe, childHash(hash, kindPipe, i)))
	}
	return h
}

func (n *pipeNode) Route(in []Tag) []Tag {
	cur := in
	for _, c := range n.children {
		cur = c.Route(cur)
	}
	return cur
}
func (n *pipeNode) Latency() float64 { return routeLatency(n) }

// --- bus: A & B ---

type busNode struct {
	children []Node
	scratch  []*Buffer
	tickIn   *Buffer
	tickOut  *Buffer
}

// Bus feeds the same inputs to both a and b and sums their outputs; both
// must share input and output arity.
func Bus(a, b Node) Node {
	if a.Inputs() != b.Inputs() {
		arityMismatch("bus inputs", a.Inputs(), b.Inputs())
	}
	if a.Outputs() != b.Outputs() {
		arityMismatch("bus outputs", a.Outputs(), b.Outputs())
	}
	children := append(flattenBus(a), flattenBus(b)...)
	return &busNode{children: children}
}

func flattenBus(n Node) []Node {
	if b, ok := n.(*busNode); ok {
		return b.children
	}
	return []Node{n}
}

func (n *busNode) Inputs() int  { return n.children[0].Inputs() }
func (n *busNode) Outputs() int { return n.children[0].Outputs() }

func (n *busNode) Reset() {
	for _, c := range n.children {
		c.Reset()
	}
}
func (n *busNode) SetSampleRate(sr float64) {
	for _, c := range n.children {
		c.SetSampleRate(sr)
	}
}

func (n *busNode) Allocate() {
	if n.scratch == nil {
		n.scratch = make([]*Buffer, len(n.children))
		for i := range n.scratch {
			n.scratch[i] = NewBuffer(n.Outputs())
		}
		n.tickIn = NewBuffer(n.Inputs())
		n.tickOut = NewBuffer(n.Outputs())
	}
	for _, c := range n.children {
		c.Allocate()
	}
}

func (n *busNode) Process(input BufferRef, output BufferMut, size int) {
	n.Allocate()
	output.buf.Clear(size)
	for i, c := range n.children {
		c.Process(input, MutOf(n.scratch[i]), size)
		for ch := 0; ch < output.Channels(); ch++ {
			out := output.Channel(ch)
			src := n.scratch[i].Channel(ch)
			for f := 0; f < size; f++ {
				out[f] += src[f]
			}
		}
	}
}

func (n *busNode) Tick(input Frame) Frame {
	n.Allocate()
	n.tickIn.WriteFrame(0, input)
	n.Process(RefOf(n.tickIn), MutOf(n.tickOut), 1)
	out := NewFrame(n.Outputs())
	n.tickOut.ReadFrame(0, out)
	return out
}

func (n *busNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		return
	}
	switch tok.Kind {
	case Left:
		n.children[0].Set(s, rest)
	case Right:
		n.children[len(n.children)-1].Set(s, rest)
	case Index:
		if tok.I >= 0 && tok.I < len(n.children) {
			n.children[tok.I].Set(s, rest)
		}
	}
}

func (n *busNode) Ping(probe bool, hash uint64) uint64 {
	h := hash
	for i, c := range n.children {
		h = mixHash(h, c.Ping(probe, childHash(hash, kindBus, i)))
	}
	return h
}

func (n *busNode) Route(in []Tag) []Tag {
	out := n.children[0].Route(in)
	for i := 1; i < len(n.children); i++ {
		next := n.children[i].Route(in)
		for ch := range out {
			out[ch] = out[ch].CombineLinear(next[ch], 0,
				func(x, y float64) float64 { return x + y },
				func(x, y Transfer) Transfer {
					return func(z complex128) complex128 { return x(z) + y(z) }
				})
		}
	}
	return out
}
func (n *busNode) Latency() float64 { return routeLatency(n) }

// --- branch: A ^ B ---

type branchNode struct {
	children []Node
	tickIn   *Buffer
	tickOut  *Buffer
}

// Branch feeds the same inputs to both a and b and concatenates their
// outputs; both must share input arity.
func Branch(a, b Node) Node {
	if a.Inputs() != b.Inputs() {
		arityMismatch("branch", a.Inputs(), b.Inputs())
	}
	children := append(flattenBranch(a), flattenBranch(b)...)
	return &branchNode{children: children}
}

func flattenBranch(n Node) []Node {
	if b, ok := n.(*branchNode); ok {
		return b.children
	}
	return []Node{n}
}

func (n *branchNode) Inputs() int { return n.children[0].Inputs() }
func (n *branchNode) Outputs() int {
	total := 0
	for _, c := range n.children {
		total += c.Outputs()
	}
	return total
}

func (n *branchNode) Reset() {
	for _, c := range n.children {
		c.Reset()
	}
}
func (n *branchNode) SetSampleRate(sr float64) {
	for _, c := range n.children {
		c.SetSampleRate(sr)
	}
}
func (n *branchNode) Allocate() {
	if n.tickIn == nil {
		n.tickIn = NewBuffer(n.Inputs())
		n.tickOut = NewBuffer(n.Outputs())
	}
	for _, c := range n.children {
		c.Allocate()
	}
}

func (n *branchNode) Process(input BufferRef, output BufferMut, size int) {
	n.Allocate()
	offset := 0
	for _, c := range n.children {
		sub := subMut(output, offset, c.Outputs())
		c.Process(input, sub, size)
		offset += c.Outputs()
	}
}

func (n *branchNode) Tick(input Frame) Frame {
	n.Allocate()
	n.tickIn.WriteFrame(0, input)
	n.Process(RefOf(n.tickIn), MutOf(n.tickOut), 1)
	out := NewFrame(n.Outputs())
	n.tickOut.ReadFrame(0, out)
	return out
}

func (n *branchNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		return
	}
	switch tok.Kind {
	case Left:
		n.children[0].Set(s, rest)
	case Right:
		n.children[len(n.children)-1].Set(s, rest)
	case Index:
		if tok.I >= 0 && tok.I < len(n.children) {
			n.children[tok.I].Set(s, rest)
		}
	}
}

func (n *branchNode) Ping(probe bool, hash uint64) uint64 {
	h := hash
	for i, c := range n.children {
		h = mixHash(h, c.Ping(probe, childHash(hash, kindBranch, i)))
	}
	return h
}

func (n *branchNode) Route(in []Tag) []Tag {
	out := make([]Tag, 0, n.Outputs())
	for _, c := range n.children {
		out = append(out, c.Route(in)...)
	}
	return out
}
func (n *branchNode) Latency() float64 { return routeLatency(n) }

// --- stack: A ‖ B ---

type stackNode struct {
	children []Node
	tickIn   *Buffer
	tickOut  *Buffer
}

// Stack runs a and b on disjoint input and output channels, in parallel.
func Stack(a, b Node) Node {
	children := append(flattenStack(a), flattenStack(b)...)
	return &stackNode{children: children}
}

func flattenStack(n Node) []Node {
	if s, ok := n.(*stackNode); ok {
		return s.children
	}
	return []Node{n}
}

func (n *stackNode) Inputs() int {
	total := 0
	for _, c := range n.children {
		total += c.Inputs()
	}
	return total
}
func (n *stackNode) Outputs() int {
	total := 0
	for _, c := range n.children {
		total += c.Outputs()
	}
	return total
}

func (n *stackNode) Reset() {
	for _, c := range n.children {
		c.Reset()
	}
}
func (n *stackNode) SetSampleRate(sr float64) {
	for _, c := range n.children {
		c.SetSampleRate(sr)
	}
}
func (n *stackNode) Allocate() {
	if n.tickIn == nil {
		n.tickIn = NewBuffer(n.Inputs())
		n.tickOut = NewBuffer(n.Outputs())
	}
	for _, c := range n.children {
		c.Allocate()
	}
}

func (n *stackNode) Process(input BufferRef, output BufferMut, size int) {
	n.Allocate()
	inOff, outOff := 0, 0
	for _, c := range n.children {
		subIn := subRef(input, inOff, c.Inputs())
		subOut := subMut(output, outOff, c.Outputs())
		c.Process(subIn, subOut, size)
		inOff += c.Inputs()
		outOff += c.Outputs()
	}
}

func (n *stackNode) Tick(input Frame) Frame {
	n.Allocate()
	n.tickIn.WriteFrame(0, input)
	n.Process(RefOf(n.tickIn), MutOf(n.tickOut), 1)
	out := NewFrame(n.Outputs())
	n.tickOut.ReadFrame(0, out)
	return out
}

func (n *stackNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		return
	}
	switch tok.Kind {
	case Left:
		n.children[0].Set(s, rest)
	case Right:
		n.children[len(n.children)-1].Set(s, rest)
	case Index:
		if tok.I >= 0 && tok.I < len(n.children) {
			n.children[tok.I].Set(s, rest)
		}
	}
}

func (n *stackNode) Ping(probe bool, hash uint64) uint64 {
	h := hash
	for i, c := range n.children {
		// Distinct hashes decorrelate structurally-identical stacked
		// children, e.g. noise() ‖ noise() produces two independent
		// channels rather than a mono signal doubled.
		h = mixHash(h, c.Ping(probe, childHash(hash, kindStack, i)))
	}
	return h
}

func (n *stackNode) Route(in []Tag) []Tag {
	out := make([]Tag, 0, n.Outputs())
	offset := 0
	for _, c := range n.children {
		out = append(out, c.Route(in[offset:offset+c.Inputs()])...)
		offset += c.Inputs()
	}
	return out
}
func (n *stackNode) Latency() float64 { return routeLatency(n) }

// subRef returns a channel-offset read view over count channels of ref.
func subRef(ref BufferRef, offset, count int) BufferRef {
	return BufferRef{buf: &Buffer{data: ref.buf.data[offset : offset+count]}}
}

// subMut returns a channel-offset write view over count channels of mut.
func subMut(mut BufferMut, offset, count int) BufferMut {
	return BufferMut{buf: &Buffer{data: mut.buf.data[offset : offset+count]}}
}
