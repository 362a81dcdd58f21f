package graph

// listener.go implements external control of a running node via a
// bounded channel, grounded on original_source/src/setting.rs's
// Listen<X>. The channel decouples a control-rate producer (a UI
// thread, a MIDI callback) from the render path: settings queue up and
// are drained - applied via the wrapped node's own Set - immediately
// before every render call, never blocking the render path itself.

type pendingSetting struct {
	setting Setting
	addr    Address
}

type listenerNode struct {
	x  Node
	rv chan pendingSetting
}

// Listener is the sender half returned by Listen: send settings through
// it to have them applied to the wrapped node before its next render
// call. Sends never block the render path, but Push itself may block if
// the channel is full; callers on a real-time thread should use
// TryPush.
type Listener struct {
	ch chan pendingSetting
}

// Push queues a setting for the wrapped node, blocking if the channel
// is full.
func (l Listener) Push(s Setting, addr Address) {
	l.ch <- pendingSetting{setting: s, addr: addr}
}

// TryPush queues a setting without blocking, reporting whether it was
// accepted.
func (l Listener) TryPush(s Setting, addr Address) bool {
	select {
	case l.ch <- pendingSetting{setting: s, addr: addr}:
		return true
	default:
		return false
	}
}

// Listen equips x with a setting listener. It returns the Listener used
// to push settings from outside the render path, and the wrapped node
// itself.
func Listen(x Node) (Listener, Node) {
	ch := make(chan pendingSetting, 64)
	n := &listenerNode{x: x, rv: ch}
	return Listener{ch: ch}, n
}

func (n *listenerNode) drain() {
	for {
		select {
		case p := <-n.rv:
			n.x.Set(p.setting, p.addr)
		default:
			return
		}
	}
}

func (n *listenerNode) Inputs() int  { return n.x.Inputs() }
func (n *listenerNode) Outputs() int { return n.x.Outputs() }

func (n *listenerNode) Reset() {
	n.x.Reset()
	n.drain()
}

func (n *listenerNode) SetSampleRate(sr float64) {
	n.x.SetSampleRate(sr)
	n.drain()
}

func (n *listenerNode) Allocate() { n.x.Allocate() }

func (n *listenerNode) Tick(input Frame) Frame {
	n.drain()
	return n.x.Tick(input)
}

func (n *listenerNode) Process(input BufferRef, output BufferMut, size int) {
	n.drain()
	n.x.Process(input, output, size)
}

func (n *listenerNode) Set(s Setting, addr Address) { n.x.Set(s, addr) }

func (n *listenerNode) Ping(probe bool, hash uint64) uint64 {
	return n.x.Ping(probe, childHash(hash, kindListener, 0))
}

func (n *listenerNode) Route(in []Tag) []Tag {
	n.drain()
	return n.x.Route(in)
}

func (n *listenerNode) Latency() float64 { return n.x.Latency() }
