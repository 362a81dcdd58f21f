// Package bufpool recycles scratch buffers across a dynamic network's
// node churn: Replace and Crossfade retire old subgraphs and allocate
// new ones on a caller's goroutine, then hand them to the render
// thread on commit. Without reuse, a network under steady editing
// churns garbage in proportion to edit rate rather than graph size.
// Buffers are cached in one sync.Pool per channel count, since the unit
// of reuse here is a channel-major buffer. The dynamic network's and the
// sequencer's Commit only call Get; nothing returns their retired
// buffers with Put, so their commits take fresh buffers each time.
package bufpool

import "sync"

// Buffer mirrors the shape bufpool recycles without importing the root
// package, avoiding an import cycle: a channel-major block of BlockSize
// float32 frames.
type Buffer struct {
	Data [][]float32
}

var (
	mu    sync.Mutex
	pools = map[int]*sync.Pool{}
)

func poolFor(channels int) *sync.Pool {
	mu.Lock()
	defer mu.Unlock()
	if p, ok := pools[channels]; ok {
		return p
	}
	p := &sync.Pool{}
	pools[channels] = p
	return p
}

// Get returns a buffer with the given channel count and blockSize
// capacity per channel, reused from a prior Put when available.
func Get(channels, blockSize int) *Buffer {
	p := poolFor(channels)
	if v := p.Get(); v != nil {
		b := v.(*Buffer)
		for ch := range b.Data {
			if cap(b.Data[ch]) < blockSize {
				b.Data[ch] = make([]float32, blockSize)
			} else {
				b.Data[ch] = b.Data[ch][:blockSize]
			}
		}
		return b
	}
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, blockSize)
	}
	return &Buffer{Data: data}
}

// Put returns buf to the pool for its channel count, for reuse by a
// future Get. Callers must not touch buf afterward.
func Put(buf *Buffer) {
	if buf == nil || len(buf.Data) == 0 {
		return
	}
	poolFor(len(buf.Data)).Put(buf)
}

// Wipe drops every cached pool. Exposed for tests that need to assert
// on allocation counts without cross-test pollution.
func Wipe() {
	mu.Lock()
	defer mu.Unlock()
	pools = map[int]*sync.Pool{}
}
