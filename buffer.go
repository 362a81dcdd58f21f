package graph

// Buffer is a contiguous block of up to BlockSize consecutive frames laid
// out channel-major (planar): Buffer.data[channel] holds that channel's
// samples contiguously, which keeps per-channel DSP loops SIMD-friendly.
// The same layout is used whether the channel count is known at graph-
// construction time (the common case) or fixed later by a dynamic
// network.
type Buffer struct {
	data [][]float32
}

// NewBuffer allocates a buffer with the given channel count, each channel
// sized to hold a full block.
func NewBuffer(channels int) *Buffer {
	b := &Buffer{data: make([][]float32, channels)}
	for i := range b.data {
		b.data[i] = make([]float32, BlockSize)
	}
	return b
}

// BufferFromChannels wraps already-allocated per-channel slices as a
// Buffer without copying, so a caller holding pooled scratch storage
// (internal/bufpool) can hand it to a Node as-is.
func BufferFromChannels(channels [][]float32) *Buffer {
	return &Buffer{data: channels}
}

// Channels returns the number of channels in the buffer.
func (b *Buffer) Channels() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Channel returns the backing slice for a channel, valid for up to
// BlockSize frames. Callers index it [0:n) for an n-frame process call.
func (b *Buffer) Channel(ch int) []float32 {
	return b.data[ch]
}

// At returns the sample at channel ch, frame i.
func (b *Buffer) At(ch, i int) float32 {
	return b.data[ch][i]
}

// Set writes the sample at channel ch, frame i.
func (b *Buffer) Set(ch, i int, v float32) {
	b.data[ch][i] = v
}

// WriteFrame writes a full Frame at position i across all channels.
func (b *Buffer) WriteFrame(i int, f Frame) {
	for ch := range b.data {
		b.data[ch][i] = f[ch]
	}
}

// ReadFrame reads a full Frame from position i across all channels, into
// a caller-supplied Frame to avoid allocation on the render path.
func (b *Buffer) ReadFrame(i int, into Frame) {
	for ch := range b.data {
		into[ch] = b.data[ch][i]
	}
}

// Clear zeroes the first n frames of every channel.
func (b *Buffer) Clear(n int) {
	for ch := range b.data {
		row := b.data[ch][:n]
		for i := range row {
			row[i] = 0
		}
	}
}

// BufferRef is a read-only view of a Buffer passed as a Node's input. It
// guarantees its channel count and borrowed range never alias the
// BufferMut passed as output in the same Process call.
type BufferRef struct {
	buf *Buffer
}

// RefOf returns a read view over buf.
func RefOf(buf *Buffer) BufferRef { return BufferRef{buf: buf} }

// Channels returns the number of input channels.
func (r BufferRef) Channels() int { return r.buf.Channels() }

// At returns the sample at channel ch, frame i.
func (r BufferRef) At(ch, i int) float32 { return r.buf.At(ch, i) }

// Channel returns the backing slice for a channel.
func (r BufferRef) Channel(ch int) []float32 { return r.buf.Channel(ch) }

// BufferMut is a writable view of a Buffer passed as a Node's output.
type BufferMut struct {
	buf *Buffer
}

// MutOf returns a write view over buf.
func MutOf(buf *Buffer) BufferMut { return BufferMut{buf: buf} }

// Channels returns the number of output channels.
func (m BufferMut) Channels() int { return m.buf.Channels() }

// Set writes the sample at channel ch, frame i.
func (m BufferMut) Set(ch, i int, v float32) { m.buf.Set(ch, i, v) }

// At returns the sample at channel ch, frame i.
func (m BufferMut) At(ch, i int) float32 { return m.buf.At(ch, i) }

// Channel returns the backing slice for a channel.
func (m BufferMut) Channel(ch int) []float32 { return m.buf.Channel(ch) }
