// Package wave provides an in-memory, ref-counted multichannel sample
// container for playback nodes, grounded on
// original_source/src/wave.rs's Wave/Arc<Wave> pairing (an Arc-shared,
// immutable-once-built buffer several WavePlayer nodes can share
// without copying). It carries no file or codec support: reading a WAV
// or MP3 file is explicitly out of scope (see spec.md's Non-goals) -
// callers construct a Shared from samples they already have in memory,
// e.g. decoded by an application-level codec outside this module.
package wave

import "sync/atomic"

// Shared is an immutable, reference-counted block of planar sample
// data. Multiple nodes.WavePlayer instances may share one Shared
// without copying its samples; it is safe for concurrent read access
// once constructed (its data is never mutated after New).
type Shared struct {
	channels   [][]float32
	sampleRate float64
	refs       int32
}

// New returns a Shared wrapping channels (taken by reference, not
// copied: callers should not mutate it afterward) at the given sample
// rate. All channels must have equal length.
func New(channels [][]float32, sampleRate float64) *Shared {
	return &Shared{channels: channels, sampleRate: sampleRate, refs: 1}
}

// Channels returns the number of channels.
func (s *Shared) Channels() int { return len(s.channels) }

// Length returns the number of samples per channel, 0 if there are no
// channels.
func (s *Shared) Length() int {
	if len(s.channels) == 0 {
		return 0
	}
	return len(s.channels[0])
}

// SampleRate returns the sample rate the data was captured at.
func (s *Shared) SampleRate() float64 { return s.sampleRate }

// At returns the sample at the given channel and index.
func (s *Shared) At(channel, index int) float32 {
	return s.channels[channel][index]
}

// Retain increments the reference count, returning s for chaining.
func (s *Shared) Retain() *Shared {
	atomic.AddInt32(&s.refs, 1)
	return s
}

// Release decrements the reference count, returning true if this was
// the last reference. Callers that track lifetime explicitly (e.g. a
// sample library evicting unused waves) can use this to know when a
// Shared's backing array may be dropped; Shared itself does not free
// anything, since Go is garbage collected.
func (s *Shared) Release() bool {
	return atomic.AddInt32(&s.refs, -1) == 0
}
