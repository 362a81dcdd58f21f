// Package sequencer implements the event-scheduling layer (C6): nodes
// with a start time, end time, and fade envelope are pushed onto a
// timeline and summed into a fixed-arity output as the stream advances.
// Structured as a frontend/backend split identical in shape to the
// dynamic network's, reusing the same internal/mailbox commit handoff
// since both components share the same publish-wholesale-on-commit
// shape.
package sequencer

import (
	"fmt"
	"sort"
	"sync"

	graph "github.com/loomaudio/graph"
	"github.com/loomaudio/graph/dynamic"
	"github.com/loomaudio/graph/internal/bufpool"
	"github.com/loomaudio/graph/internal/errs"
	"github.com/loomaudio/graph/internal/mailbox"
)

// Sequencer is the mutating frontend: Push/PushRelative/Edit/Remove may
// be called from any single goroutine; Commit publishes the current
// event set to the paired Backend.
type Sequencer struct {
	mu sync.Mutex

	nOut       int
	sampleRate float64
	nextID     uint64
	events     map[uint64]*eventSpec

	clock *clock
	box   *mailbox.Mailbox[snapshot]
}

// New returns an empty sequencer producing nOut channels.
func New(nOut int) *Sequencer {
	return &Sequencer{
		nOut:       nOut,
		sampleRate: graph.DefaultSampleRate,
		events:     make(map[uint64]*eventSpec),
		clock:      &clock{},
		box:        &mailbox.Mailbox[snapshot]{},
	}
}

// Backend returns the render-side counterpart of s.
func (s *Sequencer) Backend() *Backend {
	return newBackend(s.box, s.clock, s.nOut)
}

// SetSampleRate records the sample rate used to convert the second-
// denominated arguments of Push/PushRelative/Edit into sample counts,
// and marks every tracked event for re-initialization of its node.
func (s *Sequencer) SetSampleRate(sr float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sampleRate = sr
	for _, e := range s.events {
		e.initialized = false
	}
}

func (s *Sequencer) toSamples(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(seconds*s.sampleRate + 0.5)
}

// Push schedules node to render from startSeconds to endSeconds
// (absolute stream time), fading in over fadeInSeconds and out over
// fadeOutSeconds using curve (nil defaults to dynamic.LinearCurve). It
// returns a stable id valid until the event completes or is removed.
func (s *Sequencer) Push(startSeconds, endSeconds, fadeInSeconds, fadeOutSeconds float64, curve dynamic.Curve, node graph.Node) (uint64, error) {
	if node.Outputs() != s.nOut {
		return 0, fmt.Errorf("sequencer: push: node has %d outputs, sequencer has %d", node.Outputs(), s.nOut)
	}
	if endSeconds < startSeconds {
		return 0, fmt.Errorf("sequencer: push: end %v precedes start %v", endSeconds, startSeconds)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.events[id] = &eventSpec{
		node:    node,
		start:   s.toSamples(startSeconds),
		end:     s.toSamples(endSeconds),
		fadeIn:  s.toSamples(fadeInSeconds),
		fadeOut: s.toSamples(fadeOutSeconds),
		curve:   curve,
	}
	return id, nil
}

// PushRelative is Push with start resolved as the sequencer's current
// stream time plus delaySeconds.
func (s *Sequencer) PushRelative(delaySeconds, durationSeconds, fadeInSeconds, fadeOutSeconds float64, curve dynamic.Curve, node graph.Node) (uint64, error) {
	s.mu.Lock()
	now := float64(s.clock.now()) / s.sampleRate
	s.mu.Unlock()
	start := now + delaySeconds
	return s.Push(start, start+durationSeconds, fadeInSeconds, fadeOutSeconds, curve, node)
}

// Edit adjusts the end time and fade-out duration of a still-pending
// or in-flight event.
func (s *Sequencer) Edit(id uint64, newEndSeconds, newFadeOutSeconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return fmt.Errorf("sequencer: edit: event %d does not exist", id)
	}
	e.end = s.toSamples(newEndSeconds)
	e.fadeOut = s.toSamples(newFadeOutSeconds)
	return nil
}

// Remove cancels a pending or in-flight event immediately.
func (s *Sequencer) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
}

// Commit publishes the current event set, ascending by start time, to
// the paired Backend. Events whose end already lies at or before the
// sequencer's current stream time are dropped from the frontend too -
// reaping here (not only backend-side) keeps Push/Edit from
// accumulating garbage across a long session with no commits.
func (s *Sequencer) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()
	var agg errs.List
	ordered := make([]uint64, 0, len(s.events))
	for id, e := range s.events {
		if e.done(now) {
			delete(s.events, id)
			continue
		}
		if !e.initialized {
			hash := e.node.Ping(true, 0)
			e.node.Ping(false, hash)
			e.node.SetSampleRate(s.sampleRate)
			e.node.Allocate()
			e.node.Reset()
			e.initialized = true
		}
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return s.events[ordered[i]].start < s.events[ordered[j]].start
	})

	entries := make([]entry, len(ordered))
	for i, id := range ordered {
		e := s.events[id]
		in := bufpool.Get(maxInt(e.node.Inputs(), 1), graph.BlockSize)
		out := bufpool.Get(maxInt(e.node.Outputs(), 1), graph.BlockSize)
		entries[i] = entry{
			id:     id,
			spec:   e,
			input:  graph.BufferFromChannels(in.Data),
			output: graph.BufferFromChannels(out.Data),
		}
	}

	snap := snapshot{nOut: s.nOut, events: entries}
	s.box.Post(&snap)
	return agg.Err()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
