package mutable

import "context"

type (
	// Pusher batches mutations by their target Context and delivers
	// each batch to the destination channel registered for that
	// context, one destination per target object.
	Pusher struct {
		destinations map[Context]Destination
		mutations    map[Destination]Mutations
	}

	// Destination is a channel that used as source of mutations.
	Destination chan Mutations
)

// NewPusher creates new pusher.
func NewPusher() Pusher {
	return Pusher{
		destinations: make(map[Context]Destination),
		mutations:    make(map[Destination]Mutations),
	}
}

// AddDestination adds new mapping of mutable context to destination.
func (p Pusher) AddDestination(ctx Context, mc chan Mutations) {
	p.destinations[ctx] = mc
}

func NewDestination() Destination {
	return make(chan Mutations, 1)
}

// Destination returns the destination registered for ctx. If none is
// registered yet, it returns a fresh, unregistered one and false; the
// caller must still AddDestination it before Put will accept mutations
// against ctx.
func (p Pusher) Destination(ctx Context) (d Destination, ok bool) {
	if d, ok = p.destinations[ctx]; !ok {
		d = NewDestination()
	}
	return
}

// Put mutations to the pusher. Function will panic if pusher contains
// unknown context.
func (p Pusher) Put(mutations ...Mutation) {
	for _, m := range mutations {
		if d, ok := p.destinations[m.Context]; ok {
			p.mutations[d] = p.mutations[d].Put(m)
			continue
		}
		panic("unknown mutable context")
	}
}

// Push mutations to the destinations.
func (p Pusher) Push(ctx context.Context) {
	for c, m := range p.mutations {
		if m != nil {
			select {
			case c <- m:
				p.mutations[c] = nil
			case <-ctx.Done():
				return
			}
		}
	}
}
