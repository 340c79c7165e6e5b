package ecs

import "github.com/milk9111/locomotion/locomotion"

// TransitionEvent records a locomotion state change of one entity.
type TransitionEvent struct {
	Entity Entity
	From   locomotion.StateID
	To     locomotion.StateID
	Tick   uint64
}

// EventQueue is a FIFO of transition events, flushed after every scheduler
// update.
type EventQueue struct {
	items []TransitionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt TransitionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns the queued events without clearing them.
func (q *EventQueue) Pending() []TransitionEvent {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
