package locomotion

import (
	"github.com/sirupsen/logrus"
)

// TransitionFunc observes a state change.
type TransitionFunc func(from, to StateID)

// Machine drives one character's states over a shared Context.
type Machine struct {
	ctx     *Context
	current State
	pending State
	hasNext bool

	tick        uint64
	transitions uint64
	hooks       []TransitionFunc
	log         logrus.FieldLogger
}

// NewMachine binds a machine to ctx and enters Idle.
func NewMachine(ctx *Context, log logrus.FieldLogger) *Machine {
	m := &Machine{
		ctx:     ctx,
		current: states[StateIdle],
		log:     orDiscard(log),
	}
	ctx.machine = m
	m.current.Enter(ctx)
	return m
}

func (m *Machine) Current() StateID        { return m.current.ID() }
func (m *Machine) Context() *Context       { return m.ctx }
func (m *Machine) Tick() uint64            { return m.tick }
func (m *Machine) TransitionCount() uint64 { return m.transitions }
func (m *Machine) OnTransition(fn TransitionFunc) {
	if fn != nil {
		m.hooks = append(m.hooks, fn)
	}
}

// Update runs the current state for one tick. At most one transition is
// taken; the new state's entry runs before Update returns so its side
// effects apply to this tick's integration.
func (m *Machine) Update() {
	m.tick++
	m.current.HandleInput(m.ctx)
	if m.applyPending() {
		return
	}
	m.current.Update(m.ctx)
	m.applyPending()
}

// changeState records the first request of the tick.
func (m *Machine) changeState(id StateID) {
	if m.hasNext || id < 0 || id >= stateCount {
		return
	}
	m.pending = states[id]
	m.hasNext = true
}

func (m *Machine) applyPending() bool {
	if !m.hasNext {
		return false
	}
	next := m.pending
	m.pending = nil
	m.hasNext = false
	if next == m.current {
		return false
	}

	from := m.current.ID()
	m.current.Exit(m.ctx)
	m.current = next
	m.current.Enter(m.ctx)
	m.transitions++

	m.log.WithFields(logrus.Fields{
		"from": from.String(),
		"to":   next.ID().String(),
		"tick": m.tick,
	}).Debug("locomotion: transition")
	for _, fn := range m.hooks {
		fn(from, next.ID())
	}
	return true
}
