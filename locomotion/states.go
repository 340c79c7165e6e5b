package locomotion

import "fmt"

// StateID names a locomotion state.
type StateID int

const (
	StateIdle StateID = iota
	StateWalk
	StateRun
	StateJump
	StateFall

	stateCount
)

var stateNames = [stateCount]string{
	StateIdle: "idle",
	StateWalk: "walk",
	StateRun:  "run",
	StateJump: "jump",
	StateFall: "fall",
}

func (id StateID) String() string {
	if id < 0 || id >= stateCount {
		return fmt.Sprintf("state(%d)", int(id))
	}
	return stateNames[id]
}

// Airborne reports whether the state treats the body as off the ground.
func (id StateID) Airborne() bool {
	return id == StateJump || id == StateFall
}

// AllStates lists every state in declaration order.
func AllStates() []StateID {
	return []StateID{StateIdle, StateWalk, StateRun, StateJump, StateFall}
}

// State is one node of the locomotion machine. HandleInput checks the
// input-driven transitions, Update the ground and velocity driven ones.
type State interface {
	ID() StateID
	Enter(c *Context)
	Exit(c *Context)
	HandleInput(c *Context)
	Update(c *Context)
}

// State singletons (transitions never allocate).
var states = [stateCount]State{
	StateIdle: idleState{},
	StateWalk: walkState{},
	StateRun:  runState{},
	StateJump: jumpState{},
	StateFall: fallState{},
}

type idleState struct{}

type walkState struct{}

type runState struct{}

type jumpState struct{}

type fallState struct{}

// groundedInput is shared by Idle, Walk and Run. A jump request wins over
// any movement change.
func groundedInput(c *Context, self StateID) {
	if c.jumpPressed && c.grounded {
		c.ChangeState(StateJump)
		return
	}
	next := StateIdle
	if c.movementPressed {
		next = StateWalk
		if c.runPressed {
			next = StateRun
		}
	}
	if next != self {
		c.ChangeState(next)
	}
}

func groundedUpdate(c *Context) {
	if c.cfg.FallFromLedges && !c.grounded {
		c.ChangeState(StateFall)
	}
}

func (idleState) ID() StateID { return StateIdle }
func (idleState) Enter(c *Context) {
	c.setLocomotion(0, false, false)
}
func (idleState) Exit(c *Context)        {}
func (idleState) HandleInput(c *Context) { groundedInput(c, StateIdle) }
func (idleState) Update(c *Context)      { groundedUpdate(c) }

func (walkState) ID() StateID { return StateWalk }
func (walkState) Enter(c *Context) {
	c.setLocomotion(c.cfg.WalkSpeed, true, false)
}
func (walkState) Exit(c *Context)        {}
func (walkState) HandleInput(c *Context) { groundedInput(c, StateWalk) }
func (walkState) Update(c *Context)      { groundedUpdate(c) }

func (runState) ID() StateID { return StateRun }
func (runState) Enter(c *Context) {
	c.setLocomotion(c.cfg.RunSpeed, false, true)
}
func (runState) Exit(c *Context)        {}
func (runState) HandleInput(c *Context) { groundedInput(c, StateRun) }
func (runState) Update(c *Context)      { groundedUpdate(c) }

func (jumpState) ID() StateID { return StateJump }
func (jumpState) Enter(c *Context) {
	c.armJump()
	airborneInput(c)
}
func (jumpState) Exit(c *Context) {}
func (jumpState) HandleInput(c *Context) {
	airborneInput(c)
}
func (jumpState) Update(c *Context) {
	if c.verticalVelocity <= 0 {
		c.ChangeState(StateFall)
	}
}

func (fallState) ID() StateID { return StateFall }
func (fallState) Enter(c *Context) {
	c.falling = true
	airborneInput(c)
}
func (fallState) Exit(c *Context) {
	c.jumping = false
	c.falling = false
}
func (fallState) HandleInput(c *Context) {
	airborneInput(c)
}
func (fallState) Update(c *Context) {
	if !c.grounded || c.jumpPressed {
		return
	}
	switch {
	case !c.movementPressed:
		c.ChangeState(StateIdle)
	case c.runPressed:
		c.ChangeState(StateRun)
	default:
		c.ChangeState(StateWalk)
	}
}

// airborneInput keeps the walk/run flags cleared while no movement is held.
func airborneInput(c *Context) {
	if !c.movementPressed {
		c.walking = false
		c.running = false
	}
}
