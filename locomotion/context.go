package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Context is the blackboard shared by the states of one machine. States
// mutate it only through the methods below.
type Context struct {
	cfg         Config
	integrator  *Integrator
	orientation Orientation

	movement        mgl64.Vec3
	movementPressed bool
	runPressed      bool
	jumpPressed     bool
	grounded        bool

	verticalVelocity float64
	speed            float64
	applied          mgl64.Vec3
	displacement     mgl64.Vec3

	jumping   bool
	walking   bool
	running   bool
	falling   bool
	jumpArmed bool

	machine *Machine
}

func newContext(cfg Config, integrator *Integrator) *Context {
	return &Context{
		cfg:              cfg,
		integrator:       integrator,
		orientation:      NewOrientation(cfg),
		verticalVelocity: cfg.GroundedGravity,
	}
}

// NewContext builds a standalone context, useful when driving a Machine
// without a Controller.
func NewContext(cfg Config) (*Context, error) {
	in, err := NewIntegrator(cfg)
	if err != nil {
		return nil, err
	}
	return newContext(cfg, in), nil
}

func (c *Context) Config() Config               { return c.cfg }
func (c *Context) Integrator() *Integrator      { return c.integrator }
func (c *Context) Movement() mgl64.Vec3         { return c.movement }
func (c *Context) MovementPressed() bool        { return c.movementPressed }
func (c *Context) RunPressed() bool             { return c.runPressed }
func (c *Context) JumpPressed() bool            { return c.jumpPressed }
func (c *Context) Grounded() bool               { return c.grounded }
func (c *Context) VerticalVelocity() float64    { return c.verticalVelocity }
func (c *Context) Speed() float64               { return c.speed }
func (c *Context) Applied() mgl64.Vec3          { return c.applied }
func (c *Context) Displacement() mgl64.Vec3     { return c.displacement }
func (c *Context) Jumping() bool                { return c.jumping }
func (c *Context) Walking() bool                { return c.walking }
func (c *Context) Running() bool                { return c.running }
func (c *Context) Falling() bool                { return c.falling }
func (c *Context) Gravity() float64             { return c.integrator.Gravity() }
func (c *Context) InitialJumpVelocity() float64 { return c.integrator.InitialJumpVelocity() }

// SetInput stores a sample. Grounded is queried from the host each tick.
func (c *Context) SetInput(s Sample) {
	c.movement = s.Movement
	c.movementPressed = s.MovementPressed
	c.runPressed = s.RunPressed
	c.jumpPressed = s.JumpPressed
}

func (c *Context) SetGrounded(grounded bool) { c.grounded = grounded }

// SetVerticalVelocity overrides the vertical velocity, for hosts that reset
// a character after a teleport.
func (c *Context) SetVerticalVelocity(v float64) { c.verticalVelocity = v }

// ChangeState asks the owning machine to switch to id.
func (c *Context) ChangeState(id StateID) {
	if c.machine != nil {
		c.machine.changeState(id)
	}
}

func (c *Context) setLocomotion(speed float64, walking, running bool) {
	c.speed = speed
	c.walking = walking
	c.running = running
}

// armJump sets the takeoff velocity. The next integration treats the body as
// airborne regardless of the ground probe.
func (c *Context) armJump() {
	v := c.integrator.InitialJumpVelocity() * c.cfg.JumpVelocityScale
	c.verticalVelocity = v
	c.applied[1] = v
	c.jumping = true
	c.jumpArmed = true
}

func (c *Context) reconfigure(cfg Config, integrator *Integrator) {
	c.cfg = cfg
	c.integrator = integrator
	c.orientation = NewOrientation(cfg)
}
