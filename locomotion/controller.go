package locomotion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/locomotion/common"
)

// Body is the host-owned character the controller moves.
type Body interface {
	Grounded() bool
	// ApplyDisplacement moves the body by d. The host resolves collisions.
	ApplyDisplacement(d mgl64.Vec3)
	Facing() mgl64.Quat
	SetFacing(q mgl64.Quat)
}

// Animator receives the boolean animation parameters.
type Animator interface {
	SetBool(name string, value bool)
}

// Animation parameter names.
const (
	ParamWalking = "IsWalking"
	ParamRunning = "IsRunning"
	ParamJumping = "IsJumping"
	ParamFalling = "IsFalling"
)

// Option customizes a Controller at construction.
type Option func(*Controller)

// WithAnimator sets the sink for the walking, running, jumping and falling flags.
func WithAnimator(a Animator) Option {
	return func(c *Controller) { c.animator = a }
}

// WithLogger sets the logger. Without one the controller logs nothing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller runs the per-tick pipeline for one character: sample input,
// orient, update the state machine, integrate, move, animate.
type Controller struct {
	cfg      Config
	input    InputSource
	body     Body
	animator Animator
	log      logrus.FieldLogger

	ctx     *Context
	machine *Machine
	sample  Sample
}

// NewController validates cfg and starts the machine in Idle.
func NewController(cfg Config, input InputSource, body Body, opts ...Option) (*Controller, error) {
	if input == nil {
		return nil, fmt.Errorf("locomotion: new controller: %w", ErrNilInput)
	}
	if body == nil {
		return nil, fmt.Errorf("locomotion: new controller: %w", ErrNilBody)
	}
	ctx, err := NewContext(cfg)
	if err != nil {
		return nil, err
	}

	c := &Controller{cfg: cfg, input: input, body: body}
	for _, opt := range opts {
		opt(c)
	}
	c.log = orDiscard(c.log)
	c.ctx = ctx
	c.machine = NewMachine(ctx, c.log)
	return c, nil
}

func (c *Controller) Config() Config         { return c.cfg }
func (c *Controller) Variant() Variant       { return c.cfg.Variant }
func (c *Controller) Context() *Context      { return c.ctx }
func (c *Controller) Machine() *Machine      { return c.machine }
func (c *Controller) State() StateID         { return c.machine.Current() }
func (c *Controller) Sample() Sample         { return c.sample }
func (c *Controller) Body() Body             { return c.body }
func (c *Controller) Animator() Animator     { return c.animator }
func (c *Controller) SetAnimator(a Animator) { c.animator = a }

// Update is the variable-rate tick. With the rigidbody variant integration
// and movement are left to FixedUpdate.
func (c *Controller) Update(dt float64) {
	if !validDelta(dt) {
		return
	}
	c.SampleInput()
	c.Orient(dt)
	c.Step()
	if c.cfg.Variant == VariantCharacterController {
		c.Integrate(dt)
		c.Move()
	}
	c.Animate()
}

// FixedUpdate is the fixed-rate tick. It does nothing for the
// character-controller variant.
func (c *Controller) FixedUpdate(dt float64) {
	if c.cfg.Variant != VariantRigidbody || !validDelta(dt) {
		return
	}
	c.Integrate(dt)
	c.Move()
}

func (c *Controller) SampleInput() Sample {
	c.sample = SampleInput(c.input)
	c.ctx.SetInput(c.sample)
	return c.sample
}

func (c *Controller) Orient(dt float64) {
	if !c.sample.MovementPressed {
		return
	}
	c.body.SetFacing(c.ctx.orientation.Step(c.body.Facing(), c.sample, dt))
}

// Step queries the ground probe and advances the state machine.
func (c *Controller) Step() {
	c.ctx.SetGrounded(c.body.Grounded())
	c.machine.Update()
}

func (c *Controller) Integrate(dt float64) Phase {
	c.ctx.SetGrounded(c.body.Grounded())
	return c.ctx.integrator.Integrate(c.ctx, dt)
}

func (c *Controller) Move() {
	c.body.ApplyDisplacement(c.ctx.displacement)
}

// Animate pushes the four flags. Without an animator it does nothing.
func (c *Controller) Animate() {
	if c.animator == nil {
		return
	}
	c.animator.SetBool(ParamWalking, c.ctx.walking)
	c.animator.SetBool(ParamRunning, c.ctx.running)
	c.animator.SetBool(ParamJumping, c.ctx.jumping)
	c.animator.SetBool(ParamFalling, c.ctx.falling)
}

// Reconfigure swaps the tuning without resetting state or velocity. An
// invalid config is rejected and the current one kept. Variant and
// FixedTimestep stay as constructed; changing them needs a new controller
// on a matching body.
func (c *Controller) Reconfigure(cfg Config) error {
	if !cfg.SameHost(c.cfg) {
		c.log.WithFields(logrus.Fields{
			"variant":        cfg.Variant.String(),
			"fixed_timestep": cfg.FixedTimestep,
		}).Warn("locomotion: host settings need a rebuild, keeping current")
		cfg.Variant = c.cfg.Variant
		cfg.FixedTimestep = c.cfg.FixedTimestep
	}
	in, err := NewIntegrator(cfg)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.ctx.reconfigure(cfg, in)
	switch c.machine.Current() {
	case StateWalk:
		c.ctx.speed = cfg.WalkSpeed
	case StateRun:
		c.ctx.speed = cfg.RunSpeed
	}
	c.log.WithFields(logrus.Fields{
		"gravity":  in.Gravity(),
		"jump_vel": in.InitialJumpVelocity(),
		"variant":  cfg.Variant.String(),
	}).Info("locomotion: reconfigured")
	return nil
}

func validDelta(dt float64) bool {
	return dt > 0 && common.Finite(dt)
}
