package locomotion

import (
	"fmt"
	"math"
)

// Phase classifies a vertical integration step.
type Phase int

const (
	PhaseGrounded Phase = iota
	PhaseFalling
	PhaseRising
)

func (p Phase) String() string {
	switch p {
	case PhaseGrounded:
		return "grounded"
	case PhaseFalling:
		return "falling"
	case PhaseRising:
		return "rising"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DeriveJump returns the gravity and takeoff velocity of a parabola that
// peaks at height after time/2 seconds.
func DeriveJump(height, time float64) (gravity, initialVelocity float64, err error) {
	if !(height > 0) || math.IsInf(height, 0) {
		return 0, 0, ErrNonPositiveJumpHeight
	}
	if !(time > 0) || math.IsInf(time, 0) {
		return 0, 0, ErrNonPositiveJumpTime
	}
	timeToApex := time / 2
	gravity = -2 * height / (timeToApex * timeToApex)
	initialVelocity = 2 * height / timeToApex
	return gravity, initialVelocity, nil
}

// Integrator advances vertical velocity with average-velocity integration.
type Integrator struct {
	gravity             float64
	initialJumpVelocity float64
	groundedGravity     float64
	fallMultiplier      float64
	terminalFallSpeed   float64
	holdJump            bool
}

// NewIntegrator validates cfg and derives gravity and jump velocity from it.
func NewIntegrator(cfg Config) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("locomotion: new integrator: %w", err)
	}
	g, v0, err := DeriveJump(cfg.MaxJumpHeight, cfg.MaxJumpTime)
	if err != nil {
		return nil, fmt.Errorf("locomotion: new integrator: %w", err)
	}
	return &Integrator{
		gravity:             g,
		initialJumpVelocity: v0,
		groundedGravity:     cfg.GroundedGravity,
		fallMultiplier:      cfg.FallMultiplier,
		terminalFallSpeed:   cfg.TerminalFallSpeed,
		holdJump:            cfg.HoldJumpMode,
	}, nil
}

func (in *Integrator) Gravity() float64             { return in.gravity }
func (in *Integrator) InitialJumpVelocity() float64 { return in.initialJumpVelocity }
func (in *Integrator) GroundedGravity() float64     { return in.groundedGravity }

// Classify picks the branch for a step. In hold-to-jump mode releasing the
// button before the apex switches to the falling branch.
func (in *Integrator) Classify(grounded bool, v0 float64, jumpPressed bool) Phase {
	switch {
	case grounded:
		return PhaseGrounded
	case v0 <= 0 || (in.holdJump && !jumpPressed):
		return PhaseFalling
	default:
		return PhaseRising
	}
}

// Step returns the velocity at the end of the step and the vertical velocity
// to apply over it.
func (in *Integrator) Step(phase Phase, v0, dt float64) (v1, applied float64) {
	switch phase {
	case PhaseGrounded:
		return in.groundedGravity, in.groundedGravity
	case PhaseFalling:
		v1 = v0 + in.gravity*in.fallMultiplier*dt
		return v1, math.Max((v0+v1)*0.5, -in.terminalFallSpeed)
	default:
		v1 = v0 + in.gravity*dt
		return v1, (v0 + v1) * 0.5
	}
}

// Integrate runs one step against the context and fills in the applied
// movement. A freshly armed jump integrates as airborne even while the
// ground probe still reports contact.
func (in *Integrator) Integrate(c *Context, dt float64) Phase {
	grounded := c.grounded && !c.jumpArmed
	c.jumpArmed = false

	phase := in.Classify(grounded, c.verticalVelocity, c.jumpPressed)
	v1, applied := in.Step(phase, c.verticalVelocity, dt)
	c.verticalVelocity = v1

	c.applied[0] = c.movement[0] * c.speed
	c.applied[1] = applied
	c.applied[2] = c.movement[2] * c.speed
	c.displacement = c.applied.Mul(dt)
	return phase
}
