package locomotion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/locomotion/common"
)

// Variant selects how the tick pipeline is split between the variable-rate
// and fixed-rate callbacks.
type Variant int

const (
	// VariantCharacterController runs the whole pipeline on the variable tick.
	VariantCharacterController Variant = iota
	// VariantRigidbody integrates and moves the body on the fixed tick.
	VariantRigidbody
)

func (v Variant) String() string {
	switch v {
	case VariantCharacterController:
		return "character-controller"
	case VariantRigidbody:
		return "rigidbody"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant accepts the names produced by Variant.String, plus the short
// forms "cc" and "rb".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "character-controller", "charactercontroller", "cc":
		return VariantCharacterController, nil
	case "rigidbody", "rigid-body", "rb":
		return VariantRigidbody, nil
	default:
		return 0, fmt.Errorf("locomotion: unknown variant %q", s)
	}
}

// Config holds the tuning surface of a controller. All values are in meters
// and seconds.
type Config struct {
	WalkSpeed              float64
	RunSpeed               float64
	MaxJumpHeight          float64
	MaxJumpTime            float64
	RotationFactorPerFrame float64
	HoldJumpMode           bool
	FallMultiplier         float64
	GroundedGravity        float64
	TerminalFallSpeed      float64

	// JumpVelocityScale multiplies the derived initial jump velocity when a
	// jump is armed. 0.5 reproduces the half-velocity takeoff.
	JumpVelocityScale float64
	// ClampRotation caps the slerp factor at 1 so a single tick never turns
	// past the heading.
	ClampRotation bool
	// FallFromLedges lets grounded states drop into Fall when ground is lost.
	FallFromLedges bool

	Variant       Variant
	FixedTimestep float64
}

// DefaultConfig returns the stock tuning: a 2 m jump peaking after 0.35 s.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:              4,
		RunSpeed:               8,
		MaxJumpHeight:          2.0,
		MaxJumpTime:            0.7,
		RotationFactorPerFrame: 5,
		HoldJumpMode:           false,
		FallMultiplier:         2,
		GroundedGravity:        -0.05,
		TerminalFallSpeed:      10,
		JumpVelocityScale:      1,
		Variant:                VariantCharacterController,
		FixedTimestep:          1.0 / 50.0,
	}
}

// SameHost reports whether o runs on the same host setup as c. Variant and
// FixedTimestep are chosen when the body and scheduler are built.
func (c Config) SameHost(o Config) bool {
	return c.Variant == o.Variant && c.FixedTimestep == o.FixedTimestep
}

// Validate reports every violated constraint joined into one error.
func (c Config) Validate() error {
	var errs []error
	if !(c.MaxJumpHeight > 0) || !common.Finite(c.MaxJumpHeight) {
		errs = append(errs, ErrNonPositiveJumpHeight)
	}
	if !(c.MaxJumpTime > 0) || !common.Finite(c.MaxJumpTime) {
		errs = append(errs, ErrNonPositiveJumpTime)
	}
	if !nonNegative(c.WalkSpeed) || !nonNegative(c.RunSpeed) {
		errs = append(errs, ErrInvalidSpeed)
	}
	if !nonNegative(c.RotationFactorPerFrame) {
		errs = append(errs, ErrInvalidRotationFactor)
	}
	if !(c.FallMultiplier > 0) || !common.Finite(c.FallMultiplier) {
		errs = append(errs, ErrInvalidFallMultiplier)
	}
	if !(c.TerminalFallSpeed > 0) {
		errs = append(errs, ErrInvalidTerminalSpeed)
	}
	if c.GroundedGravity > 0 || !common.Finite(c.GroundedGravity) {
		errs = append(errs, ErrPositiveGroundedGravity)
	}
	if !(c.JumpVelocityScale > 0) || !common.Finite(c.JumpVelocityScale) {
		errs = append(errs, ErrInvalidJumpScale)
	}
	if c.Variant == VariantRigidbody && (!(c.FixedTimestep > 0) || !common.Finite(c.FixedTimestep)) {
		errs = append(errs, ErrInvalidTimestep)
	}
	return errors.Join(errs...)
}

func nonNegative(v float64) bool {
	return v >= 0 && common.Finite(v)
}
