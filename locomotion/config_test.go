package locomotion

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   []error
	}{
		{"zero_height", func(c *Config) { c.MaxJumpHeight = 0 }, []error{ErrNonPositiveJumpHeight}},
		{"negative_time", func(c *Config) { c.MaxJumpTime = -1 }, []error{ErrNonPositiveJumpTime}},
		{"nan_height", func(c *Config) { c.MaxJumpHeight = math.NaN() }, []error{ErrNonPositiveJumpHeight}},
		{"negative_walk", func(c *Config) { c.WalkSpeed = -1 }, []error{ErrInvalidSpeed}},
		{"inf_run", func(c *Config) { c.RunSpeed = math.Inf(1) }, []error{ErrInvalidSpeed}},
		{"zero_fall_multiplier", func(c *Config) { c.FallMultiplier = 0 }, []error{ErrInvalidFallMultiplier}},
		{"zero_terminal", func(c *Config) { c.TerminalFallSpeed = 0 }, []error{ErrInvalidTerminalSpeed}},
		{"positive_grounded_gravity", func(c *Config) { c.GroundedGravity = 0.1 }, []error{ErrPositiveGroundedGravity}},
		{"negative_rotation", func(c *Config) { c.RotationFactorPerFrame = -5 }, []error{ErrInvalidRotationFactor}},
		{"zero_jump_scale", func(c *Config) { c.JumpVelocityScale = 0 }, []error{ErrInvalidJumpScale}},
		{"rigidbody_zero_timestep", func(c *Config) {
			c.Variant = VariantRigidbody
			c.FixedTimestep = 0
		}, []error{ErrInvalidTimestep}},
		{"both_jump_params", func(c *Config) {
			c.MaxJumpHeight = 0
			c.MaxJumpTime = 0
		}, []error{ErrNonPositiveJumpHeight, ErrNonPositiveJumpTime}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			for _, want := range c.want {
				if !errors.Is(err, want) {
					t.Fatalf("expected %v in %v", want, err)
				}
			}
		})
	}
}

func TestCharacterControllerIgnoresTimestep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FixedTimestep = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("timestep is only checked for the rigidbody variant, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	cases := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", VariantCharacterController, false},
		{"character-controller", VariantCharacterController, false},
		{"CC", VariantCharacterController, false},
		{"rigidbody", VariantRigidbody, false},
		{" rb ", VariantRigidbody, false},
		{"hover", 0, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseVariant(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if back, _ := ParseVariant(got.String()); back != got {
				t.Fatalf("String round trip failed for %v", got)
			}
		})
	}
}
