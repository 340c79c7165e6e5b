package locomotion

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/locomotion/common"
)

func newTestController(t *testing.T, cfg Config, in *fakeInput, body *fakeBody, opts ...Option) *Controller {
	t.Helper()
	c, err := NewController(cfg, in, body, opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func TestNewControllerErrors(t *testing.T) {
	bad := DefaultConfig()
	bad.MaxJumpHeight = -2

	cases := []struct {
		name  string
		cfg   Config
		input InputSource
		body  Body
		want  error
	}{
		{"nil_input", DefaultConfig(), nil, newFakeBody(), ErrNilInput},
		{"nil_body", DefaultConfig(), &fakeInput{}, nil, ErrNilBody},
		{"bad_config", bad, &fakeInput{}, newFakeBody(), ErrNonPositiveJumpHeight},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewController(c.cfg, c.input, c.body)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestIdleIsIdempotent(t *testing.T) {
	const dt = 1.0 / 60
	body := newFakeBody()
	c := newTestController(t, DefaultConfig(), &fakeInput{}, body)

	for i := 0; i < 10; i++ {
		c.Update(dt)
		if c.State() != StateIdle {
			t.Fatalf("tick %d: expected idle, got %v", i, c.State())
		}
		if c.Context().VerticalVelocity() != -0.05 {
			t.Fatalf("tick %d: velocity %v", i, c.Context().VerticalVelocity())
		}
		want := mgl64.Vec3{0, -0.05 * dt, 0}
		if got := c.Context().Displacement(); !vecApprox(got, want, 1e-12) {
			t.Fatalf("tick %d: displacement %v, want %v", i, got, want)
		}
	}
	if c.Machine().TransitionCount() != 0 {
		t.Fatalf("expected no transitions, got %d", c.Machine().TransitionCount())
	}
}

func TestWalkScenario(t *testing.T) {
	const dt = 0.02
	body := newFakeBody()
	c := newTestController(t, DefaultConfig(), &fakeInput{x: 1}, body)

	c.Update(dt)
	if c.State() != StateWalk {
		t.Fatalf("expected walk, got %v", c.State())
	}
	if c.Context().Speed() != 4 {
		t.Fatalf("expected speed 4, got %v", c.Context().Speed())
	}
	if d := c.Context().Displacement(); !common.ApproxEqual(d[0], 4*dt, 1e-12) || d[2] != 0 {
		t.Fatalf("unexpected displacement %v", d)
	}
	if len(body.moves) != 1 {
		t.Fatalf("expected one move, got %d", len(body.moves))
	}
}

func TestJumpScenario(t *testing.T) {
	body := newFakeBody()
	c := newTestController(t, DefaultConfig(), &fakeInput{jump: true}, body)

	c.SampleInput()
	c.Step()
	if c.State() != StateJump {
		t.Fatalf("expected jump, got %v", c.State())
	}
	v0 := c.Context().InitialJumpVelocity()
	if !common.ApproxEqual(v0, 11.4286, 1e-3) {
		t.Fatalf("initial jump velocity %v", v0)
	}
	if c.Context().VerticalVelocity() != v0 {
		t.Fatalf("expected armed velocity %v, got %v", v0, c.Context().VerticalVelocity())
	}

	// The probe still reports ground on takeoff; the step must still rise.
	if phase := c.Integrate(0.02); phase != PhaseRising {
		t.Fatalf("takeoff should integrate as rising, got %v", phase)
	}
	if c.Context().Displacement()[1] <= 0 {
		t.Fatalf("takeoff displacement should be upward, got %v", c.Context().Displacement())
	}
}

func TestJumpArc(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		time   float64
		dt     float64
	}{
		{"default", 2.0, 0.7, 1.0 / 240},
		{"low", 0.75, 0.4, 1.0 / 120},
		{"high", 4, 1.5, 1.0 / 240},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MaxJumpHeight = tc.height
			cfg.MaxJumpTime = tc.time
			cfg.FallMultiplier = 1
			cfg.TerminalFallSpeed = math.Inf(1)

			in := &fakeInput{jump: true}
			body := newFloorBody()
			c := newTestController(t, cfg, in, body)

			peak := 0.0
			airborne := 0
			left := false
			for i := 0; i < 100000; i++ {
				c.Update(tc.dt)
				in.jump = false
				if body.pos[1] > 0 {
					left = true
					airborne++
					peak = math.Max(peak, body.pos[1])
				}
				if left && c.State() == StateIdle {
					break
				}
			}
			if !left || c.State() != StateIdle {
				t.Fatalf("jump never completed, state=%v", c.State())
			}
			if !common.ApproxEqual(peak, tc.height, 1e-3) {
				t.Fatalf("peak %v, want %v", peak, tc.height)
			}
			airtime := float64(airborne) * tc.dt
			if !common.ApproxEqual(airtime, tc.time, 1.5*tc.dt) {
				t.Fatalf("airtime %v, want %v", airtime, tc.time)
			}
		})
	}
}

func TestHoldJumpHeight(t *testing.T) {
	const dt = 1.0 / 240
	cases := []struct {
		name string
		hold float64
		peak func(peak, height float64) bool
	}{
		{"early_release", 0.04, func(p, h float64) bool { return p < 0.8*h }},
		{"held_past_apex", 0.5, func(p, h float64) bool { return common.ApproxEqual(p, h, 1e-2) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.HoldJumpMode = true

			in := &fakeInput{jump: true}
			body := newFloorBody()
			c := newTestController(t, cfg, in, body)

			peak := 0.0
			left := false
			for i := 0; i < 10000; i++ {
				if float64(i)*dt >= tc.hold {
					in.jump = false
				}
				c.Update(dt)
				if body.pos[1] > 0 {
					left = true
					peak = math.Max(peak, body.pos[1])
				}
				if left && c.State() == StateIdle {
					break
				}
			}
			if !left || c.State() != StateIdle {
				t.Fatalf("jump never completed, state=%v", c.State())
			}
			if !tc.peak(peak, cfg.MaxJumpHeight) {
				t.Fatalf("peak %v with jump held %vs, max height %v", peak, tc.hold, cfg.MaxJumpHeight)
			}
		})
	}
}

func TestJumpHeldAfterLanding(t *testing.T) {
	cfg := DefaultConfig()
	in := &fakeInput{jump: true}
	body := newFloorBody()
	c := newTestController(t, cfg, in, body)

	for i := 0; i < 1000 && (c.State() != StateFall || body.pos[1] > 0); i++ {
		c.Update(1.0 / 60)
	}
	if c.State() != StateFall || body.pos[1] != 0 {
		t.Fatalf("expected to land in fall, state=%v y=%v", c.State(), body.pos[1])
	}

	// Holding jump keeps the machine in Fall on the ground.
	c.Update(1.0 / 60)
	if c.State() != StateFall {
		t.Fatalf("expected fall while jump held, got %v", c.State())
	}
	if c.Context().VerticalVelocity() != cfg.GroundedGravity {
		t.Fatalf("expected grounded gravity, got %v", c.Context().VerticalVelocity())
	}

	in.jump = false
	c.Update(1.0 / 60)
	if c.State() != StateIdle {
		t.Fatalf("expected idle after release, got %v", c.State())
	}
}

func TestWalkRunExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := &fakeInput{}
	body := newFloorBody()
	c := newTestController(t, DefaultConfig(), in, body)

	axes := []float64{-1, 0, 0, 0.5, 1}
	for i := 0; i < 5000; i++ {
		in.x = axes[rng.Intn(len(axes))]
		in.z = axes[rng.Intn(len(axes))]
		in.run = rng.Intn(2) == 0
		in.jump = rng.Intn(10) == 0
		c.Update(1.0 / 60)

		ctx := c.Context()
		if ctx.Walking() && ctx.Running() {
			t.Fatalf("tick %d: walking and running both set", i)
		}
		if !ctx.MovementPressed() && (ctx.Walking() || ctx.Running()) {
			t.Fatalf("tick %d: locomotion flag set without movement", i)
		}
		if c.State() == StateWalk && ctx.Speed() != 4 || c.State() == StateRun && ctx.Speed() != 8 {
			t.Fatalf("tick %d: state %v with speed %v", i, c.State(), ctx.Speed())
		}
	}
}

func TestAnimate(t *testing.T) {
	t.Run("pushes_flags", func(t *testing.T) {
		anim := newRecordingAnimator()
		c := newTestController(t, DefaultConfig(), &fakeInput{x: 1, run: true}, newFakeBody(), WithAnimator(anim))
		c.Update(1.0 / 60)
		want := map[string]bool{ParamWalking: false, ParamRunning: true, ParamJumping: false, ParamFalling: false}
		for k, v := range want {
			got, ok := anim.values[k]
			if !ok || got != v {
				t.Fatalf("%s=%v (set=%v), want %v", k, got, ok, v)
			}
		}
		if anim.calls != 4 {
			t.Fatalf("expected 4 calls, got %d", anim.calls)
		}
	})

	t.Run("no_animator", func(t *testing.T) {
		body := newFakeBody()
		c := newTestController(t, DefaultConfig(), &fakeInput{x: 1}, body)
		c.Update(1.0 / 60)
		if c.State() != StateWalk || len(body.moves) != 1 {
			t.Fatalf("locomotion should proceed without an animator, state=%v moves=%d", c.State(), len(body.moves))
		}
	})
}

func TestVariants(t *testing.T) {
	const dt = 1.0 / 50

	t.Run("rigidbody_moves_on_fixed_tick", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Variant = VariantRigidbody
		body := newFakeBody()
		c := newTestController(t, cfg, &fakeInput{x: 1}, body)

		c.Update(dt)
		if len(body.moves) != 0 {
			t.Fatalf("variable tick must not move a rigidbody, got %d moves", len(body.moves))
		}
		if c.State() != StateWalk {
			t.Fatalf("state machine runs on the variable tick, got %v", c.State())
		}
		c.FixedUpdate(dt)
		if len(body.moves) != 1 || !common.ApproxEqual(body.moves[0][0], 4*dt, 1e-12) {
			t.Fatalf("unexpected moves %v", body.moves)
		}
	})

	t.Run("character_controller_ignores_fixed_tick", func(t *testing.T) {
		body := newFakeBody()
		c := newTestController(t, DefaultConfig(), &fakeInput{x: 1}, body)
		c.FixedUpdate(dt)
		if len(body.moves) != 0 {
			t.Fatalf("fixed tick must not move, got %d moves", len(body.moves))
		}
	})
}

func TestInvalidDeltaIsNoop(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		body := newFakeBody()
		in := &fakeInput{x: 1}
		c := newTestController(t, DefaultConfig(), in, body)
		c.Update(dt)
		if len(body.moves) != 0 || in.polls != 0 || c.Machine().Tick() != 0 {
			t.Fatalf("dt=%v: expected no-op", dt)
		}
	}
}

func TestOrientFollowsMovement(t *testing.T) {
	body := newFakeBody()
	cfg := DefaultConfig()
	cfg.ClampRotation = true
	c := newTestController(t, cfg, &fakeInput{x: 1}, body)

	c.Update(1)
	if got := Forward(body.facing); !vecApprox(got, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Fatalf("expected to face +x, got %v", got)
	}
}

func TestReconfigure(t *testing.T) {
	c := newTestController(t, DefaultConfig(), &fakeInput{x: 1}, newFakeBody())
	c.Update(1.0 / 60)
	if c.State() != StateWalk {
		t.Fatalf("expected walk, got %v", c.State())
	}

	cfg := DefaultConfig()
	cfg.WalkSpeed = 6
	cfg.MaxJumpHeight = 3
	if err := c.Reconfigure(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Context().Speed() != 6 {
		t.Fatalf("walk speed should follow the new config, got %v", c.Context().Speed())
	}
	_, v0, _ := DeriveJump(3, cfg.MaxJumpTime)
	if c.Context().InitialJumpVelocity() != v0 {
		t.Fatalf("jump velocity not re-derived")
	}

	bad := cfg
	bad.MaxJumpTime = 0
	if err := c.Reconfigure(bad); !errors.Is(err, ErrNonPositiveJumpTime) {
		t.Fatalf("expected ErrNonPositiveJumpTime, got %v", err)
	}
	if c.Config().MaxJumpTime != cfg.MaxJumpTime {
		t.Fatalf("rejected config must not be applied")
	}
	if c.State() != StateWalk {
		t.Fatalf("reconfigure must not change state, got %v", c.State())
	}

	host := cfg
	host.Variant = VariantRigidbody
	host.FixedTimestep = 0.005
	host.RunSpeed = 9
	if err := c.Reconfigure(host); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Config(); got.Variant != VariantCharacterController || got.FixedTimestep != cfg.FixedTimestep || got.RunSpeed != 9 {
		t.Fatalf("variant and timestep must stay, tuning must apply: %+v", got)
	}
	if c.Variant() != VariantCharacterController {
		t.Fatalf("variant changed to %v", c.Variant())
	}
}
