package locomotion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/locomotion/common"
)

func vecApprox(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if !common.ApproxEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestHeading(t *testing.T) {
	cases := []struct {
		name string
		dir  mgl64.Vec3
		ok   bool
	}{
		{"forward", mgl64.Vec3{0, 0, 1}, true},
		{"right", mgl64.Vec3{1, 0, 0}, true},
		{"back_left", mgl64.Vec3{-1, 0, -1}.Normalize(), true},
		{"vertical_only", mgl64.Vec3{0, 1, 0}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, ok := Heading(c.dir)
			if ok != c.ok {
				t.Fatalf("ok=%v, want %v", ok, c.ok)
			}
			if !ok {
				return
			}
			got := Forward(q)
			want := mgl64.Vec3{c.dir[0], 0, c.dir[2]}.Normalize()
			if !vecApprox(got, want, 1e-9) {
				t.Fatalf("forward %v, want %v", got, want)
			}
		})
	}
}

func TestOrientationStep(t *testing.T) {
	right := Sample{Movement: mgl64.Vec3{1, 0, 0}, MovementPressed: true}
	quarter := math.Pi / 2

	cases := []struct {
		name    string
		factor  float64
		clamp   bool
		dt      float64
		sample  Sample
		wantYaw float64
	}{
		{"not_pressed_keeps_facing", 5, false, 0.1, Sample{}, 0},
		{"half_way", 5, false, 0.1, right, quarter / 2},
		{"exact", 5, false, 0.2, right, quarter},
		{"unclamped_overshoots", 5, false, 0.4, right, math.Pi},
		{"clamped_stops_at_target", 5, true, 0.4, right, quarter},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RotationFactorPerFrame = c.factor
			cfg.ClampRotation = c.clamp
			o := NewOrientation(cfg)

			got := o.Step(mgl64.QuatIdent(), c.sample, c.dt)
			want := mgl64.QuatRotate(c.wantYaw, mgl64.Vec3{0, 1, 0})
			if !got.OrientationEqualThreshold(want, 1e-6) {
				t.Fatalf("facing %v, want yaw %v (%v)", got, c.wantYaw, want)
			}
		})
	}
}
