package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	up      = mgl64.Vec3{0, 1, 0}
	forward = mgl64.Vec3{0, 0, 1}
)

// Heading returns the yaw-only rotation that turns the +Z forward axis onto
// the horizontal projection of dir. It reports false for a zero projection.
func Heading(dir mgl64.Vec3) (mgl64.Quat, bool) {
	x, z := dir[0], dir[2]
	if x == 0 && z == 0 {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatRotate(math.Atan2(x, z), up), true
}

// Forward is the +Z axis rotated by q.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(forward)
}

// Orientation turns a facing toward the movement heading at a fixed rate.
type Orientation struct {
	factor float64
	clamp  bool
}

func NewOrientation(cfg Config) Orientation {
	return Orientation{factor: cfg.RotationFactorPerFrame, clamp: cfg.ClampRotation}
}

// Step slerps current toward the heading of s by factor*dt. The amount is
// left unclamped unless clamping was configured, so large steps overshoot.
func (o Orientation) Step(current mgl64.Quat, s Sample, dt float64) mgl64.Quat {
	if !s.MovementPressed {
		return current
	}
	target, ok := Heading(s.Movement)
	if !ok {
		return current
	}
	if current.Len() == 0 {
		return target
	}
	t := o.factor * dt
	if o.clamp && t > 1 {
		t = 1
	}
	return mgl64.QuatSlerp(current.Normalize(), target, t).Normalize()
}
