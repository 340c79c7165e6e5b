package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// InputSource is polled once per tick.
type InputSource interface {
	// MovementAxes returns the horizontal axes, each in [-1, 1].
	MovementAxes() (x, z float64)
	RunRequested() bool
	JumpRequested() bool
}

// Poller is implemented by input sources that need to refresh device or
// script state before they are read.
type Poller interface {
	Poll()
}

// Sample is one tick of locomotion input.
type Sample struct {
	Movement        mgl64.Vec3
	MovementPressed bool
	RunPressed      bool
	JumpPressed     bool
}

// SampleInput reads src and normalizes the movement vector. Pressed is
// decided on the raw axes.
func SampleInput(src InputSource) Sample {
	if p, ok := src.(Poller); ok {
		p.Poll()
	}
	x, z := src.MovementAxes()
	x, z = sanitizeAxis(x), sanitizeAxis(z)

	s := Sample{
		MovementPressed: x != 0 || z != 0,
		RunPressed:      src.RunRequested(),
		JumpPressed:     src.JumpRequested(),
	}
	s.Movement = mgl64.Vec3{x, 0, z}
	if l := s.Movement.Len(); l > 0 {
		s.Movement = s.Movement.Mul(1 / l)
	}
	return s
}

func sanitizeAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
