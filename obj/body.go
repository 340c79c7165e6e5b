package obj

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodySize is a character's collision box in meters.
type BodySize struct {
	Width, Height float64
}

var DefaultBodySize = BodySize{Width: 0.75, Height: 1.75}

// facing holds the orientation shared by every body kind. Collision shapes
// never rotate, so facing is purely visual.
type facing struct {
	q mgl64.Quat
}

func (f *facing) Facing() mgl64.Quat {
	if f.q.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return f.q
}

func (f *facing) SetFacing(q mgl64.Quat) { f.q = q }

// pixelBox converts a feet position and size into a top-left pixel box.
func pixelBox(l *Level, feet mgl64.Vec3, size BodySize) (x, y, w, h float64) {
	fx, fy := l.ToPixels(feet)
	w = size.Width * l.PixelsPerMeter
	h = size.Height * l.PixelsPerMeter
	return fx - w/2, fy - h, w, h
}
