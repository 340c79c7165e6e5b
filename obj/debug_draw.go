package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// DebugDraw outlines the resolv objects: solids in blue, characters in
// magenta.
func (a *KinematicArena) DebugDraw(screen *ebiten.Image, cam *Camera) {
	if a == nil || screen == nil || cam == nil {
		return
	}
	z := float32(cam.Zoom())
	for _, o := range a.space.Objects() {
		clr := fcolorToRGBA(staticColor)
		if o.HasTags(tagCharacter) {
			clr = fcolorToRGBA(dynamicColor)
		}
		x, y := cam.ToScreen(o.X, o.Y)
		vector.StrokeRect(screen, float32(x), float32(y), float32(o.W)*z, float32(o.H)*z, 1, clr, false)
	}
}

// DebugDraw renders the chipmunk shapes and each body's ground probe rays.
func (a *PhysicsArena) DebugDraw(screen *ebiten.Image, cam *Camera) {
	if a == nil || screen == nil || cam == nil {
		return
	}
	d := &chipmunkDrawer{screen: screen, cam: cam}
	cp.DrawSpace(a.space, d)
	for _, b := range a.bodies {
		c := b.body.Position()
		feet := c.Y + b.h/2 + groundProbeBelow
		clr := fcolorToRGBA(probeColor)
		if b.Grounded() {
			clr = fcolorToRGBA(groundedColor)
		}
		for _, off := range []float64{-groundProbeSpread, 0, groundProbeSpread} {
			x := c.X + off*b.w
			d.line(cp.Vector{X: x, Y: c.Y}, cp.Vector{X: x, Y: feet}, clr)
		}
	}
}

var (
	staticColor   = cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	dynamicColor  = cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
	probeColor    = cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	groundedColor = cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
)

type chipmunkDrawer struct {
	screen *ebiten.Image
	cam    *Camera
}

func (d *chipmunkDrawer) line(a, b cp.Vector, clr color.Color) {
	ax, ay := d.cam.ToScreen(a.X, a.Y)
	bx, by := d.cam.ToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(ax), float32(ay), float32(bx), float32(by), 1, clr, false)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.cam.ToScreen(pos.X, pos.Y)
	vector.StrokeCircle(d.screen, float32(x), float32(y), float32(radius*d.cam.Zoom()), 1, fcolorToRGBA(outline), false)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := size / 2
	c := fcolorToRGBA(fill)
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return groundedColor
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return staticColor
	}
	return dynamicColor
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
