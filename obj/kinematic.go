package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"github.com/milk9111/locomotion/common"
)

const (
	tagSolid     = "solid"
	tagCharacter = "character"

	// contactEpsilon is the pixel tolerance for touching surfaces.
	contactEpsilon = 1e-6
)

// KinematicArena resolves character-controller moves against the level's
// solids. Moves are swept in sub-steps of at most half a tile so a fast body
// cannot tunnel through a one-tile wall.
type KinematicArena struct {
	level  *Level
	space  *resolv.Space
	bodies []*KinematicBody
}

func NewKinematicArena(level *Level) *KinematicArena {
	space := resolv.NewSpace(int(level.PixelWidth()), int(level.PixelHeight()), level.TileSize, level.TileSize)
	for _, r := range level.Solids() {
		obj := resolv.NewObject(r.X, r.Y, r.Width, r.Height, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, r.Width, r.Height))
		space.Add(obj)
	}
	return &KinematicArena{level: level, space: space}
}

func (a *KinematicArena) Level() *Level { return a.level }

func (a *KinematicArena) Bodies() []*KinematicBody { return a.bodies }

// NewBody places a body with its feet at pos.
func (a *KinematicArena) NewBody(pos mgl64.Vec3, size BodySize) *KinematicBody {
	x, y, w, h := pixelBox(a.level, pos, size)
	obj := resolv.NewObject(x, y, w, h, tagCharacter)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	a.space.Add(obj)

	b := &KinematicBody{arena: a, obj: obj, z: pos.Z(), size: size}
	a.bodies = append(a.bodies, b)
	return b
}

// Remove takes the body out of the arena.
func (a *KinematicArena) Remove(b *KinematicBody) {
	for i, other := range a.bodies {
		if other == b {
			a.bodies = append(a.bodies[:i], a.bodies[i+1:]...)
			a.space.Remove(b.obj)
			return
		}
	}
}

// Step does nothing: kinematic moves resolve as they are applied.
func (a *KinematicArena) Step(dt float64) {}

// KinematicBody is a character-controller body. It implements
// locomotion.Body.
type KinematicBody struct {
	facing
	arena *KinematicArena
	obj   *resolv.Object
	z     float64
	size  BodySize

	hitGround  bool
	hitCeiling bool
	hitWall    bool
}

func (b *KinematicBody) rect() common.Rect {
	return common.Rect{X: b.obj.X, Y: b.obj.Y, Width: b.obj.W, Height: b.obj.H}
}

// solidsNear returns the solids sharing a cell with the box moved by
// (dx, dy) pixels. The probe reaches one extra pixel in the direction of
// travel because resolv drops the last pixel of the box from its cell range.
func (b *KinematicBody) solidsNear(dx, dy float64) []common.Rect {
	check := b.obj.Check(reach(dx), reach(dy), tagSolid)
	if check == nil {
		return nil
	}
	objs := check.ObjectsByTags(tagSolid)
	out := make([]common.Rect, 0, len(objs))
	for _, o := range objs {
		out = append(out, common.Rect{X: o.X, Y: o.Y, Width: o.W, Height: o.H})
	}
	return out
}

// ApplyDisplacement moves the body by d meters, stopping flush against
// solids. Depth moves freely.
func (b *KinematicBody) ApplyDisplacement(d mgl64.Vec3) {
	b.hitGround, b.hitCeiling, b.hitWall = false, false, false
	ppm := b.arena.level.PixelsPerMeter
	dx := d.X() * ppm
	dy := -d.Y() * ppm
	b.z += d.Z()

	limit := float64(b.arena.level.TileSize) / 2
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / limit))
	if steps < 1 {
		steps = 1
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	for i := 0; i < steps; i++ {
		if sx != 0 && !b.hitWall {
			moved := b.sweepX(sx)
			b.hitWall = moved != sx
			b.obj.X += moved
			b.obj.Update()
		}
		if sy != 0 && !b.hitGround && !b.hitCeiling {
			moved := b.sweepY(sy)
			if moved != sy {
				b.hitGround = sy > 0
				b.hitCeiling = sy < 0
			}
			b.obj.Y += moved
			b.obj.Update()
		}
	}
}

func (b *KinematicBody) sweepX(dx float64) float64 {
	r := b.rect()
	target := r.Offset(dx, 0)
	for _, s := range b.solidsNear(dx, 0) {
		if !target.Intersects(s) {
			continue
		}
		if dx > 0 {
			dx = math.Max(0, math.Min(dx, s.X-r.Right()))
		} else {
			dx = math.Min(0, math.Max(dx, s.Right()-r.X))
		}
		target = r.Offset(dx, 0)
	}
	return dx
}

func (b *KinematicBody) sweepY(dy float64) float64 {
	r := b.rect()
	target := r.Offset(0, dy)
	for _, s := range b.solidsNear(0, dy) {
		if !target.Intersects(s) {
			continue
		}
		if dy > 0 {
			dy = math.Max(0, math.Min(dy, s.Y-r.Bottom()))
		} else {
			dy = math.Min(0, math.Max(dy, s.Bottom()-r.Y))
		}
		target = r.Offset(0, dy)
	}
	return dy
}

func reach(v float64) float64 {
	switch {
	case v > 0:
		return v + 1
	case v < 0:
		return v - 1
	}
	return 0
}

// Grounded reports whether a solid lies directly under the body's feet.
func (b *KinematicBody) Grounded() bool {
	r := b.rect()
	for _, s := range b.solidsNear(0, 1) {
		if math.Abs(s.Y-r.Bottom()) <= contactEpsilon && r.X < s.Right() && r.Right() > s.X {
			return true
		}
	}
	return false
}

// Collisions reports what the last move was stopped by.
func (b *KinematicBody) Collisions() (ground, ceiling, wall bool) {
	return b.hitGround, b.hitCeiling, b.hitWall
}

// Position returns the body's feet in world meters.
func (b *KinematicBody) Position() mgl64.Vec3 {
	l := b.arena.level
	return l.ToWorld(b.obj.X+b.obj.W/2, b.obj.Y+b.obj.H, b.z)
}

// Bounds returns the body's pixel box.
func (b *KinematicBody) Bounds() common.Rect { return b.rect() }

func (b *KinematicBody) Size() BodySize { return b.size }

// Teleport places the body's feet at pos without collision checks.
func (b *KinematicBody) Teleport(pos mgl64.Vec3) {
	x, y, _, _ := pixelBox(b.arena.level, pos, b.size)
	b.obj.X, b.obj.Y = x, y
	b.z = pos.Z()
	b.obj.Update()
}
