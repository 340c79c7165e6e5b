package obj

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/locomotion/common"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	physicsIterations = 20
	groundProbeBelow  = 2.0
	groundProbeSpread = 0.45
)

// PhysicsArena is a chipmunk space for rigidbody characters. The space
// works in level pixels with y down and has no gravity of its own: each
// fixed step a body's velocity is set so that it covers exactly the
// displacement the controller asked for.
type PhysicsArena struct {
	level  *Level
	space  *cp.Space
	bodies []*RigidBody
}

func NewPhysicsArena(level *Level) *PhysicsArena {
	space := cp.NewSpace()
	space.Iterations = physicsIterations
	space.SetGravity(cp.Vector{})
	a := &PhysicsArena{level: level, space: space}
	a.buildStaticShapes()
	return a
}

func (a *PhysicsArena) buildStaticShapes() {
	for _, r := range a.level.Solids() {
		bb := cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
		shape := cp.NewBox2(a.space.StaticBody, bb, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		a.space.AddShape(shape)
	}
}

func (a *PhysicsArena) Level() *Level { return a.level }

func (a *PhysicsArena) Bodies() []*RigidBody { return a.bodies }

// NewBody adds a dynamic body with its feet at pos. Rotation is locked.
func (a *PhysicsArena) NewBody(pos mgl64.Vec3, size BodySize) *RigidBody {
	x, y, w, h := pixelBox(a.level, pos, size)
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x + w/2, Y: y + h/2})
	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)

	b := &RigidBody{
		arena: a,
		body:  body,
		shape: shape,
		z:     pos.Z(),
		size:  size,
		w:     w,
		h:     h,
	}
	// A private group keeps the ground probe from hitting the body itself.
	b.filter = cp.NewShapeFilter(uint(len(a.bodies)+1), cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	shape.SetFilter(b.filter)

	a.space.AddBody(body)
	a.space.AddShape(shape)
	a.bodies = append(a.bodies, b)
	return b
}

// Remove takes the body out of the space.
func (a *PhysicsArena) Remove(b *RigidBody) {
	for i, other := range a.bodies {
		if other == b {
			a.bodies = append(a.bodies[:i], a.bodies[i+1:]...)
			a.space.RemoveShape(b.shape)
			a.space.RemoveBody(b.body)
			return
		}
	}
}

// Step converts every body's pending displacement into a velocity and
// advances the space by dt.
func (a *PhysicsArena) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range a.bodies {
		b.flush(dt)
	}
	a.space.Step(dt)
}

// RigidBody is a rigidbody character. It implements locomotion.Body;
// displacements are buffered until the arena steps.
type RigidBody struct {
	facing
	arena  *PhysicsArena
	body   *cp.Body
	shape  *cp.Shape
	filter cp.ShapeFilter
	z      float64
	size   BodySize
	w, h   float64

	pending mgl64.Vec3
}

func (b *RigidBody) ApplyDisplacement(d mgl64.Vec3) {
	b.pending = b.pending.Add(d)
}

// Pending returns the displacement waiting for the next step.
func (b *RigidBody) Pending() mgl64.Vec3 { return b.pending }

func (b *RigidBody) flush(dt float64) {
	ppm := b.arena.level.PixelsPerMeter
	b.body.SetVelocity(b.pending.X()*ppm/dt, -b.pending.Y()*ppm/dt)
	b.z += b.pending.Z()
	b.pending = mgl64.Vec3{}
}

// Grounded casts three rays from the body's middle to just under its feet.
// The rays start inside the body so a foot sunk into the floor still hits.
func (b *RigidBody) Grounded() bool {
	c := b.body.Position()
	feet := c.Y + b.h/2
	for _, off := range []float64{-groundProbeSpread, 0, groundProbeSpread} {
		x := c.X + off*b.w
		start := cp.Vector{X: x, Y: c.Y}
		end := cp.Vector{X: x, Y: feet + groundProbeBelow}
		if hit := b.arena.space.SegmentQueryFirst(start, end, 0, b.filter); hit.Shape != nil {
			return true
		}
	}
	return false
}

// Position returns the body's feet in world meters.
func (b *RigidBody) Position() mgl64.Vec3 {
	c := b.body.Position()
	return b.arena.level.ToWorld(c.X, c.Y+b.h/2, b.z)
}

// Velocity returns the body's velocity in meters per second.
func (b *RigidBody) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	ppm := b.arena.level.PixelsPerMeter
	return mgl64.Vec3{v.X / ppm, -v.Y / ppm, 0}
}

// Bounds returns the body's pixel box.
func (b *RigidBody) Bounds() common.Rect {
	c := b.body.Position()
	return common.Rect{X: c.X - b.w/2, Y: c.Y - b.h/2, Width: b.w, Height: b.h}
}

func (b *RigidBody) Size() BodySize { return b.size }

// Teleport places the body's feet at pos and stops it.
func (b *RigidBody) Teleport(pos mgl64.Vec3) {
	x, y, w, h := pixelBox(b.arena.level, pos, b.size)
	b.body.SetPosition(cp.Vector{X: x + w/2, Y: y + h/2})
	b.body.SetVelocity(0, 0)
	b.z = pos.Z()
	b.pending = mgl64.Vec3{}
}
