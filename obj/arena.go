package obj

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/locomotion"
)

// CharacterBody is what both arenas hand out: a locomotion body that can
// also report where it is.
type CharacterBody interface {
	locomotion.Body
	Position() mgl64.Vec3
	Bounds() common.Rect
	Teleport(pos mgl64.Vec3)
}

// Arena is a level-backed world characters move in.
type Arena interface {
	Level() *Level
	Step(dt float64)
	AddCharacter(pos mgl64.Vec3, size BodySize) CharacterBody
	DebugDraw(screen *ebiten.Image, cam *Camera)
}

// NewArena returns the arena matching the controller variant: resolv for
// the character controller, chipmunk for the rigidbody.
func NewArena(level *Level, variant locomotion.Variant) Arena {
	if variant == locomotion.VariantRigidbody {
		return NewPhysicsArena(level)
	}
	return NewKinematicArena(level)
}

func (a *KinematicArena) AddCharacter(pos mgl64.Vec3, size BodySize) CharacterBody {
	return a.NewBody(pos, size)
}

func (a *PhysicsArena) AddCharacter(pos mgl64.Vec3, size BodySize) CharacterBody {
	return a.NewBody(pos, size)
}
