package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/locomotion/locomotion"
)

// Character binds a locomotion controller to an entity.
type Character struct {
	Name       string
	Controller *locomotion.Controller
}

var CharacterComponent = NewComponent[Character]()

// Positioner is implemented by host bodies that can report where they are.
type Positioner interface {
	Position() mgl64.Vec3
}
