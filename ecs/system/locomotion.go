package system

import (
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
)

// LocomotionSystem runs the variable-rate controller tick for every
// character.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem { return &LocomotionSystem{} }

func (s *LocomotionSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(_ ecs.Entity, c *component.Character) {
		if c.Controller != nil {
			c.Controller.Update(dt)
		}
	})
}

// FixedLocomotionSystem runs the fixed-rate tick. Only rigidbody characters
// move here.
type FixedLocomotionSystem struct{}

func NewFixedLocomotionSystem() *FixedLocomotionSystem { return &FixedLocomotionSystem{} }

func (s *FixedLocomotionSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(_ ecs.Entity, c *component.Character) {
		if c.Controller != nil {
			c.Controller.FixedUpdate(dt)
		}
	})
}
