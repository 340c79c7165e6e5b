package system

import "github.com/milk9111/locomotion/ecs"

// Stepper advances a physics space.
type Stepper interface {
	Step(dt float64)
}

// ArenaSystem steps the physics space after the fixed-rate moves have been
// queued.
type ArenaSystem struct {
	Arena Stepper
}

func NewArenaSystem(arena Stepper) *ArenaSystem {
	return &ArenaSystem{Arena: arena}
}

func (s *ArenaSystem) Update(_ *ecs.World, dt float64) {
	if s == nil || s.Arena == nil {
		return
	}
	s.Arena.Step(dt)
}
