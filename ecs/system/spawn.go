package system

import (
	"fmt"

	"github.com/milk9111/locomotion/anim"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
)

// SpawnCharacter creates an entity for ctrl with animation parameters and
// stats. Unless the controller already has an animator, the entity's
// parameter store is bound to it. Transitions are published on the world
// event queue.
func SpawnCharacter(w *ecs.World, name string, ctrl *locomotion.Controller) (ecs.Entity, error) {
	if ctrl == nil {
		return 0, fmt.Errorf("system: spawn %s: nil controller", name)
	}
	e := ecs.CreateEntity(w)

	params := anim.NewParams(
		locomotion.ParamWalking,
		locomotion.ParamRunning,
		locomotion.ParamJumping,
		locomotion.ParamFalling,
	)
	if ctrl.Animator() == nil {
		ctrl.SetAnimator(params)
	}

	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{Name: name, Controller: ctrl}); err != nil {
		return 0, fmt.Errorf("system: spawn %s: %w", name, err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Params: params}); err != nil {
		return 0, fmt.Errorf("system: spawn %s: %w", name, err)
	}
	if err := ecs.Add(w, e, component.StatsComponent.Kind(), component.NewStats()); err != nil {
		return 0, fmt.Errorf("system: spawn %s: %w", name, err)
	}

	m := ctrl.Machine()
	m.OnTransition(func(from, to locomotion.StateID) {
		w.Events().Push(ecs.TransitionEvent{Entity: e, From: from, To: to, Tick: m.Tick()})
	})
	return e, nil
}
