package ecs

import (
	"fmt"

	"github.com/milk9111/locomotion/ecs/component"
)

// kind is the untyped view of a component.ComponentKind.
type kind interface {
	ID() component.ComponentID
	Valid() bool
}

// World owns entities, their components and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(int(e.id()))
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities lists live entities in slot order.
func Entities(w *World) []Entity {
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(k kind, create bool) *SparseSet {
	s, ok := w.stores[k.ID()]
	if !ok && create {
		s = &SparseSet{}
		w.stores[k.ID()] = s
	}
	return s
}

func (w *World) addComponent(e Entity, k kind, value any) error {
	if !k.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	w.store(k, true).Set(int(e.id()), value)
	return nil
}

func (w *World) component(e Entity, k kind) (any, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(k, false)
	if !s.Has(int(e.id())) {
		return nil, false
	}
	return s.Get(int(e.id())), true
}

func (w *World) removeComponent(e Entity, k kind) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	return w.store(k, false).Remove(int(e.id()))
}
