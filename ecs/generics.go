package ecs

import "github.com/milk9111/locomotion/ecs/component"

func Add[T any](w *World, e Entity, k component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	return w.addComponent(e, k, value)
}

func Remove[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	return w.removeComponent(e, k)
}

func Has[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	_, ok := w.component(e, k)
	return ok
}

func Get[T any](w *World, e Entity, k component.ComponentKind[T]) (*T, bool) {
	value, ok := w.component(e, k)
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// ForEach visits every entity holding k.
func ForEach[T any](w *World, k component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(k, false)
	ids := append([]int(nil), s.Entities()...)
	for _, id := range ids {
		if v, ok := s.Get(id).(*T); ok {
			fn(w.entities.entity(id), v)
		}
	}
}

// ForEach2 visits entities holding both ka and kb.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := w.store(ka, false), w.store(kb, false)
	for _, id := range IntersectEntities(sa, sb) {
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		if okA && okB {
			fn(w.entities.entity(id), a, b)
		}
	}
}
