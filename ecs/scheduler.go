package ecs

import "github.com/milk9111/locomotion/common"

type System interface {
	Update(w *World, dt float64)
}

// DefaultMaxFixedSteps bounds catch-up work in a single Update.
const DefaultMaxFixedSteps = 5

// Scheduler runs variable-rate systems once per Update and fixed-rate
// systems zero or more times from an accumulator. Both phases run on the
// caller's goroutine, variable first.
type Scheduler struct {
	systems   []System
	fixed     []System
	step      float64
	maxSteps  int
	acc       float64
	fixedRuns uint64
}

func NewScheduler(fixedStep float64, systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied, step: fixedStep, maxSteps: DefaultMaxFixedSteps}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddFixed(system System) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

func (s *Scheduler) SetFixedStep(step float64) { s.step = step }
func (s *Scheduler) FixedStep() float64        { return s.step }
func (s *Scheduler) SetMaxSteps(n int)         { s.maxSteps = n }
func (s *Scheduler) FixedRuns() uint64         { return s.fixedRuns }

// Update runs one frame and returns the number of fixed steps taken. Backlog
// beyond the step limit is dropped.
func (s *Scheduler) Update(w *World, dt float64) int {
	if !(dt > 0) || !common.Finite(dt) {
		return 0
	}
	for _, system := range s.systems {
		system.Update(w, dt)
	}

	steps := 0
	if s.step > 0 && len(s.fixed) > 0 {
		s.acc += dt
		for s.acc >= s.step && steps < s.maxSteps {
			for _, system := range s.fixed {
				system.Update(w, s.step)
			}
			s.acc -= s.step
			steps++
		}
		if s.acc >= s.step {
			s.acc = 0
		}
	}
	s.fixedRuns += uint64(steps)
	w.events.flush()
	return steps
}

// Alpha is the fraction of a fixed step left in the accumulator.
func (s *Scheduler) Alpha() float64 {
	if s.step <= 0 {
		return 0
	}
	return s.acc / s.step
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems)+len(s.fixed))
	systems = append(systems, s.systems...)
	return append(systems, s.fixed...)
}
