package system

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
)

// StatsSystem tracks time per state, jump count, jump height and airtime.
// It must run in the variable phase after LocomotionSystem so it sees the
// tick's transition events before they are flushed.
type StatsSystem struct {
	Log logrus.FieldLogger
}

func NewStatsSystem(log logrus.FieldLogger) *StatsSystem {
	return &StatsSystem{Log: log}
}

func (s *StatsSystem) Update(w *ecs.World, dt float64) {
	for _, evt := range w.Events().Pending() {
		st, ok := ecs.Get(w, evt.Entity, component.StatsComponent.Kind())
		if !ok {
			continue
		}
		st.Transitions++
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.StatsComponent.Kind(), func(e ecs.Entity, c *component.Character, st *component.Stats) {
		if c.Controller == nil {
			return
		}
		if st.StateTicks == nil {
			st.StateTicks = make(map[locomotion.StateID]uint64)
		}
		state := c.Controller.State()
		st.StateTicks[state]++

		y := 0.0
		if p, ok := c.Controller.Body().(component.Positioner); ok {
			y = p.Position()[1]
		}

		switch {
		case state.Airborne() && !st.Airborne:
			st.Airborne = true
			st.TakeoffY = st.LastY
			st.AirElapsed = dt
			st.PeakHeight = math.Max(st.PeakHeight, y-st.TakeoffY)
			if state == locomotion.StateJump {
				st.Jumps++
			}
		case state.Airborne():
			st.AirElapsed += dt
			st.PeakHeight = math.Max(st.PeakHeight, y-st.TakeoffY)
		case st.Airborne:
			st.Airborne = false
			st.LastAirtime = st.AirElapsed
			st.MaxAirtime = math.Max(st.MaxAirtime, st.AirElapsed)
			if s.Log != nil {
				s.Log.WithFields(logrus.Fields{
					"entity":  e.String(),
					"name":    c.Name,
					"airtime": st.LastAirtime,
					"peak":    st.PeakHeight,
				}).Debug("stats: landed")
			}
		}
		st.LastY = y
	})
}
