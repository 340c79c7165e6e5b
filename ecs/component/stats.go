package component

import "github.com/milk9111/locomotion/locomotion"

// Stats accumulates per-character locomotion figures for HUDs and the
// simulator report.
type Stats struct {
	StateTicks  map[locomotion.StateID]uint64
	Transitions uint64
	Jumps       uint64

	// PeakHeight is the highest rise above a takeoff point over all jumps.
	PeakHeight  float64
	LastAirtime float64
	MaxAirtime  float64

	Airborne   bool
	TakeoffY   float64
	AirElapsed float64
	LastY      float64
}

func NewStats() *Stats {
	return &Stats{StateTicks: make(map[locomotion.StateID]uint64)}
}

var StatsComponent = NewComponent[Stats]()
