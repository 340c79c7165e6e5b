package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
)

// TuningSystem applies configs published by a file watcher. Only the newest
// pending config is applied each frame. Controllers keep their variant and
// fixed step; hosts compare Latest against their own setup to rebuild.
type TuningSystem struct {
	Updates <-chan locomotion.Config
	Log     logrus.FieldLogger

	applied uint64
	latest  locomotion.Config
	seen    bool
}

func NewTuningSystem(updates <-chan locomotion.Config, log logrus.FieldLogger) *TuningSystem {
	return &TuningSystem{Updates: updates, Log: log}
}

func (s *TuningSystem) Applied() uint64 { return s.applied }

// Latest returns the newest config received, as published.
func (s *TuningSystem) Latest() (locomotion.Config, bool) { return s.latest, s.seen }

func (s *TuningSystem) Update(w *ecs.World, _ float64) {
	if s.Updates == nil {
		return
	}
	var (
		cfg locomotion.Config
		got bool
	)
drain:
	for {
		select {
		case next, ok := <-s.Updates:
			if !ok {
				s.Updates = nil
				break drain
			}
			cfg, got = next, true
		default:
			break drain
		}
	}
	if !got {
		return
	}
	s.latest, s.seen = cfg, true

	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, c *component.Character) {
		if c.Controller == nil {
			return
		}
		if err := c.Controller.Reconfigure(cfg); err != nil {
			if s.Log != nil {
				s.Log.WithError(err).WithField("name", c.Name).Warn("tuning: rejected config")
			}
			return
		}
		s.applied++
	})
}
