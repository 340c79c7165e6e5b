package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/ecs/system"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/obj"
	"github.com/milk9111/locomotion/prefabs"
)

type options struct {
	config  string
	level   string
	script  string
	ticks   int
	dt      float64
	variant string
	watch   bool
}

type report struct {
	Ticks       int
	FixedSteps  uint64
	Variant     locomotion.Variant
	Final       locomotion.StateID
	Position    mgl64.Vec3
	Transitions uint64
	Jumps       uint64
	PeakHeight  float64
	MaxAirtime  float64
	StateTicks  map[locomotion.StateID]uint64
	ScriptErrs  int
}

// loadConfig reads the tuning file, or the embedded default when path is
// empty, and applies the variant override.
func loadConfig(path, variant string) (locomotion.Config, error) {
	var (
		spec prefabs.LocomotionSpec
		err  error
	)
	if path == "" {
		spec, err = prefabs.LoadLocomotionSpec("locomotion")
	} else {
		spec, err = prefabs.LoadSpecFile[prefabs.LocomotionSpec](path)
	}
	if err != nil {
		return locomotion.Config{}, err
	}
	if variant != "" {
		spec.Variant = variant
	}
	return spec.ToConfig()
}

// loadLevel treats name as a file when it exists on disk and as a prefab
// name otherwise.
func loadLevel(name string) (*obj.Level, error) {
	if _, err := os.Stat(name); err == nil {
		return obj.LoadLevelFile(name)
	}
	return obj.LoadLevel(name)
}

func simulate(opts options, log *logrus.Logger) (report, error) {
	if opts.dt <= 0 {
		return report{}, fmt.Errorf("locosim: dt must be positive, got %v", opts.dt)
	}
	cfg, err := loadConfig(opts.config, opts.variant)
	if err != nil {
		return report{}, fmt.Errorf("locosim: config: %w", err)
	}
	level, err := loadLevel(opts.level)
	if err != nil {
		return report{}, fmt.Errorf("locosim: level: %w", err)
	}
	input, err := obj.LoadScriptInput(opts.script, opts.dt, log)
	if err != nil {
		return report{}, fmt.Errorf("locosim: script: %w", err)
	}

	arena := obj.NewArena(level, cfg.Variant)
	body := arena.AddCharacter(level.Spawn(), obj.DefaultBodySize)
	ctrl, err := locomotion.NewController(cfg, input, body, locomotion.WithLogger(log))
	if err != nil {
		return report{}, fmt.Errorf("locosim: %w", err)
	}

	world := ecs.NewWorld()
	e, err := system.SpawnCharacter(world, input.Name(), ctrl)
	if err != nil {
		return report{}, fmt.Errorf("locosim: %w", err)
	}

	sched := ecs.NewScheduler(cfg.FixedTimestep,
		system.NewLocomotionSystem(),
		system.NewStatsSystem(log),
	)
	sched.AddFixed(system.NewFixedLocomotionSystem())
	sched.AddFixed(system.NewArenaSystem(arena))

	var pace <-chan time.Time
	if opts.watch {
		stop, err := watchTuning(opts.config, sched, log)
		if err != nil {
			return report{}, fmt.Errorf("locosim: watch: %w", err)
		}
		defer stop()
		ticker := time.NewTicker(time.Duration(opts.dt * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	log.WithFields(logrus.Fields{
		"level":   level.Name,
		"script":  input.Name(),
		"variant": cfg.Variant.String(),
		"ticks":   opts.ticks,
		"dt":      opts.dt,
	}).Info("locosim: start")

	for i := 0; i < opts.ticks; i++ {
		if pace != nil {
			<-pace
		}
		sched.Update(world, opts.dt)
	}

	st, _ := ecs.Get(world, e, component.StatsComponent.Kind())
	r := report{
		Ticks:       opts.ticks,
		FixedSteps:  sched.FixedRuns(),
		Variant:     cfg.Variant,
		Final:       ctrl.State(),
		Position:    body.Position(),
		Transitions: st.Transitions,
		Jumps:       st.Jumps,
		PeakHeight:  st.PeakHeight,
		MaxAirtime:  st.MaxAirtime,
		StateTicks:  st.StateTicks,
		ScriptErrs:  input.Errors(),
	}
	return r, nil
}

// watchTuning reloads the tuning file on change and feeds it to a tuning
// system. The embedded tuning is watched through its disk override.
func watchTuning(path string, sched *ecs.Scheduler, log *logrus.Logger) (func(), error) {
	if path == "" {
		path = filepath.Join(prefabs.Dir, "locomotion.yaml")
	}
	w, err := prefabs.NewWatcher(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	go func() {
		for err := range w.Errors {
			log.WithError(err).Warn("locosim: watcher")
		}
	}()
	updates := make(chan locomotion.Config, 1)
	go prefabs.ReloadTuning(w.Events, path, updates, log)
	sched.Add(system.NewTuningSystem(updates, log))
	return func() { _ = w.Close() }, nil
}

func (r report) fields() logrus.Fields {
	f := logrus.Fields{
		"ticks":       r.Ticks,
		"fixed_steps": r.FixedSteps,
		"variant":     r.Variant.String(),
		"final":       r.Final.String(),
		"x":           r.Position.X(),
		"y":           r.Position.Y(),
		"transitions": r.Transitions,
		"jumps":       r.Jumps,
		"peak":        r.PeakHeight,
		"airtime":     r.MaxAirtime,
	}
	if r.ScriptErrs > 0 {
		f["script_errors"] = r.ScriptErrs
	}
	for _, id := range locomotion.AllStates() {
		f["ticks_"+id.String()] = r.StateTicks[id]
	}
	return f
}
