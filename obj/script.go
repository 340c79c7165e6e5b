package obj

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/locomotion/prefabs"
)

// Script globals. The host sets the inputs before every run and reads the
// outputs after it.
const (
	scriptTick    = "tick"
	scriptElapsed = "elapsed"
	scriptMoveX   = "move_x"
	scriptMoveZ   = "move_z"
	scriptRun     = "run"
	scriptJump    = "jump"
)

// ScriptInput drives a character from a tengo script, one run per poll.
// Elapsed time advances by a fixed step per poll so replays are exact.
type ScriptInput struct {
	name     string
	compiled *tengo.Compiled
	step     float64
	log      logrus.FieldLogger

	tick   int
	moveX  float64
	moveZ  float64
	run    bool
	jump   bool
	errors int
}

// LoadScriptInput compiles the named script from the prefabs scripts.
func LoadScriptInput(name string, step float64, log logrus.FieldLogger) (*ScriptInput, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return NewScriptInput(name, src, step, log)
}

func NewScriptInput(name string, src []byte, step float64, log logrus.FieldLogger) (*ScriptInput, error) {
	if step <= 0 {
		return nil, fmt.Errorf("script %q: step must be positive, got %v", name, step)
	}
	script := tengo.NewScript(src)
	_ = script.Add(scriptTick, 0)
	_ = script.Add(scriptElapsed, 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %q: compile: %w", name, err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ScriptInput{
		name:     name,
		compiled: compiled,
		step:     step,
		log:      log.WithField("script", name),
	}, nil
}

// Poll runs the script for the next tick. A failing run keeps the previous
// outputs.
func (s *ScriptInput) Poll() {
	tick := s.tick
	s.tick++
	if err := s.compiled.Set(scriptTick, tick); err != nil {
		s.fail(tick, err)
		return
	}
	if err := s.compiled.Set(scriptElapsed, float64(tick)*s.step); err != nil {
		s.fail(tick, err)
		return
	}
	if err := s.compiled.Run(); err != nil {
		s.fail(tick, err)
		return
	}
	s.moveX = s.float(scriptMoveX)
	s.moveZ = s.float(scriptMoveZ)
	s.run = s.bool(scriptRun)
	s.jump = s.bool(scriptJump)
}

func (s *ScriptInput) fail(tick int, err error) {
	s.errors++
	s.log.WithError(err).WithField("tick", tick).Warn("script: run failed")
}

func (s *ScriptInput) float(name string) float64 {
	if !s.compiled.IsDefined(name) {
		return 0
	}
	return s.compiled.Get(name).Float()
}

func (s *ScriptInput) bool(name string) bool {
	if !s.compiled.IsDefined(name) {
		return false
	}
	return s.compiled.Get(name).Bool()
}

func (s *ScriptInput) MovementAxes() (x, z float64) { return s.moveX, s.moveZ }
func (s *ScriptInput) RunRequested() bool           { return s.run }
func (s *ScriptInput) JumpRequested() bool          { return s.jump }

func (s *ScriptInput) Name() string { return s.name }

// Tick returns how many times the script has been polled.
func (s *ScriptInput) Tick() int { return s.tick }

// Errors returns how many runs have failed.
func (s *ScriptInput) Errors() int { return s.errors }
