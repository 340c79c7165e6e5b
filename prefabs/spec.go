package prefabs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/locomotion/locomotion"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return decodeSpec[T](filename, data)
}

// LoadSpecFile reads a spec from an explicit path, bypassing the prefab
// lookup.
func LoadSpecFile[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	return decodeSpec[T](path, data)
}

func decodeSpec[T any](name string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// LocomotionSpec is the YAML form of locomotion.Config. Numeric keys left
// out of the file keep their default; keys that are present, zero included,
// are validated as written.
type LocomotionSpec struct {
	WalkSpeed              *float64 `yaml:"walk_speed"`
	RunSpeed               *float64 `yaml:"run_speed"`
	MaxJumpHeight          *float64 `yaml:"max_jump_height"`
	MaxJumpTime            *float64 `yaml:"max_jump_time"`
	RotationFactorPerFrame *float64 `yaml:"rotation_factor_per_frame"`
	HoldJump               bool     `yaml:"hold_jump"`
	FallMultiplier         *float64 `yaml:"fall_multiplier"`
	GroundedGravity        *float64 `yaml:"grounded_gravity"`
	TerminalFallSpeed      *float64 `yaml:"terminal_fall_speed"`
	JumpVelocityScale      *float64 `yaml:"jump_velocity_scale"`
	ClampRotation          bool     `yaml:"clamp_rotation"`
	FallFromLedges         bool     `yaml:"fall_from_ledges"`
	Variant                string   `yaml:"variant"`
	FixedTimestep          *float64 `yaml:"fixed_timestep"`
}

func LoadLocomotionSpec(filename string) (LocomotionSpec, error) {
	return LoadSpec[LocomotionSpec](filename)
}

// ToConfig merges the spec over locomotion.DefaultConfig and validates the
// result.
func (s LocomotionSpec) ToConfig() (locomotion.Config, error) {
	cfg := locomotion.DefaultConfig()
	setIfPresent(&cfg.WalkSpeed, s.WalkSpeed)
	setIfPresent(&cfg.RunSpeed, s.RunSpeed)
	setIfPresent(&cfg.MaxJumpHeight, s.MaxJumpHeight)
	setIfPresent(&cfg.MaxJumpTime, s.MaxJumpTime)
	setIfPresent(&cfg.RotationFactorPerFrame, s.RotationFactorPerFrame)
	setIfPresent(&cfg.FallMultiplier, s.FallMultiplier)
	setIfPresent(&cfg.GroundedGravity, s.GroundedGravity)
	setIfPresent(&cfg.TerminalFallSpeed, s.TerminalFallSpeed)
	setIfPresent(&cfg.JumpVelocityScale, s.JumpVelocityScale)
	setIfPresent(&cfg.FixedTimestep, s.FixedTimestep)
	cfg.HoldJumpMode = s.HoldJump
	cfg.ClampRotation = s.ClampRotation
	cfg.FallFromLedges = s.FallFromLedges

	variant, err := locomotion.ParseVariant(s.Variant)
	if err != nil {
		return cfg, err
	}
	cfg.Variant = variant

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("prefabs: locomotion spec: %w", err)
	}
	return cfg, nil
}

func setIfPresent(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// LevelSpec is a side-view tile grid. '#' is solid, 'S' marks a spawn
// point, anything else is empty. Row 0 is the top of the level.
type LevelSpec struct {
	Name           string   `yaml:"name"`
	TileSize       int      `yaml:"tile_size"`
	PixelsPerMeter float64  `yaml:"pixels_per_meter"`
	Rows           []string `yaml:"rows"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	return LoadSpec[LevelSpec](filename)
}
