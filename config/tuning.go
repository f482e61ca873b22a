// Package config loads movement tuning and level descriptions.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Tuning holds every movement constant. Speeds are units per tick and
// angles are degrees.
type Tuning struct {
	Debug bool `yaml:"debug"`

	Gravity         float64 `yaml:"gravity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	Acceleration    float64 `yaml:"acceleration"`
	Deceleration    float64 `yaml:"deceleration"`
	Friction        float64 `yaml:"friction"`
	TopSpeed        float64 `yaml:"top_speed"`
	AirAcceleration float64 `yaml:"air_acceleration"`
	SlopeFactor     float64 `yaml:"slope_factor"`
	JumpSpeed       float64 `yaml:"jump_speed"`
	SlipSpeed       float64 `yaml:"slip_speed"`

	// WallModeSpeed is the ground speed an actor needs before it may change wall mode.
	WallModeSpeed float64 `yaml:"wall_mode_speed"`
	// WallModeHysteresis is how far past a 45 degree boundary the surface
	// must turn before the wall mode follows.
	WallModeHysteresis float64 `yaml:"wall_mode_hysteresis"`
	// ContinuityThreshold is the largest surface angle change per tick that
	// keeps an actor attached.
	ContinuityThreshold float64 `yaml:"continuity_threshold"`
	// OneWayAngle bounds how far from straight up a one-way surface normal may point.
	OneWayAngle float64 `yaml:"one_way_angle"`

	TerrainMask uint32 `yaml:"terrain_mask"`

	Sensors Sensors `yaml:"sensors"`
}

// Sensors places the actor's probes relative to its center, in the frame
// of its current wall mode.
type Sensors struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	// FootSpread is the horizontal offset of each foot from the center.
	FootSpread float64 `yaml:"foot_spread"`
	// ClimbHeight is how far above the foot the tile probe starts.
	ClimbHeight float64 `yaml:"climb_height"`
	// DropDepth is how far below the foot the tile probe reaches.
	DropDepth float64 `yaml:"drop_depth"`
	// SideHeight is how far above the foot the side probe starts.
	SideHeight float64 `yaml:"side_height"`
	// WallHeight is the height of the wall casts relative to the center.
	WallHeight float64 `yaml:"wall_height"`

	GroundStart Point `yaml:"ground_start"`
	GroundEnd   Point `yaml:"ground_end"`
}

// Point is a yaml-friendly 2D vector.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

// DefaultTuning returns the embedded defaults.
func DefaultTuning() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultsYAML, &t); err != nil {
		panic("config: embedded defaults: " + err.Error())
	}
	return t
}

// LoadTuning reads the embedded defaults and, when path is set, overlays
// the fields present in that file.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

// Override returns a copy of t with the fields present in node applied.
// An empty node leaves t unchanged.
func (t Tuning) Override(node yaml.Node) (Tuning, error) {
	if node.Kind == 0 {
		return t, nil
	}
	out := t
	if err := node.Decode(&out); err != nil {
		return t, fmt.Errorf("config: tuning override: %w", err)
	}
	if err := out.Validate(); err != nil {
		return t, fmt.Errorf("config: tuning override: %w", err)
	}
	return out, nil
}

// Validate rejects tunings the movement code cannot run with.
func (t Tuning) Validate() error {
	s := t.Sensors
	switch {
	case t.MaxFallSpeed <= 0:
		return fmt.Errorf("max_fall_speed %g: %w", t.MaxFallSpeed, ErrInvalidTuning)
	case t.TopSpeed <= 0:
		return fmt.Errorf("top_speed %g: %w", t.TopSpeed, ErrInvalidTuning)
	case s.HalfWidth <= 0 || s.HalfHeight <= 0:
		return fmt.Errorf("sensor box %gx%g: %w", s.HalfWidth, s.HalfHeight, ErrInvalidTuning)
	case s.FootSpread < 0 || s.FootSpread > s.HalfWidth:
		return fmt.Errorf("foot_spread %g outside [0, %g]: %w", s.FootSpread, s.HalfWidth, ErrInvalidTuning)
	case s.DropDepth <= 0:
		return fmt.Errorf("drop_depth %g: %w", s.DropDepth, ErrInvalidTuning)
	case s.GroundStart == s.GroundEnd:
		return fmt.Errorf("ground sensor points coincide: %w", ErrInvalidTuning)
	case t.MaxFallSpeed >= s.HalfHeight-s.GroundStart.Y:
		return fmt.Errorf("max_fall_speed %g would skip the ground sensor: %w", t.MaxFallSpeed, ErrInvalidTuning)
	}
	return nil
}
