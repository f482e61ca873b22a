package config

import (
	"fmt"

	"github.com/milk9111/loopdeloop/levels"
	"gopkg.in/yaml.v3"
)

// LevelSpec describes a scene: terrain nodes, the actors running on them
// and, for headless runs, a scripted input timeline.
type LevelSpec struct {
	Name   string      `yaml:"name"`
	Ticks  int         `yaml:"ticks"`
	Nodes  []NodeSpec  `yaml:"nodes"`
	Actors []ActorSpec `yaml:"actors"`
	Inputs []InputSpec `yaml:"inputs"`
}

type NodeSpec struct {
	Name      string        `yaml:"name"`
	Parent    string        `yaml:"parent"`
	Transform TransformSpec `yaml:"transform"`
	Shapes    []ShapeSpec   `yaml:"shapes"`
	Layer     *LayerSpec    `yaml:"layer"`
	Sensor    bool          `yaml:"sensor"`
	Platform  *PlatformSpec `yaml:"platform"`
	Object    *ObjectSpec   `yaml:"object"`
	Area      *AreaSpec     `yaml:"area"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type ShapeSpec struct {
	Kind       string  `yaml:"kind"`
	Points     []Point `yaml:"points"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Offset     Point   `yaml:"offset"`
	StartAngle float64 `yaml:"start_angle"`
	EndAngle   float64 `yaml:"end_angle"`
	Steps      int     `yaml:"steps"`
	Thickness  float64 `yaml:"thickness"`
}

type LayerSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type PlatformSpec struct {
	FromChildren bool `yaml:"from_children"`
	OneWay       bool `yaml:"one_way"`
	// OneWayAngle overrides the tuning's one_way_angle when positive.
	OneWayAngle float64 `yaml:"one_way_angle"`
	Script      string  `yaml:"script"`
}

// ObjectSpec attaches an object trigger. ActivateOn names the platform or
// area event that switches it: "surface", "collision" or "area".
type ObjectSpec struct {
	FromChildren      bool   `yaml:"from_children"`
	AllowReactivation bool   `yaml:"allow_reactivation"`
	ActivateOn        string `yaml:"activate_on"`
	Script            string `yaml:"script"`
}

type AreaSpec struct {
	FromChildren bool   `yaml:"from_children"`
	Script       string `yaml:"script"`
}

type ActorSpec struct {
	Name   string   `yaml:"name"`
	Player bool     `yaml:"player"`
	Spawn  Point    `yaml:"spawn"`
	Paths  []string `yaml:"paths"`
	// Tuning overrides individual fields of the level's base tuning.
	Tuning yaml.Node `yaml:"tuning"`
}

// InputSpec holds an actor's input for ticks [From, To]. To zero means
// until the end of the run.
type InputSpec struct {
	Actor string  `yaml:"actor"`
	From  int     `yaml:"from"`
	To    int     `yaml:"to"`
	MoveX float64 `yaml:"move_x"`
	Jump  bool    `yaml:"jump"`
}

// Covers reports whether the entry applies on tick.
func (in InputSpec) Covers(tick int) bool {
	return tick >= in.From && (in.To == 0 || tick <= in.To)
}

// LoadSpec reads a yaml file through the levels loader: from disk when it
// exists, otherwise from the embedded copy.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := levels.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadLevel loads and validates a level spec.
func LoadLevel(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate checks names and references; shape geometry is checked when the
// level is built.
func (l *LevelSpec) Validate() error {
	names := make(map[string]bool, len(l.Nodes))
	for i, n := range l.Nodes {
		if n.Name == "" {
			return fmt.Errorf("node %d has no name: %w", i, ErrInvalidLevel)
		}
		if names[n.Name] {
			return fmt.Errorf("duplicate node %q: %w", n.Name, ErrInvalidLevel)
		}
		names[n.Name] = true
		if n.Object != nil {
			switch n.Object.ActivateOn {
			case "", "surface", "collision", "area":
			default:
				return fmt.Errorf("node %q: activate_on %q: %w", n.Name, n.Object.ActivateOn, ErrInvalidLevel)
			}
		}
	}
	actors := make(map[string]bool, len(l.Actors))
	for i, a := range l.Actors {
		if a.Name == "" {
			return fmt.Errorf("actor %d has no name: %w", i, ErrInvalidLevel)
		}
		if actors[a.Name] || names[a.Name] {
			return fmt.Errorf("duplicate name %q: %w", a.Name, ErrInvalidLevel)
		}
		actors[a.Name] = true
	}
	for _, in := range l.Inputs {
		if !actors[in.Actor] {
			return fmt.Errorf("input for unknown actor %q: %w", in.Actor, ErrInvalidLevel)
		}
		if in.To != 0 && in.To < in.From {
			return fmt.Errorf("input for %q ends before it starts: %w", in.Actor, ErrInvalidLevel)
		}
	}
	return nil
}
