package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultTuningIsValid(t *testing.T) {
	tuning := DefaultTuning()
	if err := tuning.Validate(); err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	if tuning.WallModeSpeed != 0.5 || tuning.WallModeHysteresis != 10 || tuning.ContinuityThreshold != 70 {
		t.Fatalf("unexpected thresholds %+v", tuning)
	}
}

func TestTuningOverride(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		check   func(Tuning) bool
		wantErr error
	}{
		{
			name:  "empty keeps defaults",
			src:   "",
			check: func(tu Tuning) bool { return tu == DefaultTuning() },
		},
		{
			name: "partial override",
			src:  "top_speed: 3\nsensors:\n  foot_spread: 7",
			check: func(tu Tuning) bool {
				d := DefaultTuning()
				return tu.TopSpeed == 3 && tu.Sensors.FootSpread == 7 && tu.Gravity == d.Gravity && tu.Sensors.HalfHeight == d.Sensors.HalfHeight
			},
		},
		{
			name:    "fall speed skips the ground sensor",
			src:     "max_fall_speed: 40",
			wantErr: ErrInvalidTuning,
		},
		{
			name:    "feet outside the box",
			src:     "sensors:\n  foot_spread: 30",
			wantErr: ErrInvalidTuning,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var node yaml.Node
			if tc.src != "" {
				var doc yaml.Node
				if err := yaml.Unmarshal([]byte(tc.src), &doc); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				node = *doc.Content[0]
			}
			got, err := DefaultTuning().Override(node)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("override: %v", err)
			}
			if !tc.check(got) {
				t.Fatalf("unexpected tuning %+v", got)
			}
		})
	}
}

func TestLoadTuningFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("gravity: 0.5\ndebug: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tuning.Gravity != 0.5 || !tuning.Debug || tuning.TopSpeed != DefaultTuning().TopSpeed {
		t.Fatalf("unexpected tuning %+v", tuning)
	}

	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLevelValidate(t *testing.T) {
	cases := []struct {
		name string
		spec LevelSpec
		ok   bool
	}{
		{
			name: "valid",
			spec: LevelSpec{
				Nodes:  []NodeSpec{{Name: "a"}, {Name: "b", Parent: "a", Object: &ObjectSpec{ActivateOn: "area"}}},
				Actors: []ActorSpec{{Name: "sonic"}},
				Inputs: []InputSpec{{Actor: "sonic", From: 1, To: 5}},
			},
			ok: true,
		},
		{name: "unnamed node", spec: LevelSpec{Nodes: []NodeSpec{{}}}},
		{name: "duplicate node", spec: LevelSpec{Nodes: []NodeSpec{{Name: "a"}, {Name: "a"}}}},
		{name: "bad activate_on", spec: LevelSpec{Nodes: []NodeSpec{{Name: "a", Object: &ObjectSpec{ActivateOn: "touch"}}}}},
		{name: "actor named like node", spec: LevelSpec{Nodes: []NodeSpec{{Name: "a"}}, Actors: []ActorSpec{{Name: "a"}}}},
		{name: "input for nobody", spec: LevelSpec{Inputs: []InputSpec{{Actor: "ghost"}}}},
		{name: "input ends early", spec: LevelSpec{Actors: []ActorSpec{{Name: "s"}}, Inputs: []InputSpec{{Actor: "s", From: 5, To: 2}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}
}

func TestInputCovers(t *testing.T) {
	open := InputSpec{From: 3}
	closed := InputSpec{From: 3, To: 4}
	for tick, want := range map[int][2]bool{2: {false, false}, 3: {true, true}, 4: {true, true}, 5: {true, false}} {
		if open.Covers(tick) != want[0] || closed.Covers(tick) != want[1] {
			t.Fatalf("tick %d: open %v closed %v", tick, open.Covers(tick), closed.Covers(tick))
		}
	}
}

func TestLoadEmbeddedLevel(t *testing.T) {
	spec, err := LoadLevel("springs.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "springs" || len(spec.Nodes) == 0 || len(spec.Actors) != 1 {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if spec.Actors[0].Tuning.Kind == 0 {
		t.Fatalf("actor tuning override was not kept as a yaml node")
	}
	if _, err := LoadLevel("nope.yaml"); err == nil {
		t.Fatalf("expected an error for a missing level")
	}
}

func TestWatcherReportsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "spring.tengo")
	if err := os.WriteFile(target, []byte("x := 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("unexpected event for %s", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}

func TestFileKinds(t *testing.T) {
	cases := map[string][2]bool{
		"levels/loop.yaml":      {true, false},
		"tuning.YML":            {true, false},
		"scripts/spring.tengo":  {false, true},
		"levels/loop.yaml.swp":  {false, false},
		"scripts/spring.tengo~": {false, false},
	}
	for path, want := range cases {
		if IsSpecFile(path) != want[0] || IsScriptFile(path) != want[1] {
			t.Fatalf("%s: spec %v script %v", path, IsSpecFile(path), IsScriptFile(path))
		}
	}
}
