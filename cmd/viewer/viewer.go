package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/config"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/level"
	"github.com/milk9111/loopdeloop/levels"
	"github.com/milk9111/loopdeloop/motion"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	eventLogSize = 6
)

type viewer struct {
	levelName  string
	tuningPath string
	debug      bool
	// replay keeps the level's scripted input instead of the keyboard.
	replay bool

	lvl     *level.Level
	watcher *config.Watcher

	camera cp.Vector
	zoom   float64
	paused bool
	input  component.Input
	events []string
}

func newViewer(levelName, tuningPath string, debug, replay bool, zoom float64, watch bool) (*viewer, error) {
	v := &viewer{levelName: levelName, tuningPath: tuningPath, debug: debug, replay: replay, zoom: zoom}
	if err := v.reload(); err != nil {
		return nil, err
	}
	if watch {
		dirs := []string{levels.Dir, levels.Dir + "/scripts"}
		w, err := config.NewWatcher(dirs...)
		if err != nil {
			log.Printf("viewer: watch %v: %v", dirs, err)
		} else {
			v.watcher = w
		}
	}
	return v, nil
}

func (v *viewer) Close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}

func (v *viewer) reload() error {
	tuning, err := config.LoadTuning(v.tuningPath)
	if err != nil {
		return err
	}
	tuning.Debug = tuning.Debug || v.debug
	spec, err := config.LoadLevel(v.levelName)
	if err != nil {
		return err
	}
	if !v.replay {
		spec.Inputs = nil
	}
	lvl, err := level.Build(spec, tuning)
	if err != nil {
		return err
	}
	lvl.World.AddSystem(&debugRenderer{space: lvl.Space})
	v.lvl = lvl
	v.events = nil
	if p, ok := lvl.Player(); ok {
		v.camera = p.Position
	}
	return nil
}

func (v *viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("viewer: %s changed, reloading", name)
			if err := v.reload(); err != nil {
				log.Printf("viewer: reload: %v", err)
			}
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("viewer: watch: %v", err)
		default:
			return
		}
	}
}

func (v *viewer) Update() error {
	v.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := v.reload(); err != nil {
			log.Printf("viewer: reload: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.paused = !v.paused
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		v.zoom = common.Clamp(v.zoom*(1+0.1*dy), 0.25, 6)
	}

	step := !v.paused || inpututil.IsKeyJustPressed(ebiten.KeyN)
	if !step {
		return nil
	}

	if p, ok := v.lvl.Player(); ok && !v.replay {
		var move float64
		if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
			move--
		}
		if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
			move++
		}
		v.input = v.input.Next(move, ebiten.IsKeyPressed(ebiten.KeySpace))
		if err := v.lvl.SetInput(v.lvl.World.Name(p.Entity()), v.input); err != nil {
			log.Printf("viewer: %v", err)
		}
	}

	v.lvl.Step()
	for _, ev := range v.lvl.World.Events().Drain() {
		v.events = append(v.events, fmt.Sprintf("%d %s %v", ev.Tick, ev.Type, ev.Data))
	}
	if len(v.events) > eventLogSize {
		v.events = v.events[len(v.events)-eventLogSize:]
	}

	if p, ok := v.lvl.Player(); ok {
		v.camera = v.camera.Lerp(p.Position, 0.15)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	drawWorld(v.lvl.World, screen, v.camera.X, v.camera.Y, v.zoom)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  tick %d  FPS %.0f", v.lvl.Spec.Name, v.lvl.World.Tick(), ebiten.ActualFPS())
	if v.paused {
		b.WriteString("  [paused, N steps]")
	}
	b.WriteString("\n")
	if p, ok := v.lvl.Player(); ok {
		b.WriteString(describe(p))
	}
	for _, ev := range v.events {
		b.WriteString("\n" + ev)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 10)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func describe(c *motion.Controller) string {
	primary, secondary := c.Surfaces()
	return fmt.Sprintf(
		"state %s  mode %s  footing %s\npos (%.1f, %.1f)  vel (%.2f, %.2f)  gs %.2f\nangle %.1f  rot %.1f  detach %s\nsurfaces %s %s",
		c.State(), c.WallMode, c.Footing,
		c.Position.X, c.Position.Y, c.Velocity.X, c.Velocity.Y, c.GroundSpeed,
		c.SurfaceAngle, c.Rotation, c.DetachReason,
		primary, secondary,
	)
}

