package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/motion"
	"github.com/milk9111/loopdeloop/terrain"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	normalLength        = 12
)

var (
	actorColor   = cp.FColor{R: 0.3, G: 0.6, B: 1, A: 1}
	sensorColor  = cp.FColor{R: 1, G: 1, B: 0.3, A: 0.9}
	primaryColor = cp.FColor{R: 1, G: 0.2, B: 0.2, A: 1}
	otherColor   = cp.FColor{R: 1, G: 0.6, B: 0.2, A: 1}
)

// renderSystem is a world system that also draws each frame.
type renderSystem interface {
	Draw(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64)
}

// drawWorld draws every render system of w, in update order, with the
// camera centered on (camX, camY).
func drawWorld(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	for _, s := range w.Systems() {
		if rs, ok := s.(renderSystem); ok {
			rs.Draw(w, screen, camX, camY, zoom)
		}
	}
}

// debugRenderer draws the terrain space and every actor. Its Update does
// nothing; it is a system only so drawWorld finds it.
type debugRenderer struct {
	space *terrain.Space
}

func (r *debugRenderer) Update(w *ecs.World) {}

func (r *debugRenderer) Draw(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	b := screen.Bounds()
	d := &debugDrawer{
		screen: screen,
		camera: cp.Vector{X: camX, Y: camY},
		zoom:   zoom,
		width:  float64(b.Dx()),
		height: float64(b.Dy()),
	}
	cp.DrawSpace(r.space.Space(), d)
	ecs.ForEach(w, motion.ControllerComponent, func(_ ecs.Entity, c *motion.Controller) {
		d.drawActor(c)
	})
}

// debugDrawer renders a cp space with +Y up, centered on camera.
type debugDrawer struct {
	screen *ebiten.Image
	camera cp.Vector
	zoom   float64
	width  float64
	height float64
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := pos.Add(cp.ForAngle(angle).Mult(radius))
	d.drawLine(pos, end, outline)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(pos.Add(cp.Vector{X: -half}), pos.Add(cp.Vector{X: half}), fill)
	d.drawLine(pos.Add(cp.Vector{Y: -half}), pos.Add(cp.Vector{Y: half}), fill)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor dims sensor shapes so areas read differently from solid terrain.
func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 0.4, G: 0.4, B: 1, A: 0.5}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

// drawActor draws the actor's box in its rotation, its foot probes and the
// contacts it stands on.
func (d *debugDrawer) drawActor(c *motion.Controller) {
	if c == nil {
		return
	}
	s := c.Tuning.Sensors
	corners := []cp.Vector{
		{X: -s.HalfWidth, Y: -s.HalfHeight},
		{X: s.HalfWidth, Y: -s.HalfHeight},
		{X: s.HalfWidth, Y: s.HalfHeight},
		{X: -s.HalfWidth, Y: s.HalfHeight},
	}
	for i, p := range corners {
		corners[i] = c.Position.Add(common.Rotate(p, c.Rotation))
	}
	d.drawPolygon(corners, actorColor)

	for _, x := range [2]float64{-s.FootSpread, s.FootSpread} {
		from := c.Position.Add(c.WallMode.ToWorld(cp.Vector{X: x, Y: -s.HalfHeight + s.ClimbHeight}))
		to := c.Position.Add(c.WallMode.ToWorld(cp.Vector{X: x, Y: -s.HalfHeight - s.DropDepth}))
		d.drawLine(from, to, sensorColor)
	}

	d.drawHit(c.PrimaryHit, primaryColor)
	d.drawHit(c.SecondaryHit, otherColor)
}

func (d *debugDrawer) drawHit(h terrain.Hit, color cp.FColor) {
	if !h.Valid() {
		return
	}
	d.DrawDot(debugDotSize, h.Point, color, nil)
	d.drawLine(h.Point, h.Point.Add(h.Normal.Mult(normalLength)), color)
}

func (d *debugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(color))
}

func (d *debugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		d.drawLine(a, b, color)
	}
}

func (d *debugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

// toScreen maps world units (+Y up) to screen pixels (+Y down).
func (d *debugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return d.width/2 + (v.X-d.camera.X)*d.zoom, d.height/2 - (v.Y-d.camera.Y)*d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
