// Package trace records per-tick actor state as CSV.
package trace

import (
	"fmt"
	"io"
	"log"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/motion"
)

// Row is one actor's state at the end of a tick.
type Row struct {
	Tick         uint64  `csv:"tick"`
	Actor        string  `csv:"actor"`
	State        string  `csv:"state"`
	X            float64 `csv:"x"`
	Y            float64 `csv:"y"`
	VX           float64 `csv:"vx"`
	VY           float64 `csv:"vy"`
	GroundSpeed  float64 `csv:"ground_speed"`
	SurfaceAngle float64 `csv:"surface_angle"`
	Rotation     float64 `csv:"rotation"`
	WallMode     string  `csv:"wall_mode"`
	Footing      string  `csv:"footing"`
	Surface      string  `csv:"surface"`
	JustLanded   bool    `csv:"just_landed"`
	Detach       string  `csv:"detach"`
}

// RowOf snapshots c.
func RowOf(w *ecs.World, c *motion.Controller) Row {
	row := Row{
		Tick:         w.Tick(),
		Actor:        actorName(w, c.Entity()),
		State:        c.State(),
		X:            c.Position.X,
		Y:            c.Position.Y,
		VX:           c.Velocity.X,
		VY:           c.Velocity.Y,
		GroundSpeed:  c.GroundSpeed,
		SurfaceAngle: c.SurfaceAngle,
		Rotation:     c.Rotation,
		WallMode:     c.WallMode.String(),
		Footing:      c.Footing.String(),
		JustLanded:   c.JustLanded,
		Detach:       string(c.DetachReason),
	}
	if primary, _ := c.Surfaces(); primary.Valid() && c.Grounded() {
		row.Surface = actorName(w, primary)
	}
	return row
}

func actorName(w *ecs.World, e ecs.Entity) string {
	if name := w.Name(e); name != "" {
		return name
	}
	return e.String()
}

// Recorder writes rows to an optional CSV sink and keeps them for Summarize.
type Recorder struct {
	out           io.Writer
	headerWritten bool
	rows          []Row
}

// NewRecorder returns a recorder writing to out. A nil out only keeps rows
// in memory.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Record appends rows and writes them to the sink.
func (r *Recorder) Record(rows ...Row) error {
	if r == nil || len(rows) == 0 {
		return nil
	}
	r.rows = append(r.rows, rows...)
	if r.out == nil {
		return nil
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(rows, r.out); err != nil {
			return fmt.Errorf("trace: write: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, r.out); err != nil {
		return fmt.Errorf("trace: write: %w", err)
	}
	return nil
}

func (r *Recorder) Rows() []Row {
	if r == nil {
		return nil
	}
	return r.rows
}

// Update records every controller in the world. It runs as the last system
// of a tick.
func (r *Recorder) Update(w *ecs.World) {
	var rows []Row
	ecs.ForEach(w, motion.ControllerComponent, func(_ ecs.Entity, c *motion.Controller) {
		rows = append(rows, RowOf(w, c))
	})
	if err := r.Record(rows...); err != nil {
		log.Printf("trace: %v", err)
	}
}
