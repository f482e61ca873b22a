package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPositiveAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-360, 0},
	}
	for _, c := range cases {
		if got := PositiveAngle(c.in); got != c.want {
			t.Fatalf("PositiveAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalAngleCardinals(t *testing.T) {
	cases := []struct {
		name string
		n    cp.Vector
		want float64
	}{
		{"right", cp.Vector{X: 1}, 0},
		{"up", cp.Vector{Y: 1}, 90},
		{"left", cp.Vector{X: -1}, 180},
		{"down", cp.Vector{Y: -1}, 270},
		{"diagonal", cp.Vector{X: 1, Y: 1}.Normalize(), 45},
		{"zero", cp.Vector{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalAngle(c.n); got != c.want {
				t.Fatalf("NormalAngle(%v) = %v, want %v", c.n, got, c.want)
			}
		})
	}
}

func TestAngleDiff(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{10, 350, 20},
		{350, 10, -20},
		{180, 0, 180},
		{0, 180, 180},
		{90, 90, 0},
	}
	for _, c := range cases {
		if got := AngleDiff(c.a, c.b); !scalar.EqualWithinAbs(got, c.want, 1e-9) {
			t.Fatalf("AngleDiff(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
	if !AngleWithin(355, 5, 10) {
		t.Fatalf("expected 355 and 5 to be within 10 degrees")
	}
	if AngleWithin(0, 71, 70) {
		t.Fatalf("expected 0 and 71 to be further than 70 degrees")
	}
}

func TestRotate(t *testing.T) {
	got := Rotate(cp.Vector{X: 0, Y: -1}, 90)
	if !scalar.EqualWithinAbs(got.X, 1, 1e-9) || !scalar.EqualWithinAbs(got.Y, 0, 1e-9) {
		t.Fatalf("Rotate down by 90 = %v, want (1, 0)", got)
	}
	dir := DirectionOf(180)
	if !scalar.EqualWithinAbs(dir.X, -1, 1e-9) || math.Abs(dir.Y) > 1e-9 {
		t.Fatalf("DirectionOf(180) = %v", dir)
	}
	if got := LineAngle(cp.Vector{}, cp.Vector{X: 2, Y: 2}); got != 45 {
		t.Fatalf("LineAngle = %v, want 45", got)
	}
}
