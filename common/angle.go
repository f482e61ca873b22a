package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/floats/scalar"
)

// angleResolution is the rounding step applied to computed angles so that
// cardinal normals map to exact multiples of 90.
const angleResolution = 1e-6

// PositiveAngle wraps deg into [0, 360).
func PositiveAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// NormalAngle returns the direction of n in degrees, in [0, 360).
func NormalAngle(n cp.Vector) float64 {
	if n.X == 0 && n.Y == 0 {
		return 0
	}
	deg := mgl64.RadToDeg(math.Atan2(n.Y, n.X))
	deg = math.Round(deg/angleResolution) * angleResolution
	return PositiveAngle(deg)
}

// AngleDiff returns the signed shortest rotation from b to a, in (-180, 180].
func AngleDiff(a, b float64) float64 {
	d := PositiveAngle(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}

func AbsAngleDiff(a, b float64) float64 {
	return math.Abs(AngleDiff(a, b))
}

// AngleWithin reports whether a and b are at most tol degrees apart.
func AngleWithin(a, b, tol float64) bool {
	d := AbsAngleDiff(a, b)
	return d <= tol || scalar.EqualWithinAbs(d, tol, angleResolution)
}

// DirectionOf returns the unit vector pointing at deg.
func DirectionOf(deg float64) cp.Vector {
	r := mgl64.DegToRad(deg)
	return cp.Vector{X: math.Cos(r), Y: math.Sin(r)}
}

// Rotate rotates v counter-clockwise by deg.
func Rotate(v cp.Vector, deg float64) cp.Vector {
	if deg == 0 {
		return v
	}
	out := mgl64.Rotate2D(mgl64.DegToRad(deg)).Mul2x1(mgl64.Vec2{v.X, v.Y})
	return cp.Vector{X: out[0], Y: out[1]}
}

// LineAngle returns the direction of the segment a->b in degrees.
func LineAngle(a, b cp.Vector) float64 {
	return NormalAngle(b.Sub(a))
}
