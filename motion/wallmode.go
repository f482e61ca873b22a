package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/terrain"
	"gonum.org/v1/gonum/floats/scalar"
)

// WallMode is the quadrant a grounded actor is running in. Modes are
// ordered counter-clockwise.
type WallMode uint8

const (
	WallFloor WallMode = iota
	WallRight
	WallCeiling
	WallLeft
)

func (m WallMode) String() string {
	switch m {
	case WallFloor:
		return "floor"
	case WallRight:
		return "right"
	case WallCeiling:
		return "ceiling"
	case WallLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Angle is the nominal surface angle of the mode.
func (m WallMode) Angle() float64 {
	return float64(m%4) * 90
}

func (m WallMode) Next() WallMode { return (m + 1) % 4 }
func (m WallMode) Prev() WallMode { return (m + 3) % 4 }

// Up points away from the surface the mode runs on.
func (m WallMode) Up() cp.Vector {
	return m.ToWorld(cp.Vector{Y: 1})
}

// ToWorld rotates a vector from the mode's local frame, where the surface
// is below, into world space.
func (m WallMode) ToWorld(v cp.Vector) cp.Vector {
	switch m % 4 {
	case WallRight:
		return cp.Vector{X: -v.Y, Y: v.X}
	case WallCeiling:
		return cp.Vector{X: -v.X, Y: -v.Y}
	case WallLeft:
		return cp.Vector{X: v.Y, Y: -v.X}
	default:
		return v
	}
}

// NextWallMode moves at most one step from mode when surfaceAngle is more
// than hysteresis degrees past the 45 degree boundary of mode.
func NextWallMode(mode WallMode, surfaceAngle, hysteresis float64) WallMode {
	limit := 45 + hysteresis
	d := common.AngleDiff(surfaceAngle, mode.Angle())
	switch {
	case d > limit:
		return mode.Next()
	case d < -limit:
		return mode.Prev()
	}
	return mode
}

// Footing is the foot an actor currently stands on.
type Footing uint8

const (
	FootingNone Footing = iota
	FootingLeft
	FootingRight
)

func (f Footing) String() string {
	switch f {
	case FootingLeft:
		return "left"
	case FootingRight:
		return "right"
	default:
		return "none"
	}
}

// sign is the foot's local x direction.
func (f Footing) sign() float64 {
	switch f {
	case FootingLeft:
		return -1
	case FootingRight:
		return 1
	default:
		return 0
	}
}

func (f Footing) opposite() Footing {
	switch f {
	case FootingLeft:
		return FootingRight
	case FootingRight:
		return FootingLeft
	default:
		return FootingNone
	}
}

const footingTieEpsilon = 1e-9

// ResolveFooting picks the contact an actor stands on. With both feet on
// ground the contact furthest along the mode's up axis wins; equal heights
// go to the foot in the direction of travel, then to the left foot.
func ResolveFooting(left, right terrain.Hit, mode WallMode, travel float64) (Footing, terrain.Hit) {
	lv, rv := left.Valid(), right.Valid()
	switch {
	case lv && rv:
		up := mode.Up()
		dl, dr := left.Point.Dot(up), right.Point.Dot(up)
		switch {
		case scalar.EqualWithinAbs(dl, dr, footingTieEpsilon):
			if travel > 0 {
				return FootingRight, right
			}
			return FootingLeft, left
		case dl > dr:
			return FootingLeft, left
		default:
			return FootingRight, right
		}
	case lv:
		return FootingLeft, left
	case rv:
		return FootingRight, right
	}
	return FootingNone, terrain.NoHit
}
