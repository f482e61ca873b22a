package terrain

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
)

// Side is both a cast filter and the face of an actor that touched a surface.
type Side uint8

const (
	SideAll Side = iota
	SideRight
	SideTop
	SideLeft
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideAll:
		return "all"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// ParseSide accepts the names produced by String.
func ParseSide(name string) (Side, bool) {
	for s := SideAll; s <= SideBottom; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return SideAll, false
}

// SideAngle maps a side to the angle of its outward normal. SideAll has none.
func SideAngle(s Side) (float64, bool) {
	switch s {
	case SideRight:
		return 0, true
	case SideTop:
		return 90, true
	case SideLeft:
		return 180, true
	case SideBottom:
		return 270, true
	default:
		return 0, false
	}
}

// AngleSide buckets an angle into the nearest 90 degree sector. Boundaries
// at 45/135/225/315 belong to the sector counter-clockwise of them.
func AngleSide(deg float64) Side {
	a := common.PositiveAngle(deg)
	switch {
	case a < 45 || a >= 315:
		return SideRight
	case a < 135:
		return SideTop
	case a < 225:
		return SideLeft
	default:
		return SideBottom
	}
}

// SideOfNormal classifies a surface normal.
func SideOfNormal(n cp.Vector) Side {
	return AngleSide(common.NormalAngle(n))
}
