package terrain

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/ecs"
)

// Selector decides whether a raw hit counts as solid terrain.
type Selector func(h Hit) bool

// AcceptAll treats every hit as solid.
func AcceptAll(Hit) bool { return true }

// Caster issues linecasts against a terrain Space. A Caster owns its result
// buffer, so one Caster must not be shared between goroutines.
type Caster struct {
	space  *Space
	filter cp.ShapeFilter
	sel    Selector
	buf    Buffer
}

// NewCaster returns a caster over space. mask limits the shape categories
// considered; zero means every category. A nil sel accepts every hit.
func NewCaster(space *Space, mask uint, sel Selector) *Caster {
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	if sel == nil {
		sel = AcceptAll
	}
	return &Caster{
		space:  space,
		filter: cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: mask},
		sel:    sel,
	}
}

func (c *Caster) SetSelector(sel Selector) {
	if c == nil {
		return
	}
	if sel == nil {
		sel = AcceptAll
	}
	c.sel = sel
}

// Cast returns the nearest solid hit between origin and destination, or
// NoHit. side is recorded on the hit as the face of the actor that cast it.
func (c *Caster) Cast(origin, destination cp.Vector, side Side, source Source) Hit {
	if c == nil || c.space == nil || c.space.space == nil {
		return NoHit
	}
	if origin.Equal(destination) {
		return NoHit
	}
	c.collect(origin, destination, side, source)
	return SelectBest(c.buf.Hits(), c.sel)
}

// CastAll fills the caster's buffer with every raw hit, nearest first, and
// returns it. The slice is only valid until the next cast.
func (c *Caster) CastAll(origin, destination cp.Vector, side Side, source Source) []Hit {
	if c == nil || c.space == nil || c.space.space == nil || origin.Equal(destination) {
		return nil
	}
	c.collect(origin, destination, side, source)
	return c.buf.Hits()
}

func (c *Caster) collect(origin, destination cp.Vector, side Side, source Source) {
	c.buf.Reset()
	c.space.space.SegmentQuery(origin, destination, 0, c.filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		e, ok := shape.UserData.(ecs.Entity)
		if !ok || !e.Valid() {
			return
		}
		if normal.X == 0 && normal.Y == 0 {
			return
		}
		c.buf.Insert(Hit{
			Point:  point,
			Normal: normal,
			Alpha:  alpha,
			Side:   side,
			Source: source,
			Entity: e,
			Shape:  shape,
		})
	}, nil)
}

// SelectBest returns the first valid hit that sel accepts, or NoHit.
func SelectBest(hits []Hit, sel Selector) Hit {
	if sel == nil {
		sel = AcceptAll
	}
	for _, h := range hits {
		if !h.Valid() {
			continue
		}
		if sel(h) {
			return h
		}
	}
	return NoHit
}
