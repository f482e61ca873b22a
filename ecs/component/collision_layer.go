package component

// CollisionLayer lets terrain declare a collision category and actors a mask
// so casts can skip whole groups of shapes.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the terrain space will treat it as category 1.
	Category uint32 `yaml:"category,omitempty"`
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, casts treat it as all-bits set (collide with all).
	Mask uint32 `yaml:"mask,omitempty"`
}

// CategoryBits returns the effective category.
func (l CollisionLayer) CategoryBits() uint {
	if l.Category == 0 {
		return 1
	}
	return uint(l.Category)
}

// MaskBits returns the effective mask.
func (l CollisionLayer) MaskBits() uint {
	if l.Mask == 0 {
		return ^uint(0)
	}
	return uint(l.Mask)
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
