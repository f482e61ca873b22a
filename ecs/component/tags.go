package component

// AreaTag marks a volumetric, non-collidable node. Terrain casts never
// treat it as ground.
type AreaTag struct{}

var AreaTagComponent = NewComponent[AreaTag]()

type ActorTag struct{}

var ActorTagComponent = NewComponent[ActorTag]()

// PlayerTag marks the actor driven by keyboard input in the viewer.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
