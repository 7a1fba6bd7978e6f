package component

// Name is the scene name an entity was built with. Links between entities
// are resolved from names when the scene loads.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// SolidTag marks static scenery that blocks the player and stops the
// focus ray.
type SolidTag struct{}

var SolidTagComponent = NewComponent[SolidTag]()
