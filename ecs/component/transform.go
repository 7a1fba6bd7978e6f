package component

import "github.com/milk9111/undercroft/common"

// Transform places an entity in the scene. Rotation is in Euler degrees.
type Transform struct {
	Position common.Vec3
	Rotation common.Vec3
	Scale    common.Vec3
}

var TransformComponent = NewComponent[Transform]()
