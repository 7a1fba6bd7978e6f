package component

import "github.com/milk9111/undercroft/transition"

// Water is a rising water plane. The transform Y follows Level.Current.
type Water struct {
	Level *transition.Level

	Debris   string
	LoopClip string
}

var WaterComponent = NewComponent[Water]()
