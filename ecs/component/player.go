package component

import "github.com/milk9111/undercroft/transition"

// Player is the first-person controller state.
type Player struct {
	WalkSpeed        float64
	CrouchWalkSpeed  float64
	SprintMultiplier float64
	JumpEnabled      bool
	JumpForce        float64
	Gravity          float64
	MouseSensitivity float64
	Radius           float64

	Yaw           float64
	Height        float64
	VerticalSpeed float64
	Grounded      bool
	Moving        bool
	Speed         float64

	// Crouch moves the camera height; open means crouched.
	Crouch       *transition.Toggle[float64]
	CameraHeight float64

	FlashlightEnabled bool
	Flashlight        bool

	// Surfaces lists the surfaces under the player, most recent last.
	Surfaces []uint64
}

var PlayerComponent = NewComponent[Player]()

// CurrentSurface returns the surface most recently stepped on.
func (p *Player) CurrentSurface() (uint64, bool) {
	if p == nil || len(p.Surfaces) == 0 {
		return 0, false
	}
	return p.Surfaces[len(p.Surfaces)-1], true
}

// Footsteps plays a random clip from Clips on a fixed interval while the
// player moves faster than VelocityThreshold.
type Footsteps struct {
	Enabled           bool
	Clips             []string
	WalkInterval      float64
	SprintInterval    float64
	VelocityThreshold float64
	MinPitch          float64
	MaxPitch          float64

	NextStep  float64
	LastIndex int
}

var FootstepsComponent = NewComponent[Footsteps]()
