package component

// Room is an area of the scene behind a door. Occupied is true while the
// player stands on one of the room's surfaces.
type Room struct {
	Door     uint64
	Occupied bool
}

var RoomComponent = NewComponent[Room]()

// RoomAudio drives the mixer for one room.
type RoomAudio struct {
	Snapshot           string
	DoorOpenSnapshot   string
	DoorClosedSnapshot string
	TransitionTime     float64

	// RugCutoff applies on rugs and outside the room, FloorCutoff on the
	// room's bare floor.
	RugCutoff   float64
	FloorCutoff float64

	Entered bool
	Cutoff  float64
}

var RoomAudioComponent = NewComponent[RoomAudio]()

// Surface is a walkable area. Room is zero for surfaces outside any room.
type Surface struct {
	Room uint64
	Rug  bool
}

var SurfaceComponent = NewComponent[Surface]()
