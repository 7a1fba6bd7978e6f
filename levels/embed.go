package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"github.com/milk9111/undercroft/prefabs"
)

//go:embed *.json
var LevelsFS embed.FS

// Scene is a placed set of prefabs. ID identifies one loaded session in
// logs and state reports; it is generated when the file leaves it empty.
type Scene struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Entities []Entity `json:"entities"`
}

// Entity places one prefab. Components replace the prefab's component
// entries of the same name.
type Entity struct {
	Prefab     string            `json:"prefab"`
	Name       string            `json:"name,omitempty"`
	Position   *prefabs.Vec3Spec `json:"position,omitempty"`
	Rotation   *prefabs.Vec3Spec `json:"rotation,omitempty"`
	Components map[string]any    `json:"components,omitempty"`
}

func LoadSceneFromFS(name string) (*Scene, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	if scene.ID == "" {
		scene.ID = uuid.NewString()
	} else if _, err := uuid.Parse(scene.ID); err != nil {
		return nil, fmt.Errorf("scene id %q: %w", scene.ID, err)
	}
	for i, ent := range scene.Entities {
		if ent.Prefab == "" {
			return nil, fmt.Errorf("scene entity %d: prefab is empty", i)
		}
	}
	return &scene, nil
}
