package assets

import (
	"testing"

	"github.com/milk9111/undercroft/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"audio/door_open.wav", "audio/door_open.wav"},
		{"assets/audio/door_open.wav", "audio/door_open.wav"},
		{"/home/me/undercroft/assets/audio/door_open.wav", "audio/door_open.wav"},
		{"/tmp/door_open.wav", "door_open.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanAssetPath(tt.in))
		})
	}
}

func TestLoadAudio(t *testing.T) {
	b, err := LoadAudio("assets/audio/door_open.wav")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(b[:4]))

	_, err = LoadAudio("audio/missing.wav")
	assert.Error(t, err)
}

func TestPrefabClipsAreEmbedded(t *testing.T) {
	files := AudioFiles()
	require.NotEmpty(t, files)

	for _, name := range []string{"player.yaml", "door.yaml", "valve.yaml", "water.yaml", "gramophone.yaml"} {
		spec, err := prefabs.LoadEntityBuildSpec(name)
		require.NoError(t, err, name)
		audio, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](spec.Components["audio"])
		require.NoError(t, err, name)
		for _, clip := range audio.Clips {
			assert.Contains(t, files, clip.File, "%s: %s", name, clip.Name)
		}
	}
}
