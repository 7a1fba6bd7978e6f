package mixer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/gopxl/beep"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/system"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ component.ClipPlayer = (*Voice)(nil)
	_ component.Pitcher    = (*Voice)(nil)
	_ system.SnapshotMixer = (*Mixer)(nil)
)

// constClip is a finite clip of one constant sample value.
type constClip struct {
	value float64
	n     int
	pos   int
}

func (c *constClip) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.n {
		return 0, false
	}
	n := min(len(samples), c.n-c.pos)
	for i := range samples[:n] {
		samples[i] = [2]float64{c.value, c.value}
	}
	c.pos += n
	return n, true
}

func (c *constClip) Err() error    { return nil }
func (c *constClip) Len() int      { return c.n }
func (c *constClip) Position() int { return c.pos }

func (c *constClip) Seek(p int) error {
	if p < 0 || p > c.n {
		return fmt.Errorf("seek %d out of range", p)
	}
	c.pos = p
	return nil
}

func testSpec() prefabs.MixerSpec {
	return prefabs.MixerSpec{
		SampleRate: 100,
		Initial:    "hall",
		Groups: []prefabs.MixerGroupSpec{
			{Name: "sfx"},
			{Name: "footsteps", Cutoff: "footstepCutoff"},
			{Name: "music"},
		},
		Params: map[string]float64{"footstepCutoff": 360},
		Snapshots: map[string]prefabs.SnapshotSpec{
			"hall": {Gains: map[string]float64{"sfx": 1, "footsteps": 1, "music": 0.2}},
			"loud": {Gains: map[string]float64{"music": 1}},
			"mute": {Gains: map[string]float64{"sfx": 0}},
		},
	}
}

func newTestMixer(t *testing.T) *Mixer {
	t.Helper()
	m, err := New(testSpec())
	require.NoError(t, err)
	return m
}

func stream(m *Mixer, n int) [][2]float64 {
	out := make([][2]float64, n)
	m.Stream(out)
	return out
}

func TestNewAppliesInitialSnapshot(t *testing.T) {
	m := newTestMixer(t)

	assert.Equal(t, "hall", m.Snapshot())
	assert.Equal(t, 0.2, m.Gain("music"))
	assert.Equal(t, 1.0, m.Gain("sfx"))
	assert.Equal(t, -1.0, m.Gain("nope"))
	assert.Equal(t, []string{"sfx", "footsteps", "music"}, m.Groups())
	assert.Equal(t, []string{"hall", "loud", "mute"}, m.Snapshots())
	assert.Equal(t, 100, m.SampleRate())
}

func TestNewRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*prefabs.MixerSpec)
		wantErr string
	}{
		{"no groups", func(s *prefabs.MixerSpec) { s.Groups = nil }, "no groups"},
		{"unnamed group", func(s *prefabs.MixerSpec) { s.Groups = append(s.Groups, prefabs.MixerGroupSpec{}) }, "group has no name"},
		{"duplicate group", func(s *prefabs.MixerSpec) { s.Groups = append(s.Groups, prefabs.MixerGroupSpec{Name: "sfx"}) }, `duplicate group "sfx"`},
		{"snapshot names unknown group", func(s *prefabs.MixerSpec) {
			s.Snapshots["odd"] = prefabs.SnapshotSpec{Gains: map[string]float64{"voice": 1}}
		}, `unknown group "voice"`},
		{"unknown initial", func(s *prefabs.MixerSpec) { s.Initial = "attic" }, `unknown snapshot "attic"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.mutate(&spec)
			_, err := New(spec)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTransitionFadesOverDuration(t *testing.T) {
	m := newTestMixer(t)

	require.NoError(t, m.TransitionTo("loud", 1.0))
	assert.Equal(t, "loud", m.Snapshot())

	stream(m, 50)
	assert.InDelta(t, 0.6, m.Gain("music"), 1e-9)
	assert.Equal(t, 1.0, m.Gain("sfx"), "groups outside the snapshot keep their gain")

	stream(m, 50)
	assert.Equal(t, 1.0, m.Gain("music"))

	stream(m, 50)
	assert.Equal(t, 1.0, m.Gain("music"))
}

func TestTransitionRetargetsFromCurrentGain(t *testing.T) {
	m := newTestMixer(t)

	require.NoError(t, m.TransitionTo("loud", 1.0))
	stream(m, 50)
	require.NoError(t, m.TransitionTo("hall", 1.0))
	stream(m, 50)

	assert.InDelta(t, 0.4, m.Gain("music"), 1e-9)
}

func TestTransitionUnknownSnapshot(t *testing.T) {
	m := newTestMixer(t)

	err := m.TransitionTo("attic", 1)
	assert.ErrorIs(t, err, ErrUnknownSnapshot)
	assert.Equal(t, "hall", m.Snapshot())
}

func TestSetFloatRetunesCutoff(t *testing.T) {
	m := newTestMixer(t)

	require.NoError(t, m.SetFloat("footstepCutoff", 5))
	v, ok := m.Float("footstepCutoff")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, 5.0, m.groups["footsteps"].filter.Cutoff())

	assert.ErrorIs(t, m.SetFloat("reverb", 1), ErrUnknownParam)
}

func TestVoicePlaysThroughGroup(t *testing.T) {
	m := newTestMixer(t)
	v, err := m.NewVoice("sfx", &constClip{value: 0.5, n: 1000}, 100, false)
	require.NoError(t, err)

	assert.Equal(t, make([][2]float64, 8), stream(m, 8), "voices start paused")

	v.Play()
	assert.True(t, v.IsPlaying())
	out := stream(m, 64)
	for i := 16; i < 64; i++ {
		assert.InDelta(t, 0.5, out[i][0], 1e-6, "frame %d", i)
	}

	v.SetVolume(0.5)
	assert.Equal(t, 0.5, v.Volume())
	out = stream(m, 64)
	assert.InDelta(t, 0.25, out[32][1], 1e-6)

	v.Pause()
	assert.False(t, v.IsPlaying())
	assert.Equal(t, make([][2]float64, 8), stream(m, 8))
}

func TestVoiceStopsAtEndUnlessLooping(t *testing.T) {
	m := newTestMixer(t)
	once, err := m.NewVoice("sfx", &constClip{value: 0.1, n: 20}, 100, false)
	require.NoError(t, err)
	loop, err := m.NewVoice("sfx", &constClip{value: 0.1, n: 20}, 100, true)
	require.NoError(t, err)

	once.Play()
	loop.Play()
	stream(m, 128)

	assert.False(t, once.IsPlaying())
	assert.True(t, loop.IsPlaying())

	require.NoError(t, once.Rewind())
	once.Play()
	assert.True(t, once.IsPlaying())
}

func TestGroupGainScalesVoices(t *testing.T) {
	m := newTestMixer(t)
	v, err := m.NewVoice("music", &constClip{value: 1, n: 1000}, 100, true)
	require.NoError(t, err)
	v.Play()

	out := stream(m, 64)
	assert.InDelta(t, 0.2, out[40][0], 1e-6)

	require.NoError(t, m.TransitionTo("mute", 0))
	sfx, err := m.NewVoice("sfx", &constClip{value: 1, n: 1000}, 100, true)
	require.NoError(t, err)
	sfx.Play()
	out = stream(m, 64)
	assert.InDelta(t, 0.2, out[40][0], 1e-6, "muted sfx adds nothing")
}

func TestVoicePitch(t *testing.T) {
	m := newTestMixer(t)
	v, err := m.NewVoice("footsteps", &constClip{value: 0.3, n: 1000}, 100, false)
	require.NoError(t, err)

	v.SetPitch(1.2)
	assert.Equal(t, 1.2, v.Pitch())
	v.SetPitch(0)
	assert.Equal(t, 1.2, v.Pitch(), "non-positive pitch is ignored")
}

func TestNewVoiceUnknownGroup(t *testing.T) {
	m := newTestMixer(t)
	_, err := m.NewVoice("voice", &constClip{n: 1}, 100, false)
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestReadEncodesSigned16(t *testing.T) {
	m := newTestMixer(t)
	v, err := m.NewVoice("sfx", &constClip{value: 2, n: 1000}, 100, true)
	require.NoError(t, err)
	v.Play()

	p := make([]byte, 4*64+3)
	n, err := m.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 4*64, n)

	left := int16(binary.LittleEndian.Uint16(p[4*40:]))
	right := int16(binary.LittleEndian.Uint16(p[4*40+2:]))
	assert.Equal(t, int16(32767), left, "output is clipped")
	assert.Equal(t, left, right)

	n, err = m.Read(make([]byte, 3))
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func wavBytes(t *testing.T, rate int, frames []int16) []byte {
	t.Helper()
	var b bytes.Buffer
	dataLen := len(frames) * 4
	write := func(v any) { require.NoError(t, binary.Write(&b, binary.LittleEndian, v)) }
	b.WriteString("RIFF")
	write(uint32(36 + dataLen))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	write(uint32(16))
	write(uint16(1))
	write(uint16(2))
	write(uint32(rate))
	write(uint32(rate * 4))
	write(uint16(4))
	write(uint16(16))
	b.WriteString("data")
	write(uint32(dataLen))
	for _, f := range frames {
		write(f)
		write(f)
	}
	return b.Bytes()
}

func TestLoadWAV(t *testing.T) {
	m := newTestMixer(t)
	frames := make([]int16, 200)
	for i := range frames {
		frames[i] = 16384
	}

	v, err := m.LoadWAV("sfx", wavBytes(t, 100, frames), false)
	require.NoError(t, err)
	v.Play()
	out := stream(m, 64)
	assert.InDelta(t, 0.5, out[40][0], 1e-3)

	_, err = m.LoadWAV("sfx", []byte("not a wav"), false)
	assert.ErrorContains(t, err, "decode wav")
}

func TestLoadWAVResamplesToMixerRate(t *testing.T) {
	m := newTestMixer(t)
	v, err := m.LoadWAV("sfx", wavBytes(t, 200, make([]int16, 100)), false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.ratio)
}

func TestLowPass(t *testing.T) {
	src := func() beep.Streamer { return &constClip{value: 1, n: 1000} }

	open := newLowPass(src(), 100)
	out := make([][2]float64, 4)
	open.Stream(out)
	assert.Equal(t, 1.0, out[0][0], "cutoff at nyquist passes through")

	closed := newLowPass(src(), 100)
	closed.SetCutoff(0)
	closed.Stream(out)
	assert.Equal(t, 0.0, out[3][0])

	soft := newLowPass(src(), 100)
	soft.SetCutoff(5)
	out = make([][2]float64, 64)
	soft.Stream(out)
	for i := 1; i < len(out); i++ {
		assert.Greater(t, out[i][0], out[i-1][0])
	}
	assert.Less(t, out[63][0], 1.0)
	assert.Greater(t, out[63][0], 0.9)
}
