package mixer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
)

const resampleQuality = 4

// silence keeps a bus alive in its parent mixer: frames the source does
// not fill are zero and the stream never ends.
type silence struct {
	src beep.Streamer
}

func (s silence) Stream(samples [][2]float64) (int, bool) {
	n, _ := s.src.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (s silence) Err() error {
	return s.src.Err()
}

// Voice plays one decoded clip on a group bus. It implements
// component.ClipPlayer and component.Pitcher.
type Voice struct {
	m     *Mixer
	clip  beep.StreamSeeker
	loop  bool
	ratio float64

	resampler *beep.Resampler
	volume    *effects.Volume

	playing bool
	pitch   float64
	gain    float64
}

// LoadWAV decodes a wav clip and returns a voice for it on group.
func (m *Mixer) LoadWAV(group string, data []byte, loop bool) (*Voice, error) {
	s, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mixer: decode wav: %w", err)
	}
	defer s.Close()

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("mixer: read wav: %w", err)
	}
	return m.NewVoice(group, buf.Streamer(0, buf.Len()), format.SampleRate, loop)
}

// NewVoice attaches clip, recorded at rate, to group. The voice starts
// paused at the beginning of the clip.
func (m *Mixer) NewVoice(group string, clip beep.StreamSeeker, rate beep.SampleRate, loop bool) (*Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.group(group)
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("mixer: sample rate %d must be positive", rate)
	}

	v := &Voice{
		m:     m,
		clip:  clip,
		loop:  loop,
		ratio: float64(rate) / float64(m.format.SampleRate),
		pitch: 1,
		gain:  1,
	}
	v.resampler = beep.ResampleRatio(resampleQuality, v.ratio, clipStream{v})
	v.volume = &effects.Volume{Streamer: v.resampler, Base: 2}
	g.voices.Add(v)
	return v, nil
}

// clipStream feeds the clip to the resampler, wrapping around for loops.
type clipStream struct {
	v *Voice
}

func (c clipStream) Stream(samples [][2]float64) (int, bool) {
	v := c.v
	filled := 0
	for filled < len(samples) {
		n, ok := v.clip.Stream(samples[filled:])
		filled += n
		if ok && n > 0 {
			continue
		}
		if !v.loop || v.clip.Len() == 0 {
			break
		}
		if err := v.clip.Seek(0); err != nil {
			break
		}
	}
	return filled, filled > 0
}

func (c clipStream) Err() error {
	return c.v.clip.Err()
}

// Stream is called by the group bus with the mixer lock held.
func (v *Voice) Stream(samples [][2]float64) (int, bool) {
	if !v.playing {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	n, ok := v.volume.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	if !ok || n < len(samples) {
		v.playing = false
		_ = v.clip.Seek(v.clip.Len())
	}
	return len(samples), true
}

func (v *Voice) Err() error {
	return nil
}

func (v *Voice) Play() {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if v.clip.Position() >= v.clip.Len() {
		_ = v.clip.Seek(0)
	}
	v.playing = true
}

func (v *Voice) Pause() {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.playing = false
}

func (v *Voice) Rewind() error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return v.clip.Seek(0)
}

func (v *Voice) IsPlaying() bool {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return v.playing
}

// SetVolume sets the linear gain of the voice.
func (v *Voice) SetVolume(volume float64) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.gain = volume
	v.volume.Silent = volume <= 0
	if volume > 0 {
		v.volume.Volume = math.Log2(volume)
	}
}

func (v *Voice) Volume() float64 {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return v.gain
}

// SetPitch changes the playback rate; 1 is the recorded pitch.
func (v *Voice) SetPitch(ratio float64) {
	if ratio <= 0 {
		return
	}
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.pitch = ratio
	v.resampler.SetRatio(v.ratio * ratio)
}

func (v *Voice) Pitch() float64 {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	return v.pitch
}
