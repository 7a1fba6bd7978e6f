// Package mixer sums clip voices into named group buses and blends the bus
// gains between snapshots. The output is pulled by the audio device.
package mixer

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/transition"
)

const defaultSampleRate = 44100

var (
	ErrUnknownGroup    = errors.New("mixer: unknown group")
	ErrUnknownSnapshot = errors.New("mixer: unknown snapshot")
	ErrUnknownParam    = errors.New("mixer: unknown parameter")
)

type group struct {
	name   string
	voices *beep.Mixer
	filter *lowPass
	volume *effects.Volume

	gain float64
	fade *transition.Tween[float64]
}

func (g *group) setGain(v float64) {
	g.gain = v
	g.volume.Silent = v <= 0
	if v > 0 {
		g.volume.Volume = math.Log2(v)
	}
}

// Mixer is safe for use by the game loop and the audio goroutine at once.
type Mixer struct {
	mu sync.Mutex

	format    beep.Format
	groups    map[string]*group
	order     []string
	master    *beep.Mixer
	snapshots map[string]map[string]float64
	current   string
	params    map[string]float64
	cutoffs   map[string][]*group

	buf [][2]float64
}

// New builds a mixer from spec and applies its initial snapshot.
func New(spec prefabs.MixerSpec) (*Mixer, error) {
	rate := spec.SampleRate
	if rate <= 0 {
		rate = defaultSampleRate
	}
	if len(spec.Groups) == 0 {
		return nil, fmt.Errorf("mixer: no groups")
	}

	m := &Mixer{
		format:    beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2},
		groups:    make(map[string]*group, len(spec.Groups)),
		master:    &beep.Mixer{},
		snapshots: make(map[string]map[string]float64, len(spec.Snapshots)),
		params:    make(map[string]float64, len(spec.Params)),
		cutoffs:   make(map[string][]*group),
	}
	for k, v := range spec.Params {
		m.params[k] = v
	}

	for _, gs := range spec.Groups {
		if gs.Name == "" {
			return nil, fmt.Errorf("mixer: group has no name")
		}
		if _, dup := m.groups[gs.Name]; dup {
			return nil, fmt.Errorf("mixer: duplicate group %q", gs.Name)
		}
		g := &group{name: gs.Name, voices: &beep.Mixer{}}
		var chain beep.Streamer = silence{g.voices}
		if gs.Cutoff != "" {
			g.filter = newLowPass(chain, float64(m.format.SampleRate))
			if hz, ok := m.params[gs.Cutoff]; ok {
				g.filter.SetCutoff(hz)
			}
			m.cutoffs[gs.Cutoff] = append(m.cutoffs[gs.Cutoff], g)
			chain = g.filter
		}
		g.volume = &effects.Volume{Streamer: chain, Base: 2}
		g.setGain(1)
		m.groups[gs.Name] = g
		m.order = append(m.order, gs.Name)
		m.master.Add(g.volume)
	}

	for name, snap := range spec.Snapshots {
		for gname := range snap.Gains {
			if _, ok := m.groups[gname]; !ok {
				return nil, fmt.Errorf("mixer: snapshot %q: %w %q", name, ErrUnknownGroup, gname)
			}
		}
		m.snapshots[name] = snap.Gains
	}

	if spec.Initial != "" {
		if err := m.TransitionTo(spec.Initial, 0); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Mixer) Format() beep.Format {
	return m.format
}

func (m *Mixer) SampleRate() int {
	return int(m.format.SampleRate)
}

// TransitionTo fades every group listed by the snapshot to its gain over
// duration seconds. A duration <= 0 applies the gains at once. Groups the
// snapshot leaves out keep their gain.
func (m *Mixer) TransitionTo(snapshot string, duration float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	gains, ok := m.snapshots[snapshot]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownSnapshot, snapshot)
	}
	for name, target := range gains {
		g := m.groups[name]
		if duration <= 0 {
			g.fade = nil
			g.setGain(target)
			continue
		}
		tw, err := transition.NewTween(g.gain, target, duration, transition.Forward, transition.LerpFloat)
		if err != nil {
			return fmt.Errorf("mixer: snapshot %q: %w", snapshot, err)
		}
		g.fade = &tw
	}
	if m.current != snapshot {
		log.Printf("mixer: snapshot %q -> %q over %.2fs", m.current, snapshot, duration)
	}
	m.current = snapshot
	return nil
}

// SetFloat sets a named parameter. Parameters bound to a group cutoff
// retune that group's filter.
func (m *Mixer) SetFloat(param string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.params[param]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownParam, param)
	}
	m.params[param] = value
	for _, g := range m.cutoffs[param] {
		g.filter.SetCutoff(value)
	}
	return nil
}

func (m *Mixer) Float(param string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.params[param]
	return v, ok
}

// Snapshot is the name of the last snapshot transitioned to.
func (m *Mixer) Snapshot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Gain is the current linear gain of a group, or -1 for unknown groups.
func (m *Mixer) Gain(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[name]
	if !ok {
		return -1
	}
	return g.gain
}

// Groups returns the group names in declaration order.
func (m *Mixer) Groups() []string {
	return append([]string(nil), m.order...)
}

// Snapshots returns the snapshot names, sorted.
func (m *Mixer) Snapshots() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.snapshots))
	for name := range m.snapshots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Mixer) advance(n int) {
	dt := float64(n) / float64(m.format.SampleRate)
	for _, g := range m.groups {
		if g.fade == nil {
			continue
		}
		v, done := g.fade.Step(dt)
		g.setGain(v)
		if done {
			g.fade = nil
		}
	}
}

// Stream mixes the next len(samples) frames. It never runs dry: silent
// buses produce zeros.
func (m *Mixer) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stream(samples), true
}

func (m *Mixer) stream(samples [][2]float64) int {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	n, _ := m.master.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	m.advance(len(samples))
	return len(samples)
}

func (m *Mixer) Err() error {
	return nil
}

// Read fills p with signed 16-bit little-endian stereo frames, the format
// ebiten's audio.Context.NewPlayer expects.
func (m *Mixer) Read(p []byte) (int, error) {
	const frameSize = 4
	frames := len(p) / frameSize
	if frames == 0 {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cap(m.buf) < frames {
		m.buf = make([][2]float64, frames)
	}
	buf := m.buf[:frames]
	m.stream(buf)
	for i, s := range buf {
		m.format.EncodeSigned(p[i*frameSize:], [2]float64{clamp(s[0]), clamp(s[1])})
	}
	return frames * frameSize, nil
}

func (m *Mixer) group(name string) (*group, error) {
	g, ok := m.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGroup, name)
	}
	return g, nil
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
