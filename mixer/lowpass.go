package mixer

import (
	"math"

	"github.com/gopxl/beep"
)

// lowPass is a one-pole low-pass filter on a stereo stream.
type lowPass struct {
	src    beep.Streamer
	rate   float64
	cutoff float64
	alpha  float64
	prev   [2]float64
}

func newLowPass(src beep.Streamer, sampleRate float64) *lowPass {
	f := &lowPass{src: src, rate: sampleRate}
	f.SetCutoff(sampleRate / 2)
	return f
}

// SetCutoff sets the -3 dB frequency in Hz. Values at or above Nyquist
// pass the signal through.
func (f *lowPass) SetCutoff(hz float64) {
	f.cutoff = hz
	if hz <= 0 {
		f.alpha = 0
		return
	}
	if hz >= f.rate/2 {
		f.alpha = 1
		return
	}
	rc := 1 / (2 * math.Pi * hz)
	dt := 1 / f.rate
	f.alpha = dt / (rc + dt)
}

func (f *lowPass) Cutoff() float64 {
	return f.cutoff
}

func (f *lowPass) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.src.Stream(samples)
	for i := range samples[:n] {
		for c := range 2 {
			f.prev[c] += f.alpha * (samples[i][c] - f.prev[c])
			samples[i][c] = f.prev[c]
		}
	}
	return n, ok
}

func (f *lowPass) Err() error {
	return f.src.Err()
}
