package transition

import (
	"math"
	"testing"

	"github.com/milk9111/undercroft/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	doorClosed = common.Vec3{}
	doorOpened = common.Vec3{Y: 115}
)

func newDoorToggle(t *testing.T, duration float64) *Toggle[common.Vec3] {
	t.Helper()
	tg, err := NewToggle(doorClosed, doorOpened, duration, LerpVec3)
	require.NoError(t, err)
	return tg
}

func TestToggleQuarterSteps(t *testing.T) {
	tg := newDoorToggle(t, 1.0)
	require.Equal(t, EdgeOpening, tg.Interact())

	var completed []Edge
	for i := 0; i < 4; i++ {
		_, edge := tg.Step(0.25)
		if edge != EdgeNone {
			completed = append(completed, edge)
		}
		if i < 3 {
			assert.False(t, tg.IsOpen(), "tick %d: open flag flips only on completion", i+1)
			assert.True(t, tg.IsTransitioning())
		}
	}

	assert.Equal(t, []Edge{EdgeOpening}, completed)
	assert.True(t, tg.IsOpen())
	assert.False(t, tg.IsTransitioning())
	assert.Equal(t, doorOpened, tg.Value())
}

func TestToggleFlipsOnceForAnySplit(t *testing.T) {
	splits := map[string][]float64{
		"single":  {2},
		"halves":  {1, 1},
		"uneven":  {0.3, 1.2, 0.5},
		"tenths":  {0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2},
		"zeroes":  {0, 0, 2, 0},
		"overrun": {0.5, 5},
	}
	for name, dts := range splits {
		t.Run(name, func(t *testing.T) {
			tg := newDoorToggle(t, 2)
			tg.Interact()
			flips := 0
			for _, dt := range dts {
				if _, edge := tg.Step(dt); edge != EdgeNone {
					flips++
				}
			}
			assert.Equal(t, 1, flips)
			assert.True(t, tg.IsOpen())
			assert.False(t, tg.IsTransitioning())
		})
	}
}

func TestToggleIgnoresInteractWhileMoving(t *testing.T) {
	tg := newDoorToggle(t, 1)
	require.Equal(t, EdgeOpening, tg.Interact())
	tg.Step(0.5)

	before := tg.Phase()
	assert.Equal(t, EdgeNone, tg.Interact())
	assert.Equal(t, before, tg.Phase(), "phase unchanged by a mid-flight interact")
	assert.False(t, tg.IsOpen())

	_, edge := tg.Step(0.5)
	assert.Equal(t, EdgeOpening, edge)
}

func TestToggleRoundTrip(t *testing.T) {
	closed := common.Vec3{Y: -180}
	opened := common.Vec3{Y: -65}
	tg, err := NewToggle(closed, opened, 1, LerpVec3)
	require.NoError(t, err)

	require.Equal(t, EdgeOpening, tg.Interact())
	for i := 0; i < 3; i++ {
		tg.Step(0.4)
	}
	require.True(t, tg.IsOpen())

	require.Equal(t, EdgeClosing, tg.Interact())
	mid, _ := tg.Step(0.5)
	assert.Equal(t, common.LerpVec3(opened, closed, 0.5), mid)
	_, edge := tg.Step(0.5)
	assert.Equal(t, EdgeClosing, edge)

	assert.False(t, tg.IsOpen())
	assert.Equal(t, closed, tg.Value(), "round trip lands on the exact start orientation")
}

func TestToggleIdleStepIsNoop(t *testing.T) {
	tg := newDoorToggle(t, 1)
	v, edge := tg.Step(3)
	assert.Equal(t, EdgeNone, edge)
	assert.Equal(t, doorClosed, v)
	assert.Equal(t, Resting{Open: false}, tg.Phase())
}

func TestToggleReset(t *testing.T) {
	tg := newDoorToggle(t, 1)
	tg.Interact()
	tg.Step(0.3)
	tg.Reset(true)
	assert.True(t, tg.IsOpen())
	assert.False(t, tg.IsTransitioning())
	assert.Equal(t, doorOpened, tg.Value())
}

func TestNewToggleRejectsZeroDuration(t *testing.T) {
	for _, d := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		_, err := NewToggle(0.0, 1.0, d, LerpFloat)
		assert.ErrorIs(t, err, ErrInvalidDuration, "duration %v", d)
	}
}
