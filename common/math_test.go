package common

import "testing"

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		target   float64
		maxDelta float64
		want     float64
	}{
		{"step_up", 0, 3, 0.5, 0.5},
		{"step_down", 3, 0, 1, 2},
		{"snap_when_close", 2.9, 3, 0.5, 3},
		{"zero_delta_holds", 1, 3, 0, 1},
		{"negative_delta_holds", 1, 3, -1, 1},
		{"at_target", 3, 3, 1, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveTowards(c.current, c.target, c.maxDelta); got != c.want {
				t.Fatalf("MoveTowards(%v, %v, %v) = %v, want %v", c.current, c.target, c.maxDelta, got, c.want)
			}
		})
	}
}

func TestLerpVec3(t *testing.T) {
	a := Vec3{X: 0, Y: -180, Z: 0}
	b := Vec3{X: 0, Y: -65, Z: 10}
	if got := LerpVec3(a, b, 0); got != a {
		t.Fatalf("t=0: got %+v", got)
	}
	if got := LerpVec3(a, b, 1); got != b {
		t.Fatalf("t=1: got %+v", got)
	}
	mid := LerpVec3(a, b, 0.5)
	if mid.Y != -122.5 || mid.Z != 5 {
		t.Fatalf("t=0.5: got %+v", mid)
	}
}

func TestClamp01(t *testing.T) {
	for _, v := range []float64{-1, 0, 0.3, 1, 7} {
		got := Clamp01(v)
		if got < 0 || got > 1 {
			t.Fatalf("Clamp01(%v) = %v out of range", v, got)
		}
	}
}
