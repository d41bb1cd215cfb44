package core

import (
	"math"
	"testing"
)

func TestBuildTangentFrameOrthonormal(t *testing.T) {
	points := []Vector3{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0}, // north pole
		{X: 0, Y: -1, Z: 0}, // south pole
		{X: 0.6, Y: 0.8, Z: 0},
		{X: 0.0001, Y: 0.999999995, Z: 0.0001}, // near pole
	}

	for _, p := range points {
		p = p.Normalize()
		frame := BuildTangentFrame(p)

		if math.Abs(frame.East.Dot(frame.North)) > 1e-5 {
			t.Errorf("east·north = %v for p=%v, want ~0", frame.East.Dot(frame.North), p)
		}
		if math.Abs(frame.East.Dot(p)) > 1e-5 {
			t.Errorf("east·p = %v for p=%v, want ~0", frame.East.Dot(p), p)
		}
		if math.Abs(frame.North.Dot(p)) > 1e-5 {
			t.Errorf("north·p = %v for p=%v, want ~0", frame.North.Dot(p), p)
		}
		if math.Abs(frame.East.Length()-1) > 1e-5 {
			t.Errorf("|east| = %v, want 1", frame.East.Length())
		}
		if math.Abs(frame.North.Length()-1) > 1e-5 {
			t.Errorf("|north| = %v, want 1", frame.North.Length())
		}
	}
}

func TestSmoothstep(t *testing.T) {
	if v := Smoothstep(0, 1, -1); v != 0 {
		t.Errorf("Smoothstep below range = %v, want 0", v)
	}
	if v := Smoothstep(0, 1, 2); v != 1 {
		t.Errorf("Smoothstep above range = %v, want 1", v)
	}
	if v := Smoothstep(0, 1, 0.5); math.Abs(v-0.5) > 1e-9 {
		t.Errorf("Smoothstep(0.5) = %v, want 0.5", v)
	}
}
