package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/anaglyph/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func dot(a, b math.Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func TestNewTrackballIsIdentity(t *testing.T) {
	tb := NewTrackball()
	if tb.Orientation() != math.Identity() {
		t.Errorf("Orientation() = %v, want identity", tb.Orientation())
	}
}

func TestHorizontalDragSpinsAboutY(t *testing.T) {
	tb := NewTrackball()
	tb.Sensitivity = 1
	tb.HandleDrag(float32(gomath.Pi/2), 0)

	p := tb.Orientation().TransformPoint(math.Vec3{X: 1})
	if !near(p.X, 0) || !near(p.Y, 0) || !near(p.Z, -1) {
		t.Errorf("+X after quarter turn about Y = %v, want (0, 0, -1)", p)
	}
}

func TestVerticalDragSpinsAboutX(t *testing.T) {
	tb := NewTrackball()
	tb.Sensitivity = 1
	tb.HandleDrag(0, float32(gomath.Pi/2))

	p := tb.Orientation().TransformPoint(math.Vec3{Y: 1})
	if !near(p.X, 0) || !near(p.Y, 0) || !near(p.Z, 1) {
		t.Errorf("+Y after quarter turn about X = %v, want (0, 0, 1)", p)
	}
}

func TestDragsAlongOneAxisAccumulate(t *testing.T) {
	tb := NewTrackball()
	tb.HandleDrag(30, 0)
	tb.HandleDrag(30, 0)

	single := NewTrackball()
	single.HandleDrag(60, 0)

	got, want := tb.Orientation(), single.Orientation()
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("two 30px drags should equal one 60px drag, element %d: %v vs %v", i, got[i], want[i])
		}
	}
}

func TestZeroDragIsNoop(t *testing.T) {
	tb := NewTrackball()
	tb.HandleDrag(0, 0)
	if tb.Orientation() != math.Identity() {
		t.Error("zero drag should not rotate")
	}
}

func TestOrientationStaysOrthonormal(t *testing.T) {
	tb := NewTrackball()
	for i := 0; i < 500; i++ {
		tb.HandleDrag(float32(i%7)-3, float32(i%5)-2)
	}

	m := tb.Orientation()
	cols := []math.Vec3{
		{X: m[0], Y: m[1], Z: m[2]},
		{X: m[4], Y: m[5], Z: m[6]},
		{X: m[8], Y: m[9], Z: m[10]},
	}
	for i, c := range cols {
		if !near(c.Length(), 1) {
			t.Errorf("column %d length = %v, want 1", i, c.Length())
		}
	}
	if !near(dot(cols[0], cols[1]), 0) || !near(dot(cols[1], cols[2]), 0) {
		t.Error("columns should stay orthogonal")
	}
}

func TestReset(t *testing.T) {
	tb := NewTrackball()
	tb.HandleDrag(40, 25)
	tb.Reset()

	if tb.Orientation() != math.Identity() {
		t.Error("Reset should restore identity orientation")
	}
}
