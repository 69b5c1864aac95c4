// Package camera provides the pointer-driven rotation controller for the scene.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/anaglyph/pkg/math"
)

// Trackball accumulates pointer drags into a scene orientation. Dragging
// right spins the scene about the view Y axis, dragging down about X.
type Trackball struct {
	rotation math.Quat

	// Sensitivity is radians of rotation per pixel dragged.
	Sensitivity float32
}

// DefaultSensitivity is the rotation per pixel used by NewTrackball.
const DefaultSensitivity = 0.01

// NewTrackball creates a trackball with no rotation applied.
func NewTrackball() *Trackball {
	return &Trackball{
		rotation:    math.QuatIdentity(),
		Sensitivity: DefaultSensitivity,
	}
}

// Orientation returns the accumulated rotation matrix.
func (t *Trackball) Orientation() math.Mat4 {
	return t.rotation.ToMat4()
}

// HandleDrag applies a drag of (dx, dy) pixels. The rotation axis is
// perpendicular to the drag in the view plane.
func (t *Trackball) HandleDrag(dx, dy float32) {
	length := math32.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return
	}
	axis := math.Vec3{X: dy / length, Y: dx / length, Z: 0}
	step := math.QuatFromAxisAngle(axis, length*t.Sensitivity)

	// Drags act in view space, so they compose on the left.
	t.rotation = step.Mul(t.rotation).Normalize()
}

// Reset clears the accumulated rotation.
func (t *Trackball) Reset() {
	t.rotation = math.QuatIdentity()
}
