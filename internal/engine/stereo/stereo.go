// Package stereo computes parallel-axis asymmetric-frustum projections for
// the left and right eye of an anaglyph camera.
//
// The camera holds no state: every call derives both matrices from the
// parameters it is given.
package stereo

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/pkg/math"
)

// Default parameter values.
const (
	DefaultConvergence   = 800.0
	DefaultEyeSeparation = 100.0
	DefaultFieldOfView   = 1.0 // radians
	DefaultNearClip      = 1.0
	DefaultFarClip       = 50.0
)

// EyeShiftScale converts eye separation to the lateral view translation,
// in scene units per separation unit.
const EyeShiftScale = 0.01

// Params holds the stereo camera settings. Lengths share one unit; the
// field of view is vertical, in radians.
type Params struct {
	Convergence   float64 `yaml:"convergence"`
	EyeSeparation float64 `yaml:"eye_separation"`
	FieldOfView   float64 `yaml:"fov"`
	NearClip      float64 `yaml:"near_clip"`
	FarClip       float64 `yaml:"far_clip"`
}

// DefaultParams returns the reference stereo settings.
func DefaultParams() Params {
	return Params{
		Convergence:   DefaultConvergence,
		EyeSeparation: DefaultEyeSeparation,
		FieldOfView:   DefaultFieldOfView,
		NearClip:      DefaultNearClip,
		FarClip:       DefaultFarClip,
	}
}

// Validate checks the domain of every parameter.
func (p Params) Validate() error {
	const op = "stereo.Params.Validate"

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"convergence", p.Convergence},
		{"eye separation", p.EyeSeparation},
		{"field of view", p.FieldOfView},
		{"near clip", p.NearClip},
		{"far clip", p.FarClip},
	} {
		if gomath.IsNaN(f.value) || gomath.IsInf(f.value, 0) {
			return apperr.Configurationf(op, "%s must be finite, got %v", f.name, f.value)
		}
	}

	switch {
	case p.Convergence <= 0:
		return apperr.Configurationf(op, "convergence must be positive, got %v", p.Convergence)
	case p.EyeSeparation < 0:
		return apperr.Configurationf(op, "eye separation must not be negative, got %v", p.EyeSeparation)
	case p.FieldOfView <= 0 || p.FieldOfView >= gomath.Pi:
		return apperr.Configurationf(op, "field of view must be in (0, pi), got %v", p.FieldOfView)
	case p.NearClip <= 0:
		return apperr.Configurationf(op, "near clip must be positive, got %v", p.NearClip)
	case p.FarClip <= p.NearClip:
		return apperr.Configurationf(op, "far clip (%v) must exceed near clip (%v)", p.FarClip, p.NearClip)
	}
	return nil
}

// Eye selects which half of the stereo pair to compute.
type Eye int

const (
	Left Eye = iota
	Right
)

func (e Eye) String() string {
	if e == Left {
		return "left"
	}
	return "right"
}

// Frustum is one eye's projection and view matrix together with the
// near-plane bounds they were built from.
type Frustum struct {
	Projection math.Mat4
	View       math.Mat4

	Left, Right, Bottom, Top float64
	Near, Far                float64
}

// ViewProjection returns Projection * View.
func (f Frustum) ViewProjection() math.Mat4 {
	return f.Projection.Mul(f.View)
}

// LeftFrustum computes the left eye.
func LeftFrustum(p Params, aspect float64) (Frustum, error) {
	return compute(p, aspect, Left)
}

// RightFrustum computes the right eye.
func RightFrustum(p Params, aspect float64) (Frustum, error) {
	return compute(p, aspect, Right)
}

// Pair computes both eyes.
func Pair(p Params, aspect float64) (left, right Frustum, err error) {
	if left, err = LeftFrustum(p, aspect); err != nil {
		return Frustum{}, Frustum{}, err
	}
	if right, err = RightFrustum(p, aspect); err != nil {
		return Frustum{}, Frustum{}, err
	}
	return left, right, nil
}

// Bounds returns the near-plane extents for one eye. With
// a = aspect * tan(fov/2) * convergence, b = a - sep/2 and c = a + sep/2,
// the left eye spans [-b, c] and the right eye [-c, b], scaled from the
// convergence plane to the near plane.
func Bounds(p Params, aspect float64, eye Eye) (left, right, bottom, top float64) {
	halfTan := gomath.Tan(p.FieldOfView / 2)
	top = p.NearClip * halfTan
	bottom = -top

	a := aspect * halfTan * p.Convergence
	b := a - p.EyeSeparation/2
	c := a + p.EyeSeparation/2
	scale := p.NearClip / p.Convergence

	if eye == Left {
		return -b * scale, c * scale, bottom, top
	}
	return -c * scale, b * scale, bottom, top
}

// EyeShift returns the lateral view translation for one eye: positive for
// the left eye, negative for the right.
func EyeShift(p Params, eye Eye) float64 {
	shift := EyeShiftScale * p.EyeSeparation / 2
	if eye == Right {
		return -shift
	}
	return shift
}

var errNonFinite = errors.New("non-finite matrix")

func compute(p Params, aspect float64, eye Eye) (Frustum, error) {
	if err := p.Validate(); err != nil {
		return Frustum{}, err
	}
	if !(aspect > 0) || gomath.IsInf(aspect, 0) {
		return Frustum{}, apperr.Configurationf("stereo."+eye.String(), "aspect ratio must be positive and finite, got %v", aspect)
	}

	l, r, b, t := Bounds(p, aspect, eye)
	f := Frustum{
		Projection: math.Frustum(float32(l), float32(r), float32(b), float32(t), float32(p.NearClip), float32(p.FarClip)),
		View:       math.Translate(float32(EyeShift(p, eye)), 0, 0).Mul(math.Identity()),
		Left:       l,
		Right:      r,
		Bottom:     b,
		Top:        t,
		Near:       p.NearClip,
		Far:        p.FarClip,
	}

	if !f.Projection.IsFinite() || !f.View.IsFinite() {
		return Frustum{}, apperr.FrameComputation("stereo."+eye.String(), errNonFinite)
	}
	return f, nil
}
