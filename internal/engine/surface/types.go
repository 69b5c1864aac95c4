// Package surface evaluates the revolution-like parametric surface and
// tessellates it into a line mesh for stereo rendering.
//
// Angles are radians everywhere in this package. The tessellator walks the
// beta axis on a degree grid (0..360) because that is how step sizes are
// configured, and converts each sample once with Radians.
package surface

import "github.com/Faultbox/anaglyph/pkg/math"

const (
	// DefaultR1 is the inner radius of the surface.
	DefaultR1 = 0.35
	// DefaultStepAlpha is the sampling step along the height axis.
	DefaultStepAlpha = 0.1
	// DefaultStepBeta is the sampling step around the axis, in degrees.
	DefaultStepBeta = 0.1
	// DefaultCompanionOffset is the alpha offset of the second vertex
	// emitted for each sample.
	DefaultCompanionOffset = 0.1
	// DefaultDerivativeDelta is the finite-difference step for tangents.
	DefaultDerivativeDelta = 0.0001

	// FullTurn is the extent of the beta axis in degrees.
	FullTurn = 360.0
)

// Params describes the surface shape and how densely it is sampled.
type Params struct {
	R1 float64 `yaml:"r1"` // inner radius
	R2 float64 `yaml:"r2"` // outer radius, 3*R1 by default
	B  float64 `yaml:"b"`  // half-height bound, 3*R1 by default

	StepAlpha float64 `yaml:"step_alpha"` // height units
	StepBeta  float64 `yaml:"step_beta"`  // degrees

	CompanionOffset float64 `yaml:"companion_offset"`
	DerivativeDelta float64 `yaml:"derivative_delta"`
}

// NewParams derives a parameter set from the inner radius the way the
// surface is defined: R2 = B = 3*R1.
func NewParams(r1, stepAlpha, stepBeta float64) Params {
	return Params{
		R1:              r1,
		R2:              3 * r1,
		B:               3 * r1,
		StepAlpha:       stepAlpha,
		StepBeta:        stepBeta,
		CompanionOffset: DefaultCompanionOffset,
		DerivativeDelta: DefaultDerivativeDelta,
	}
}

// DefaultParams returns the reference surface.
func DefaultParams() Params {
	return NewParams(DefaultR1, DefaultStepAlpha, DefaultStepBeta)
}

// Mesh holds the tessellated surface ready for GPU upload. All per-vertex
// slices are flat: three floats per vertex, two for TexCoords.
type Mesh struct {
	Vertices      []float32
	TexCoords     []float32
	TangentsAlpha []float32
	TangentsBeta  []float32
	Normals       []float32
	VertexCount   int
	Bounds        Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}
