package surface

import (
	gomath "math"

	"github.com/Faultbox/anaglyph/pkg/math"
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * gomath.Pi / 180
}

// Radius returns the profile radius at height alpha:
// r(alpha) = (R2-R1) * sin^2(pi*alpha / (4B)) + R1.
func (p Params) Radius(alpha float64) float64 {
	s := gomath.Sin(gomath.Pi * alpha / (4 * p.B))
	return (p.R2-p.R1)*s*s + p.R1
}

// Position evaluates the surface at (alpha, beta), beta in radians.
func (p Params) Position(alpha, beta float64) math.Vec3d {
	r := p.Radius(alpha)
	sin, cos := gomath.Sincos(beta)
	return math.Vec3d{X: r * cos, Y: r * sin, Z: alpha}
}

// DerivativeAlpha approximates the partial derivative along alpha with a
// forward difference of step delta.
func (p Params) DerivativeAlpha(alpha, beta, delta float64) math.Vec3d {
	return p.Position(alpha+delta, beta).Sub(p.Position(alpha, beta)).Scale(1 / delta)
}

// DerivativeBeta approximates the partial derivative along beta (radians)
// with a forward difference of step delta.
func (p Params) DerivativeBeta(alpha, beta, delta float64) math.Vec3d {
	return p.Position(alpha, beta+delta).Sub(p.Position(alpha, beta)).Scale(1 / delta)
}

// radiusSlope is dr/dalpha.
func (p Params) radiusSlope(alpha float64) float64 {
	k := gomath.Pi / (4 * p.B)
	// d/da sin^2(k a) = k sin(2 k a)
	return (p.R2 - p.R1) * k * gomath.Sin(2*k*alpha)
}

// AnalyticDerivativeAlpha is the exact partial derivative along alpha.
func (p Params) AnalyticDerivativeAlpha(alpha, beta float64) math.Vec3d {
	dr := p.radiusSlope(alpha)
	sin, cos := gomath.Sincos(beta)
	return math.Vec3d{X: dr * cos, Y: dr * sin, Z: 1}
}

// AnalyticDerivativeBeta is the exact partial derivative along beta.
func (p Params) AnalyticDerivativeBeta(alpha, beta float64) math.Vec3d {
	r := p.Radius(alpha)
	sin, cos := gomath.Sincos(beta)
	return math.Vec3d{X: -r * sin, Y: r * cos, Z: 0}
}

// Normal returns the outward unit normal at (alpha, beta).
func (p Params) Normal(alpha, beta float64) math.Vec3d {
	return p.AnalyticDerivativeBeta(alpha, beta).Cross(p.AnalyticDerivativeAlpha(alpha, beta)).Normalize()
}
