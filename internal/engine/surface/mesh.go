package surface

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/logger"
	"github.com/Faultbox/anaglyph/pkg/math"
)

// gridEpsilon absorbs float error in span/step so an exact multiple never
// loses its final row. It is far below any remainder a real step leaves,
// so no sample lands past the bound.
const gridEpsilon = 1e-9

// GridSize returns the number of samples along each axis, bounds included.
// The last sample never exceeds the bound: a step that does not divide the
// span stops short of it.
func (p Params) GridSize() (alphaSamples, betaSamples int) {
	na := int(gomath.Floor(2*p.B/p.StepAlpha + gridEpsilon))
	nb := int(gomath.Floor(FullTurn/p.StepBeta + gridEpsilon))
	return na + 1, nb + 1
}

// VertexCount returns how many vertices Generate emits: two per sample.
func (p Params) VertexCount() int {
	na, nb := p.GridSize()
	return 2 * na * nb
}

// Generate tessellates the surface into a line list. Every (alpha, beta)
// sample emits two vertices, the sample itself and a companion offset along
// alpha, so the result is drawn as disconnected segments.
func Generate(p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	na, nb := p.GridSize()
	count := p.VertexCount()

	m := &Mesh{
		Vertices:      make([]float32, 0, count*3),
		TexCoords:     make([]float32, 0, count*2),
		TangentsAlpha: make([]float32, 0, count*3),
		TangentsBeta:  make([]float32, 0, count*3),
		Normals:       make([]float32, 0, count*3),
		Bounds: Bounds{
			Min: [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32},
			Max: [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32},
		},
	}

	height := 2 * p.B
	for i := 0; i < na; i++ {
		alpha := float64(i) * p.StepAlpha
		for j := 0; j < nb; j++ {
			deg := float64(j) * p.StepBeta
			v := deg / FullTurn

			if err := m.appendSample(p, alpha, deg, alpha/height, v); err != nil {
				return nil, err
			}
			companion := alpha + p.CompanionOffset
			if err := m.appendSample(p, companion, deg, companion/height, v); err != nil {
				return nil, err
			}
		}
	}

	m.VertexCount = len(m.Vertices) / 3

	logger.Named("surface").Debug("mesh generated",
		zap.Int("vertices", m.VertexCount),
		zap.Int("alpha_samples", na),
		zap.Int("beta_samples", nb),
	)
	return m, nil
}

// appendSample evaluates one vertex with its tangent basis.
func (m *Mesh) appendSample(p Params, alpha, betaDeg, u, v float64) error {
	beta := Radians(betaDeg)

	pos := p.Position(alpha, beta)
	if !pos.IsFinite() {
		return apperr.Configurationf("surface.Generate", "non-finite position at alpha=%v beta=%v", alpha, betaDeg)
	}
	du := p.DerivativeAlpha(alpha, beta, p.DerivativeDelta)
	dv := p.DerivativeBeta(alpha, beta, p.DerivativeDelta)
	n := p.Normal(alpha, beta)

	m.Vertices = appendVec(m.Vertices, pos.Vec3())
	m.TexCoords = append(m.TexCoords, float32(u), float32(v))
	m.TangentsAlpha = appendVec(m.TangentsAlpha, du.Vec3())
	m.TangentsBeta = appendVec(m.TangentsBeta, dv.Vec3())
	m.Normals = appendVec(m.Normals, n.Vec3())

	m.Bounds.extend(pos.Vec3())
	return nil
}

func appendVec(dst []float32, v math.Vec3) []float32 {
	return append(dst, v.X, v.Y, v.Z)
}

func (b *Bounds) extend(v math.Vec3) {
	for i, c := range [3]float32{v.X, v.Y, v.Z} {
		if c < b.Min[i] {
			b.Min[i] = c
		}
		if c > b.Max[i] {
			b.Max[i] = c
		}
	}
}
