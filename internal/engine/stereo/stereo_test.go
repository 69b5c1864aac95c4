package stereo

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/pkg/math"
)

func TestZeroSeparationIsMono(t *testing.T) {
	p := DefaultParams()
	p.EyeSeparation = 0

	left, right, err := Pair(p, 1.5)
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if left.Projection != right.Projection {
		t.Errorf("projections differ:\nleft  %v\nright %v", left.Projection, right.Projection)
	}
	if left.View != right.View {
		t.Errorf("views differ:\nleft  %v\nright %v", left.View, right.View)
	}
}

func TestRightEyeIsLeftWithSwappedBounds(t *testing.T) {
	p := DefaultParams()
	aspect := 16.0 / 9.0

	left, err := LeftFrustum(p, aspect)
	if err != nil {
		t.Fatalf("LeftFrustum: %v", err)
	}
	right, err := RightFrustum(p, aspect)
	if err != nil {
		t.Fatalf("RightFrustum: %v", err)
	}

	// Recompute the left eye with b and c exchanged.
	halfTan := gomath.Tan(p.FieldOfView / 2)
	a := aspect * halfTan * p.Convergence
	b := a - p.EyeSeparation/2
	c := a + p.EyeSeparation/2
	scale := p.NearClip / p.Convergence
	top := p.NearClip * halfTan

	swapped := math.Frustum(float32(-c*scale), float32(b*scale), float32(-top), float32(top),
		float32(p.NearClip), float32(p.FarClip))
	if swapped != right.Projection {
		t.Errorf("right projection is not the left computation with b and c swapped")
	}

	// Horizontal bounds mirror each other.
	if left.Left != -right.Right || left.Right != -right.Left {
		t.Errorf("bounds not mirrored: left [%v, %v], right [%v, %v]", left.Left, left.Right, right.Left, right.Right)
	}
	// Skew terms have opposite signs, focal terms match.
	if left.Projection[8] != -right.Projection[8] {
		t.Errorf("skew terms: left %v, right %v", left.Projection[8], right.Projection[8])
	}
	if left.Projection[0] != right.Projection[0] {
		t.Errorf("focal terms: left %v, right %v", left.Projection[0], right.Projection[0])
	}
}

func TestReferenceParamsShareVerticalExtent(t *testing.T) {
	p := Params{Convergence: 800, EyeSeparation: 100, FieldOfView: 1, NearClip: 1, FarClip: DefaultFarClip}

	left, right, err := Pair(p, 1)
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}

	if left.Top != right.Top || left.Bottom != right.Bottom {
		t.Errorf("vertical extent differs: left [%v, %v], right [%v, %v]", left.Bottom, left.Top, right.Bottom, right.Top)
	}
	if left.Near != right.Near || left.Far != right.Far {
		t.Errorf("depth range differs: left [%v, %v], right [%v, %v]", left.Near, left.Far, right.Near, right.Far)
	}
	if left.Left == right.Left || left.Right == right.Right {
		t.Errorf("horizontal bounds should differ between eyes")
	}

	wantTop := gomath.Tan(0.5)
	if gomath.Abs(left.Top-wantTop) > 1e-12 {
		t.Errorf("top = %v, want %v", left.Top, wantTop)
	}
	// a = tan(0.5) * 800, b = a - 50, c = a + 50, scaled by 1/800.
	a := gomath.Tan(0.5) * 800
	if gomath.Abs(left.Left-(-(a-50)/800)) > 1e-12 || gomath.Abs(left.Right-(a+50)/800) > 1e-12 {
		t.Errorf("left eye bounds = [%v, %v]", left.Left, left.Right)
	}
}

func TestEyeShift(t *testing.T) {
	p := DefaultParams()

	left, right, err := Pair(p, 1)
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}

	// 0.01 * 100 / 2 = 0.5
	if left.View[12] != 0.5 {
		t.Errorf("left eye shift = %v, want 0.5", left.View[12])
	}
	if right.View[12] != -0.5 {
		t.Errorf("right eye shift = %v, want -0.5", right.View[12])
	}
	if left.View[13] != 0 || left.View[14] != 0 {
		t.Errorf("eye shift should be lateral only, got %v", left.View)
	}
}

func TestViewProjection(t *testing.T) {
	f, err := LeftFrustum(DefaultParams(), 1)
	if err != nil {
		t.Fatalf("LeftFrustum: %v", err)
	}
	if f.ViewProjection() != f.Projection.Mul(f.View) {
		t.Error("ViewProjection should equal Projection * View")
	}
}

func TestInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		aspect float64
	}{
		{"zero convergence", func(p *Params) { p.Convergence = 0 }, 1},
		{"negative separation", func(p *Params) { p.EyeSeparation = -1 }, 1},
		{"zero fov", func(p *Params) { p.FieldOfView = 0 }, 1},
		{"fov of pi", func(p *Params) { p.FieldOfView = gomath.Pi }, 1},
		{"zero near", func(p *Params) { p.NearClip = 0 }, 1},
		{"far before near", func(p *Params) { p.FarClip = 0.5 }, 1},
		{"NaN convergence", func(p *Params) { p.Convergence = gomath.NaN() }, 1},
		{"infinite separation", func(p *Params) { p.EyeSeparation = gomath.Inf(1) }, 1},
		{"zero aspect", func(p *Params) {}, 0},
		{"NaN aspect", func(p *Params) {}, gomath.NaN()},
		{"infinite aspect", func(p *Params) {}, gomath.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			for _, eye := range []func(Params, float64) (Frustum, error){LeftFrustum, RightFrustum} {
				_, err := eye(p, tt.aspect)
				if !apperr.Is(err, apperr.KindConfiguration) {
					t.Errorf("expected configuration error, got %v", err)
				}
			}
		})
	}
}

func TestOverflowIsFrameError(t *testing.T) {
	p := DefaultParams()
	p.FarClip = 1e40 // finite in float64, infinite once uploaded as float32

	_, err := LeftFrustum(p, 1)
	if !apperr.Is(err, apperr.KindFrameComputation) {
		t.Errorf("expected frame computation error, got %v", err)
	}
}
