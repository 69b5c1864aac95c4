package surface

import (
	gomath "math"

	"github.com/Faultbox/anaglyph/internal/apperr"
)

// Validate checks the shape and sampling invariants.
func (p Params) Validate() error {
	const op = "surface.Params.Validate"

	fields := []struct {
		name  string
		value float64
	}{
		{"r1", p.R1},
		{"r2", p.R2},
		{"b", p.B},
		{"step_alpha", p.StepAlpha},
		{"step_beta", p.StepBeta},
		{"companion_offset", p.CompanionOffset},
		{"derivative_delta", p.DerivativeDelta},
	}
	for _, f := range fields {
		if gomath.IsNaN(f.value) || gomath.IsInf(f.value, 0) {
			return apperr.Configurationf(op, "%s must be finite, got %v", f.name, f.value)
		}
	}

	switch {
	case p.R1 <= 0:
		return apperr.Configurationf(op, "r1 must be positive, got %v", p.R1)
	case p.R2 <= p.R1:
		return apperr.Configurationf(op, "r2 (%v) must exceed r1 (%v)", p.R2, p.R1)
	case p.B <= 0:
		return apperr.Configurationf(op, "b must be positive, got %v", p.B)
	case p.StepAlpha <= 0 || p.StepAlpha > 2*p.B:
		return apperr.Configurationf(op, "step_alpha must be in (0, %v], got %v", 2*p.B, p.StepAlpha)
	case p.StepBeta <= 0 || p.StepBeta > FullTurn:
		return apperr.Configurationf(op, "step_beta must be in (0, 360], got %v", p.StepBeta)
	case p.CompanionOffset < 0:
		return apperr.Configurationf(op, "companion_offset must not be negative, got %v", p.CompanionOffset)
	case p.DerivativeDelta <= 0:
		return apperr.Configurationf(op, "derivative_delta must be positive, got %v", p.DerivativeDelta)
	}
	return nil
}
