// Package params holds the live stereo and surface parameters that the UI
// layer edits and the renderer reads every frame.
package params

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/engine/stereo"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
	"github.com/Faultbox/anaglyph/internal/logger"
)

// Field names one of the four user-tunable stereo parameters.
type Field int

const (
	Convergence Field = iota
	EyeSeparation
	FieldOfView
	NearClip
)

func (f Field) String() string {
	switch f {
	case Convergence:
		return "convergence"
	case EyeSeparation:
		return "eye_separation"
	case FieldOfView:
		return "fov"
	case NearClip:
		return "near_clip"
	default:
		return "unknown"
	}
}

// Store is the validated parameter state. Every setter either stores a
// complete valid set or leaves the previous one untouched.
type Store struct {
	mu sync.RWMutex

	stereo   stereo.Params
	defaults stereo.Params

	surface    surface.Params
	generation uint64

	log *zap.Logger
}

// New creates a store. defaults is the set Reset returns to; surf is the
// initial surface shape. Both are validated.
func New(defaults stereo.Params, surf surface.Params) (*Store, error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}
	if err := surf.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		stereo:   defaults,
		defaults: defaults,
		surface:  surf,
		log:      logger.Named("params"),
	}, nil
}

// NewDefault creates a store with the reference stereo and surface settings.
func NewDefault() *Store {
	s, err := New(stereo.DefaultParams(), surface.DefaultParams())
	if err != nil {
		panic(err) // reference defaults are valid
	}
	return s
}

// Current returns a copy of the stereo parameters.
func (s *Store) Current() stereo.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stereo
}

// Set replaces the four tunable stereo parameters. The far clip distance is
// kept. On error the previous values are retained and returned.
func (s *Store) Set(convergence, eyeSeparation, fov, nearClip float64) (stereo.Params, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.stereo
	next.Convergence = convergence
	next.EyeSeparation = eyeSeparation
	next.FieldOfView = fov
	next.NearClip = nearClip

	if err := next.Validate(); err != nil {
		return s.stereo, apperr.Configuration("params.Set", err)
	}

	s.stereo = next
	s.log.Info("stereo parameters updated",
		zap.Float64("convergence", next.Convergence),
		zap.Float64("eye_separation", next.EyeSeparation),
		zap.Float64("fov", next.FieldOfView),
		zap.Float64("near_clip", next.NearClip),
	)
	return next, nil
}

// Nudge adds delta to one field and applies the result through Set.
func (s *Store) Nudge(field Field, delta float64) (stereo.Params, error) {
	p := s.Current()
	switch field {
	case Convergence:
		p.Convergence += delta
	case EyeSeparation:
		p.EyeSeparation += delta
	case FieldOfView:
		p.FieldOfView += delta
	case NearClip:
		p.NearClip += delta
	default:
		return p, apperr.Configurationf("params.Nudge", "unknown field %d", int(field))
	}
	return s.Set(p.Convergence, p.EyeSeparation, p.FieldOfView, p.NearClip)
}

// Reset restores the default stereo parameters and returns them.
func (s *Store) Reset() stereo.Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stereo = s.defaults
	s.log.Info("stereo parameters reset",
		zap.Float64("convergence", s.stereo.Convergence),
		zap.Float64("eye_separation", s.stereo.EyeSeparation),
		zap.Float64("fov", s.stereo.FieldOfView),
		zap.Float64("near_clip", s.stereo.NearClip),
	)
	return s.stereo
}

// Surface returns the current surface shape and its generation. The
// generation changes whenever SetSurface stores a new shape.
func (s *Store) Surface() (surface.Params, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surface, s.generation
}

// SetSurface replaces the surface shape. Setting an equal shape is a no-op
// and does not trigger regeneration.
func (s *Store) SetSurface(p surface.Params) error {
	if err := p.Validate(); err != nil {
		return apperr.Configuration("params.SetSurface", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p == s.surface {
		return nil
	}
	s.surface = p
	s.generation++
	s.log.Info("surface shape updated",
		zap.Float64("r1", p.R1),
		zap.Float64("step_alpha", p.StepAlpha),
		zap.Float64("step_beta", p.StepBeta),
		zap.Uint64("generation", s.generation),
	)
	return nil
}
