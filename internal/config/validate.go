package config

import (
	"github.com/Faultbox/anaglyph/internal/apperr"
)

// Validate checks every section and returns the first configuration error.
func (c *Config) Validate() error {
	const op = "config.Validate"

	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		return apperr.Configurationf(op, "graphics size must be positive, got %dx%d", g.Width, g.Height)
	}
	for i, v := range g.Background {
		if v < 0 || v > 1 {
			return apperr.Configurationf(op, "graphics.background[%d] must be in [0, 1], got %v", i, v)
		}
	}

	if err := c.StereoParams().Validate(); err != nil {
		return apperr.Configuration(op, err)
	}
	if err := c.SurfaceParams().Validate(); err != nil {
		return apperr.Configuration(op, err)
	}

	if c.Texture.Path == "" && c.Texture.CheckerSize <= 0 {
		return apperr.Configurationf(op, "texture.checker_size must be positive, got %d", c.Texture.CheckerSize)
	}

	ctl := c.Controls
	if ctl.DragSensitivity <= 0 {
		return apperr.Configurationf(op, "controls.drag_sensitivity must be positive, got %v", ctl.DragSensitivity)
	}
	if ctl.ConvergenceStep <= 0 || ctl.EyeSeparationStep <= 0 || ctl.FieldOfViewStep <= 0 || ctl.NearClipStep <= 0 {
		return apperr.Configurationf(op, "controls steps must be positive")
	}

	if c.Screenshot.Prefix == "" {
		return apperr.Configurationf(op, "screenshot.prefix must not be empty")
	}

	return nil
}
