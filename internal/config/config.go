// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/anaglyph/internal/engine/stereo"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Stereo     StereoConfig     `yaml:"stereo"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Texture    TextureConfig    `yaml:"texture"`
	Controls   ControlsConfig   `yaml:"controls"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Background [4]float32 `yaml:"background,flow"`
}

// StereoConfig holds the initial stereo parameters. Reset always returns
// to the built-in reference values, not these.
type StereoConfig struct {
	Convergence   float64 `yaml:"convergence"`
	EyeSeparation float64 `yaml:"eye_separation"`
	FieldOfView   float64 `yaml:"fov"`
	NearClip      float64 `yaml:"near_clip"`
}

// SurfaceConfig holds the surface shape and sampling density.
type SurfaceConfig struct {
	R1              float64 `yaml:"r1"`
	StepAlpha       float64 `yaml:"step_alpha"`
	StepBeta        float64 `yaml:"step_beta"` // degrees
	CompanionOffset float64 `yaml:"companion_offset"`
	DerivativeDelta float64 `yaml:"derivative_delta"`
}

// TextureConfig holds the surface texture source.
type TextureConfig struct {
	Path        string `yaml:"path"`         // empty uses the generated checkerboard
	CheckerSize int    `yaml:"checker_size"` // fallback texture edge, pixels
}

// ControlsConfig holds input tuning.
type ControlsConfig struct {
	DragSensitivity   float32 `yaml:"drag_sensitivity"` // radians per pixel
	ConvergenceStep   float64 `yaml:"convergence_step"`
	EyeSeparationStep float64 `yaml:"eye_separation_step"`
	FieldOfViewStep   float64 `yaml:"fov_step"`
	NearClipStep      float64 `yaml:"near_clip_step"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			Background: [4]float32{0, 0, 0, 1},
		},
		Stereo: StereoConfig{
			Convergence:   stereo.DefaultConvergence,
			EyeSeparation: stereo.DefaultEyeSeparation,
			FieldOfView:   stereo.DefaultFieldOfView,
			NearClip:      stereo.DefaultNearClip,
		},
		Surface: SurfaceConfig{
			R1:              surface.DefaultR1,
			StepAlpha:       surface.DefaultStepAlpha,
			StepBeta:        surface.DefaultStepBeta,
			CompanionOffset: surface.DefaultCompanionOffset,
			DerivativeDelta: surface.DefaultDerivativeDelta,
		},
		Texture: TextureConfig{
			Path:        "",
			CheckerSize: 256,
		},
		Controls: ControlsConfig{
			DragSensitivity:   0.01,
			ConvergenceStep:   50,
			EyeSeparationStep: 10,
			FieldOfViewStep:   0.05,
			NearClipStep:      0.1,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "anaglyph",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// StereoParams converts the initial stereo section to camera parameters.
// The far plane is not configurable.
func (c *Config) StereoParams() stereo.Params {
	return stereo.Params{
		Convergence:   c.Stereo.Convergence,
		EyeSeparation: c.Stereo.EyeSeparation,
		FieldOfView:   c.Stereo.FieldOfView,
		NearClip:      c.Stereo.NearClip,
		FarClip:       stereo.DefaultFarClip,
	}
}

// SurfaceParams converts the surface section to tessellation parameters.
func (c *Config) SurfaceParams() surface.Params {
	p := surface.NewParams(c.Surface.R1, c.Surface.StepAlpha, c.Surface.StepBeta)
	p.CompanionOffset = c.Surface.CompanionOffset
	p.DerivativeDelta = c.Surface.DerivativeDelta
	return p
}
