package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/engine/stereo"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 768 {
		t.Errorf("expected height 768, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Stereo and surface defaults match the reference values
	if got := cfg.StereoParams(); got != stereo.DefaultParams() {
		t.Errorf("expected reference stereo params, got %+v", got)
	}
	if got := cfg.SurfaceParams(); got != surface.DefaultParams() {
		t.Errorf("expected reference surface params, got %+v", got)
	}

	// Test texture defaults
	if cfg.Texture.Path != "" {
		t.Errorf("expected empty texture path, got %s", cfg.Texture.Path)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  background: [0.1, 0.1, 0.1, 1]

stereo:
  convergence: 600
  eye_separation: 40
  fov: 0.8
  near_clip: 2

surface:
  r1: 0.5
  step_alpha: 0.25
  step_beta: 1

texture:
  path: "marble.png"

screenshot:
  dir: "/tmp/shots"
  prefix: "frame"

logging:
  level: "debug"
  log_file: "anaglyph.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.Background != [4]float32{0.1, 0.1, 0.1, 1} {
		t.Errorf("expected background 0.1 grey, got %v", cfg.Graphics.Background)
	}

	sp := cfg.StereoParams()
	if sp.Convergence != 600 || sp.EyeSeparation != 40 || sp.FieldOfView != 0.8 || sp.NearClip != 2 {
		t.Errorf("unexpected stereo params %+v", sp)
	}
	if sp.FarClip != stereo.DefaultFarClip {
		t.Errorf("expected far clip %v, got %v", stereo.DefaultFarClip, sp.FarClip)
	}

	surf := cfg.SurfaceParams()
	if surf.R1 != 0.5 || surf.R2 != 1.5 || surf.B != 1.5 {
		t.Errorf("expected R1 0.5 with R2 = B = 1.5, got %+v", surf)
	}
	// Unset keys keep their defaults
	if surf.CompanionOffset != surface.DefaultCompanionOffset {
		t.Errorf("expected default companion offset, got %v", surf.CompanionOffset)
	}

	if cfg.Texture.Path != "marble.png" {
		t.Errorf("expected texture marble.png, got %s", cfg.Texture.Path)
	}
	if cfg.Screenshot.Dir != "/tmp/shots" || cfg.Screenshot.Prefix != "frame" {
		t.Errorf("unexpected screenshot config %+v", cfg.Screenshot)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "anaglyph.log" {
		t.Errorf("expected log file 'anaglyph.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"background out of range", func(c *Config) { c.Graphics.Background[0] = 2 }},
		{"zero convergence", func(c *Config) { c.Stereo.Convergence = 0 }},
		{"negative separation", func(c *Config) { c.Stereo.EyeSeparation = -5 }},
		{"fov at pi", func(c *Config) { c.Stereo.FieldOfView = 3.2 }},
		{"near beyond far", func(c *Config) { c.Stereo.NearClip = 100 }},
		{"zero radius", func(c *Config) { c.Surface.R1 = 0 }},
		{"zero beta step", func(c *Config) { c.Surface.StepBeta = 0 }},
		{"zero checker", func(c *Config) { c.Texture.CheckerSize = 0 }},
		{"zero sensitivity", func(c *Config) { c.Controls.DragSensitivity = 0 }},
		{"zero nudge step", func(c *Config) { c.Controls.FieldOfViewStep = 0 }},
		{"empty prefix", func(c *Config) { c.Screenshot.Prefix = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !apperr.Is(err, apperr.KindConfiguration) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestZeroSeparationIsValid(t *testing.T) {
	cfg := Default()
	cfg.Stereo.EyeSeparation = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero eye separation should be accepted: %v", err)
	}
}

func TestCheckerSizeIgnoredWithTexturePath(t *testing.T) {
	cfg := Default()
	cfg.Texture.Path = "surface.png"
	cfg.Texture.CheckerSize = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("checker size should not matter when a texture path is set: %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 640
	cfg.Stereo.Convergence = 420
	cfg.Texture.Path = "a.png"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "texture flag",
			setup: func() { *flagTexture = "rock.jpg" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Texture.Path != "rock.jpg" {
					t.Errorf("expected texture rock.jpg, got %s", cfg.Texture.Path)
				}
			},
			teardown: func() { *flagTexture = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("stereo:\n  convergence: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !apperr.Is(err, apperr.KindConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
