// Package main is the entry point for the anaglyph surface viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/app"
	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/config"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
	"github.com/Faultbox/anaglyph/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config written to %s\n", path)
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.DumpMesh() {
		if err := dumpMesh(cfg); err != nil {
			logger.Error("mesh generation failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	logger.Info("=== Anaglyph Surface Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		apperr.Report(err)
		logger.Sync()
		os.Exit(1)
	}

	// Close before any exit so GL and SDL resources are released on failure.
	runErr := a.Run()
	a.Close()
	if runErr != nil {
		logger.Error("viewer error", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// dumpMesh tessellates the configured surface and prints its statistics
// without opening a window.
func dumpMesh(cfg *config.Config) error {
	p := cfg.SurfaceParams()
	m, err := surface.Generate(p)
	if err != nil {
		return err
	}
	return surface.WriteSummary(os.Stdout, p, m)
}
