// Package app implements the viewer's main loop: input, parameter updates,
// mesh regeneration and the two-pass anaglyph frame.
package app

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/config"
	"github.com/Faultbox/anaglyph/internal/controls"
	"github.com/Faultbox/anaglyph/internal/engine/camera"
	"github.com/Faultbox/anaglyph/internal/engine/debug"
	"github.com/Faultbox/anaglyph/internal/engine/framebuffer"
	"github.com/Faultbox/anaglyph/internal/engine/input"
	"github.com/Faultbox/anaglyph/internal/engine/params"
	"github.com/Faultbox/anaglyph/internal/engine/render"
	"github.com/Faultbox/anaglyph/internal/engine/renderer"
	"github.com/Faultbox/anaglyph/internal/engine/stereo"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
	"github.com/Faultbox/anaglyph/internal/engine/texture"
	"github.com/Faultbox/anaglyph/internal/engine/window"
	"github.com/Faultbox/anaglyph/internal/logger"
)

// Title is the window title prefix.
const Title = "Anaglyph"

// App is the running viewer.
type App struct {
	config *config.Config
	log    *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	store     *params.Store
	trackball *camera.Trackball
	controls  *controls.Controller
	pipeline  *render.Pipeline

	meshGeneration uint64

	screenshots *debug.ScreenshotCapture
	capture     *framebuffer.Framebuffer
}

// New creates the window, GL backend and initial mesh. Errors from the
// window or renderer are backend initialization errors and are fatal.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Reset returns to the reference values; the configured values are
	// only the starting point.
	store, err := params.New(stereo.DefaultParams(), cfg.SurfaceParams())
	if err != nil {
		return nil, err
	}
	s := cfg.Stereo
	if _, err := store.Set(s.Convergence, s.EyeSeparation, s.FieldOfView, s.NearClip); err != nil {
		return nil, err
	}
	a.store = store

	a.trackball = camera.NewTrackball()
	a.trackball.Sensitivity = cfg.Controls.DragSensitivity
	a.controls = controls.New(store, a.trackball, controls.Steps{
		Convergence:   cfg.Controls.ConvergenceStep,
		EyeSeparation: cfg.Controls.EyeSeparationStep,
		FieldOfView:   cfg.Controls.FieldOfViewStep,
		NearClip:      cfg.Controls.NearClipStep,
	})

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, err
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Graphics.Background,
	})
	if err != nil {
		a.window.Close()
		return nil, err
	}
	a.renderer.SetTexture(a.loadTexture())

	a.pipeline = render.NewPipeline(a.renderer)
	if err := a.regenerateMesh(); err != nil {
		a.Close()
		return nil, fmt.Errorf("building initial mesh: %w", err)
	}

	a.input = input.New()
	a.screenshots = debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix)
	a.updateTitle()

	a.log.Info("viewer initialized")
	return a, nil
}

// loadTexture reads the configured texture, falling back to a checkerboard.
func (a *App) loadTexture() *image.RGBA {
	path := a.config.Texture.Path
	if path != "" {
		img, err := texture.Load(path)
		if err == nil {
			a.log.Info("texture loaded", zap.String("path", path))
			return img
		}
		a.log.Warn("texture unavailable, using checkerboard", zap.String("path", path), zap.Error(err))
	}
	return texture.Checkerboard(a.config.Texture.CheckerSize)
}

// regenerateMesh tessellates the current surface shape and hands it to the
// pipeline. The generation is recorded even on failure so a bad shape is
// not retried every frame.
func (a *App) regenerateMesh() error {
	surf, gen := a.store.Surface()
	a.meshGeneration = gen

	start := time.Now()
	mesh, err := surface.Generate(surf)
	if err != nil {
		return err
	}
	if err := a.pipeline.SetMesh(mesh); err != nil {
		return err
	}
	a.log.Info("mesh ready",
		zap.Int("vertices", mesh.VertexCount),
		zap.Uint64("generation", gen),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Run starts the main loop and returns when the user quits.
func (a *App) Run() error {
	// Timing
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")

	for {
		// 1. Process input
		frame := a.input.Update()
		if frame.Resized {
			a.resize()
		}
		if frame.DragX != 0 || frame.DragY != 0 {
			a.controls.Drag(frame.DragX, frame.DragY)
		}
		res := a.controls.ApplyAll(frame.Actions)
		if res.Quit {
			return nil
		}

		// 2. Rebuild the mesh before drawing if the shape changed
		if _, gen := a.store.Surface(); gen != a.meshGeneration {
			if err := a.regenerateMesh(); err != nil {
				apperr.Report(err)
			}
		}
		if res.ParamsChanged || res.SurfaceChanged {
			a.updateTitle()
		}

		// 3. Render
		a.renderFrame()
		if res.Screenshot {
			a.takeScreenshot()
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// renderFrame draws one anaglyph frame. A failed frame is reported and
// skipped; the next frame tries again with whatever parameters are current.
func (a *App) renderFrame() {
	aspect := a.renderer.AspectRatio()
	if aspect == 0 || !a.pipeline.Ready() {
		return // minimized, or the mesh failure was already reported
	}
	err := a.pipeline.RenderFrame(a.store.Current(), aspect, a.trackball.Orientation())
	if err != nil {
		apperr.Report(err)
		return
	}
	apperr.ResetFrameReports()
}

func (a *App) resize() {
	width, height := a.window.DrawableSize()
	a.renderer.Resize(width, height)
}

func (a *App) updateTitle() {
	surf, _ := a.store.Surface()
	a.window.SetTitle(controls.FormatParams(Title, a.store.Current(), surf))
}

// takeScreenshot renders the current frame again into an offscreen target
// of the drawable size and writes it as PNG.
func (a *App) takeScreenshot() {
	width, height := a.renderer.Size()
	if width <= 0 || height <= 0 {
		return
	}

	if a.capture == nil {
		fb, err := framebuffer.New(int32(width), int32(height))
		if err != nil {
			apperr.Report(err)
			return
		}
		a.capture = fb
	} else {
		a.capture.Resize(int32(width), int32(height))
	}

	aspect := a.renderer.AspectRatio()
	pixels, err := a.capture.Capture(func() error {
		return a.pipeline.RenderFrame(a.store.Current(), aspect, a.trackball.Orientation())
	})
	if err != nil {
		apperr.Report(err)
		return
	}

	w, h := a.capture.Size()
	path, err := a.screenshots.CaptureFromPixels(pixels, int(w), int(h))
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.capture != nil {
		a.capture.Destroy()
	}
	if a.pipeline != nil {
		a.pipeline.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
