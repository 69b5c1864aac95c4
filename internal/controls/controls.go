// Package controls maps user actions onto the parameter store and the
// trackball, independent of the windowing layer that produces them.
package controls

import (
	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/engine/camera"
	"github.com/Faultbox/anaglyph/internal/engine/params"
	"github.com/Faultbox/anaglyph/internal/logger"
)

// Action is a discrete user command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReset
	ActionScreenshot
	ActionConvergenceUp
	ActionConvergenceDown
	ActionSeparationUp
	ActionSeparationDown
	ActionFieldOfViewUp
	ActionFieldOfViewDown
	ActionNearClipUp
	ActionNearClipDown
	ActionDetailUp
	ActionDetailDown
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionQuit:            "quit",
	ActionReset:           "reset",
	ActionScreenshot:      "screenshot",
	ActionConvergenceUp:   "convergence+",
	ActionConvergenceDown: "convergence-",
	ActionSeparationUp:    "separation+",
	ActionSeparationDown:  "separation-",
	ActionFieldOfViewUp:   "fov+",
	ActionFieldOfViewDown: "fov-",
	ActionNearClipUp:      "near+",
	ActionNearClipDown:    "near-",
	ActionDetailUp:        "detail+",
	ActionDetailDown:      "detail-",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Steps holds the nudge increment for each stereo parameter.
type Steps struct {
	Convergence   float64
	EyeSeparation float64
	FieldOfView   float64
	NearClip      float64
}

// MinStepBeta bounds how fine ActionDetailUp can make the beta grid, in
// degrees.
const MinStepBeta = 0.01

// Result reports what handling an action changed.
type Result struct {
	ParamsChanged  bool
	SurfaceChanged bool
	Screenshot     bool
	Quit           bool
}

// Controller applies actions to the live parameters and view rotation.
type Controller struct {
	store     *params.Store
	trackball *camera.Trackball
	steps     Steps
	log       *zap.Logger
}

// New creates a controller.
func New(store *params.Store, trackball *camera.Trackball, steps Steps) *Controller {
	return &Controller{
		store:     store,
		trackball: trackball,
		steps:     steps,
		log:       logger.Named("controls"),
	}
}

// Apply handles one action. A rejected nudge leaves the parameters as they
// were and returns the configuration error for the caller to report.
func (c *Controller) Apply(a Action) (Result, error) {
	switch a {
	case ActionQuit:
		return Result{Quit: true}, nil
	case ActionScreenshot:
		return Result{Screenshot: true}, nil
	case ActionReset:
		c.store.Reset()
		c.trackball.Reset()
		return Result{ParamsChanged: true}, nil
	case ActionDetailUp:
		return c.scaleStepBeta(0.5)
	case ActionDetailDown:
		return c.scaleStepBeta(2)
	}

	field, delta, ok := c.nudgeFor(a)
	if !ok {
		return Result{}, nil
	}
	p, err := c.store.Nudge(field, delta)
	if err != nil {
		return Result{}, err
	}
	c.log.Debug("parameter nudged",
		zap.Stringer("action", a),
		zap.Float64("convergence", p.Convergence),
		zap.Float64("eye_separation", p.EyeSeparation),
		zap.Float64("fov", p.FieldOfView),
		zap.Float64("near_clip", p.NearClip),
	)
	return Result{ParamsChanged: true}, nil
}

func (c *Controller) nudgeFor(a Action) (params.Field, float64, bool) {
	switch a {
	case ActionConvergenceUp:
		return params.Convergence, c.steps.Convergence, true
	case ActionConvergenceDown:
		return params.Convergence, -c.steps.Convergence, true
	case ActionSeparationUp:
		return params.EyeSeparation, c.steps.EyeSeparation, true
	case ActionSeparationDown:
		return params.EyeSeparation, -c.steps.EyeSeparation, true
	case ActionFieldOfViewUp:
		return params.FieldOfView, c.steps.FieldOfView, true
	case ActionFieldOfViewDown:
		return params.FieldOfView, -c.steps.FieldOfView, true
	case ActionNearClipUp:
		return params.NearClip, c.steps.NearClip, true
	case ActionNearClipDown:
		return params.NearClip, -c.steps.NearClip, true
	}
	return 0, 0, false
}

// scaleStepBeta multiplies the beta sampling step, which changes the
// surface generation and triggers a new mesh.
func (c *Controller) scaleStepBeta(factor float64) (Result, error) {
	surf, _ := c.store.Surface()
	step := surf.StepBeta * factor
	if step < MinStepBeta {
		step = MinStepBeta
	}
	if step == surf.StepBeta {
		return Result{}, nil
	}
	surf.StepBeta = step
	if err := c.store.SetSurface(surf); err != nil {
		return Result{}, err
	}
	return Result{SurfaceChanged: true}, nil
}

// Drag forwards pointer motion to the trackball.
func (c *Controller) Drag(dx, dy float32) {
	c.trackball.HandleDrag(dx, dy)
}

// ApplyAll handles a batch of actions in order, reporting rejected nudges
// through apperr.Report, and merges their results.
func (c *Controller) ApplyAll(actions []Action) Result {
	var out Result
	for _, a := range actions {
		r, err := c.Apply(a)
		if err != nil {
			apperr.Report(err)
			continue
		}
		out.ParamsChanged = out.ParamsChanged || r.ParamsChanged
		out.SurfaceChanged = out.SurfaceChanged || r.SurfaceChanged
		out.Screenshot = out.Screenshot || r.Screenshot
		out.Quit = out.Quit || r.Quit
	}
	return out
}
