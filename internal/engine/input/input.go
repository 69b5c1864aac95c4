// Package input translates SDL2 events into viewer actions and pointer drags.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/anaglyph/internal/controls"
)

// Bindings maps keys to actions.
var Bindings = map[sdl.Scancode]controls.Action{
	sdl.SCANCODE_ESCAPE:       controls.ActionQuit,
	sdl.SCANCODE_R:            controls.ActionReset,
	sdl.SCANCODE_F12:          controls.ActionScreenshot,
	sdl.SCANCODE_UP:           controls.ActionConvergenceUp,
	sdl.SCANCODE_DOWN:         controls.ActionConvergenceDown,
	sdl.SCANCODE_RIGHT:        controls.ActionSeparationUp,
	sdl.SCANCODE_LEFT:         controls.ActionSeparationDown,
	sdl.SCANCODE_PAGEUP:       controls.ActionFieldOfViewUp,
	sdl.SCANCODE_PAGEDOWN:     controls.ActionFieldOfViewDown,
	sdl.SCANCODE_HOME:         controls.ActionNearClipUp,
	sdl.SCANCODE_END:          controls.ActionNearClipDown,
	sdl.SCANCODE_RIGHTBRACKET: controls.ActionDetailUp,
	sdl.SCANCODE_LEFTBRACKET:  controls.ActionDetailDown,
}

// Frame is everything that happened since the previous Update.
type Frame struct {
	Actions []controls.Action

	// DragX and DragY accumulate left-button pointer motion in pixels.
	DragX, DragY float32

	Resized       bool
	Width, Height int
}

// Input handles all input processing.
type Input struct {
	frame    Frame
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		frame: Frame{Actions: make([]controls.Action, 0, 8)},
	}
}

// Update polls SDL events and returns the collected frame. The returned
// value is reused by the next call.
func (i *Input) Update() *Frame {
	i.frame.Actions = i.frame.Actions[:0]
	i.frame.DragX, i.frame.DragY = 0, 0
	i.frame.Resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.frame.Actions = append(i.frame.Actions, controls.ActionQuit)

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.frame.Resized = true
				i.frame.Width = int(e.Data1)
				i.frame.Height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			// Held keys repeat nudges, but not screenshots.
			action, ok := Bindings[e.Keysym.Scancode]
			if !ok || (e.Repeat != 0 && action == controls.ActionScreenshot) {
				continue
			}
			i.frame.Actions = append(i.frame.Actions, action)

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN

		case *sdl.MouseMotionEvent:
			if i.dragging && e.State&sdl.ButtonLMask() != 0 {
				i.frame.DragX += float32(e.XRel)
				i.frame.DragY += float32(e.YRel)
			}
		}
	}

	return &i.frame
}
