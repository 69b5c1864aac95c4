package controls

import (
	"fmt"

	"github.com/Faultbox/anaglyph/internal/engine/stereo"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
)

// FormatParams renders the live parameters for the window title.
func FormatParams(title string, p stereo.Params, surf surface.Params) string {
	return fmt.Sprintf("%s | convergence %.0f  separation %.0f  fov %.2f  near %.2f | step %.2g°",
		title, p.Convergence, p.EyeSeparation, p.FieldOfView, p.NearClip, surf.StepBeta)
}
