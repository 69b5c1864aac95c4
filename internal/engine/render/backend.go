package render

import (
	"github.com/Faultbox/anaglyph/internal/engine/surface"
	"github.com/Faultbox/anaglyph/pkg/math"
)

// MeshHandle identifies a mesh uploaded to a Backend.
type MeshHandle uint32

// ColorMask selects which color channels a draw writes.
type ColorMask struct {
	R, G, B, A bool
}

var (
	// MaskRed is the left eye's channel.
	MaskRed = ColorMask{R: true}
	// MaskCyan is the right eye's channels.
	MaskCyan = ColorMask{G: true, B: true}
	// MaskAll restores normal output.
	MaskAll = ColorMask{R: true, G: true, B: true, A: true}
)

// Backend is the subset of a GL-like device the pipeline drives.
type Backend interface {
	// Clear clears the selected buffers.
	Clear(color, depth bool)
	// SetColorMask enables or disables writes per channel.
	SetColorMask(mask ColorMask)
	// SetTransform uploads the model-view-projection matrix.
	SetTransform(mvp math.Mat4)
	// SetColor uploads the base line color.
	SetColor(rgba [4]float32)
	// UploadMesh copies vertex and texture coordinate data to the device.
	UploadMesh(m *surface.Mesh) (MeshHandle, error)
	// DrawLines draws an uploaded mesh as disconnected line segments.
	DrawLines(h MeshHandle)
	// ReleaseMesh frees an uploaded mesh.
	ReleaseMesh(h MeshHandle)
}
