// Package render draws the tessellated surface as a red/cyan anaglyph:
// the scene is rendered once per eye into complementary color channels of
// the same framebuffer.
package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/engine/stereo"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
	"github.com/Faultbox/anaglyph/internal/logger"
	"github.com/Faultbox/anaglyph/pkg/math"
)

// Scene framing applied to every frame before the eye transforms.
var (
	SceneAxis     = math.Vec3{X: 0.707, Y: 0.707, Z: 0}
	SceneAngle    = float32(0.7)
	ScenePullBack = math.Vec3{X: 0, Y: 0, Z: -5}
)

// LineColor is the base color passed to the shader.
var LineColor = [4]float32{0, 1, 0, 1}

// ErrMeshNotReady is returned when a frame is requested before a mesh has
// been attached.
var ErrMeshNotReady = errors.New("render: mesh not ready")

// Pipeline renders one stereo frame per call. It owns the uploaded mesh and
// keeps no camera state between frames.
type Pipeline struct {
	backend Backend

	mesh    MeshHandle
	hasMesh bool

	log *zap.Logger
}

// NewPipeline creates a pipeline on the given backend.
func NewPipeline(b Backend) *Pipeline {
	return &Pipeline{
		backend: b,
		log:     logger.Named("render"),
	}
}

// SetMesh uploads m and releases the previously attached mesh. On upload
// failure the old mesh stays attached.
func (p *Pipeline) SetMesh(m *surface.Mesh) error {
	if m == nil || m.VertexCount == 0 {
		return fmt.Errorf("render: empty mesh")
	}

	h, err := p.backend.UploadMesh(m)
	if err != nil {
		return fmt.Errorf("uploading mesh: %w", err)
	}

	if p.hasMesh {
		p.backend.ReleaseMesh(p.mesh)
	}
	p.mesh = h
	p.hasMesh = true

	p.log.Debug("mesh attached", zap.Uint32("handle", uint32(h)), zap.Int("vertices", m.VertexCount))
	return nil
}

// Ready reports whether a mesh is attached.
func (p *Pipeline) Ready() bool {
	return p.hasMesh
}

// WorldTransform composes pull-back * axis rotation * orientation.
func WorldTransform(orientation math.Mat4) math.Mat4 {
	rotate := math.RotateAxis(SceneAxis, SceneAngle)
	translate := math.Translate(ScenePullBack.X, ScenePullBack.Y, ScenePullBack.Z)
	return translate.Mul(rotate.Mul(orientation))
}

// EyeTransforms returns the final model-view-projection matrix for each eye.
// Nothing is sent to the backend, so a failure here leaves the device
// untouched.
func EyeTransforms(params stereo.Params, aspect float64, orientation math.Mat4) (left, right math.Mat4, err error) {
	if !orientation.IsFinite() {
		return left, right, apperr.FrameComputation("render.EyeTransforms", errors.New("orientation: non-finite matrix"))
	}

	lf, rf, err := stereo.Pair(params, aspect)
	if err != nil {
		return left, right, err
	}

	world := WorldTransform(orientation)
	left = lf.ViewProjection().Mul(world)
	right = rf.ViewProjection().Mul(world)

	if !left.IsFinite() {
		return left, right, apperr.FrameComputation("render.EyeTransforms", errors.New("left eye: non-finite matrix"))
	}
	if !right.IsFinite() {
		return left, right, apperr.FrameComputation("render.EyeTransforms", errors.New("right eye: non-finite matrix"))
	}
	return left, right, nil
}

// RenderFrame draws the left eye into the red channel and the right eye
// into green and blue, clearing depth between the two passes. On error the
// frame is skipped before any backend call is made.
func (p *Pipeline) RenderFrame(params stereo.Params, aspect float64, orientation math.Mat4) error {
	if !p.hasMesh {
		return ErrMeshNotReady
	}

	left, right, err := EyeTransforms(params, aspect, orientation)
	if err != nil {
		return fmt.Errorf("computing eye transforms: %w", err)
	}

	b := p.backend
	b.Clear(true, true)
	b.SetColor(LineColor)

	b.SetTransform(left)
	b.SetColorMask(MaskRed)
	b.DrawLines(p.mesh)

	// Keep the red image, restart depth testing for the second eye.
	b.Clear(false, true)

	b.SetTransform(right)
	b.SetColorMask(MaskCyan)
	b.DrawLines(p.mesh)

	b.SetColorMask(MaskAll)
	return nil
}

// Close releases the attached mesh.
func (p *Pipeline) Close() {
	if p.hasMesh {
		p.backend.ReleaseMesh(p.mesh)
		p.hasMesh = false
		p.log.Debug("mesh released", zap.Uint32("handle", uint32(p.mesh)))
	}
}
