// Package renderer implements the render.Backend contract on OpenGL 4.1.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/anaglyph/internal/apperr"
	"github.com/Faultbox/anaglyph/internal/engine/render"
	"github.com/Faultbox/anaglyph/internal/engine/renderer/shaders"
	"github.com/Faultbox/anaglyph/internal/engine/shader"
	"github.com/Faultbox/anaglyph/internal/engine/surface"
	"github.com/Faultbox/anaglyph/internal/logger"
	"github.com/Faultbox/anaglyph/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [4]float32
}

// meshBuffers is the GPU side of one uploaded mesh.
type meshBuffers struct {
	vao         uint32
	vertexVBO   uint32
	texCoordVBO uint32
	count       int32
}

// Renderer owns the GL program, texture and mesh buffers.
type Renderer struct {
	config Config

	program *shader.Program
	locMVP  int32
	locCol  int32
	locTex  int32
	attrPos uint32
	attrUV  uint32

	texture uint32

	meshes map[render.MeshHandle]*meshBuffers
	next   render.MeshHandle

	log *zap.Logger
}

var _ render.Backend = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[render.MeshHandle]*meshBuffers),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, apperr.BackendInit("renderer.New", fmt.Errorf("failed to initialize OpenGL: %w", err))
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	if err := r.createProgram(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *Renderer) createProgram() error {
	prog, err := shader.CompileProgram(shaders.SurfaceVertexShader, shaders.SurfaceFragmentShader)
	if err != nil {
		return err
	}
	r.program = prog
	prog.Use()

	if r.attrPos, err = prog.Attrib("vertex"); err != nil {
		return err
	}
	if r.attrUV, err = prog.Attrib("texCoord"); err != nil {
		return err
	}
	if r.locMVP, err = prog.Uniform("ModelViewProjectionMatrix"); err != nil {
		return err
	}
	if r.locCol, err = prog.Uniform("color"); err != nil {
		return err
	}
	if r.locTex, err = prog.Uniform("tex"); err != nil {
		return err
	}
	gl.Uniform1i(r.locTex, 0)

	r.log.Debug("shader program created", zap.Uint32("program", prog.ID))
	return nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for h := range r.meshes {
		r.ReleaseMesh(h)
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// AspectRatio returns width / height of the current viewport, or 0 while
// the window is minimized.
func (r *Renderer) AspectRatio() float64 {
	if r.config.Height <= 0 {
		return 0
	}
	return float64(r.config.Width) / float64(r.config.Height)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Clear clears the selected buffers.
func (r *Renderer) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

// SetColorMask enables or disables writes per channel.
func (r *Renderer) SetColorMask(m render.ColorMask) {
	gl.ColorMask(m.R, m.G, m.B, m.A)
}

// SetTransform uploads the model-view-projection matrix.
func (r *Renderer) SetTransform(mvp math.Mat4) {
	r.program.Use()
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
}

// SetColor uploads the base line color.
func (r *Renderer) SetColor(rgba [4]float32) {
	r.program.Use()
	gl.Uniform4fv(r.locCol, 1, &rgba[0])
}

// SetTexture uploads img as the surface texture with linear filtering,
// replacing the previous one.
func (r *Renderer) SetTexture(img *image.RGBA) {
	if r.texture == 0 {
		gl.GenTextures(1, &r.texture)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	b := img.Bounds()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	r.log.Debug("texture uploaded", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
}

// UploadMesh copies vertex and texture coordinate data into a new VAO.
func (r *Renderer) UploadMesh(m *surface.Mesh) (render.MeshHandle, error) {
	if m == nil || m.VertexCount == 0 || len(m.Vertices) != m.VertexCount*3 || len(m.TexCoords) != m.VertexCount*2 {
		return 0, fmt.Errorf("renderer: malformed mesh")
	}

	mb := &meshBuffers{count: int32(m.VertexCount)}

	gl.GenVertexArrays(1, &mb.vao)
	gl.BindVertexArray(mb.vao)

	gl.GenBuffers(1, &mb.vertexVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vertexVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(r.attrPos, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(r.attrPos)

	gl.GenBuffers(1, &mb.texCoordVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.texCoordVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.TexCoords)*4, gl.Ptr(m.TexCoords), gl.STATIC_DRAW)
	gl.VertexAttribPointer(r.attrUV, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(r.attrUV)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.next++
	r.meshes[r.next] = mb

	r.log.Debug("mesh uploaded",
		zap.Uint32("handle", uint32(r.next)),
		zap.Uint32("vao", mb.vao),
		zap.Int32("vertices", mb.count),
	)
	return r.next, nil
}

// DrawLines draws an uploaded mesh as disconnected line segments.
func (r *Renderer) DrawLines(h render.MeshHandle) {
	mb, ok := r.meshes[h]
	if !ok {
		return
	}
	r.program.Use()
	if r.texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.texture)
	}
	gl.BindVertexArray(mb.vao)
	gl.DrawArrays(gl.LINES, 0, mb.count)
	gl.BindVertexArray(0)
}

// ReleaseMesh frees an uploaded mesh.
func (r *Renderer) ReleaseMesh(h render.MeshHandle) {
	mb, ok := r.meshes[h]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &mb.vertexVBO)
	gl.DeleteBuffers(1, &mb.texCoordVBO)
	gl.DeleteVertexArrays(1, &mb.vao)
	delete(r.meshes, h)
}
