// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SurfaceVertexShader transforms surface vertices by the eye's
// model-view-projection matrix.
//
//go:embed surface.vert
var SurfaceVertexShader string

// SurfaceFragmentShader shades the surface lines from the texture and base color.
//
//go:embed surface.frag
var SurfaceFragmentShader string
