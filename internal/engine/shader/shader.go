// Package shader compiles GLSL programs and resolves their attribute and
// uniform locations.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/anaglyph/internal/apperr"
)

// Program is a linked shader program with looked-up locations.
type Program struct {
	ID       uint32
	attribs  map[string]uint32
	uniforms map[string]int32
}

// CompileProgram compiles vertex and fragment shaders and links them into a
// program. Compile and link failures are backend init errors carrying the
// driver's info log.
func CompileProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return nil, apperr.BackendInit("shader.CompileProgram", err)
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return nil, apperr.BackendInit("shader.CompileProgram", err)
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return nil, apperr.BackendInit("shader.CompileProgram", fmt.Errorf("link: %s", trimLog(log)))
	}

	return &Program{
		ID:       program,
		attribs:  make(map[string]uint32),
		uniforms: make(map[string]int32),
	}, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, trimLog(log))
	}

	return shader, nil
}

// trimLog drops the NUL terminator and anything after it.
func trimLog(log []byte) string {
	for i, c := range log {
		if c == 0 {
			return string(log[:i])
		}
	}
	return string(log)
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Attrib returns the location of a required vertex attribute.
func (p *Program) Attrib(name string) (uint32, error) {
	if loc, ok := p.attribs[name]; ok {
		return loc, nil
	}
	loc := gl.GetAttribLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, apperr.BackendInit("shader.Attrib", fmt.Errorf("attribute %q not found in program %d", name, p.ID))
	}
	p.attribs[name] = uint32(loc)
	return uint32(loc), nil
}

// Uniform returns the location of a required uniform.
func (p *Program) Uniform(name string) (int32, error) {
	if loc, ok := p.uniforms[name]; ok {
		return loc, nil
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, apperr.BackendInit("shader.Uniform", fmt.Errorf("uniform %q not found in program %d", name, p.ID))
	}
	p.uniforms[name] = loc
	return loc, nil
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
