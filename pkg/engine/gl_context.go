package engine

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLContext implements GraphicsContext over an OpenGL 4.1 core context.
// The context must be current on the calling thread before NewGLContext.
type GLContext struct{}

// NewGLContext initializes the GL bindings and baseline state.
func NewGLContext() (*GLContext, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	return &GLContext{}, nil
}

func stageEnum(stage ShaderStage) uint32 {
	if stage == FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func usageEnum(usage BufferUsage) uint32 {
	switch usage {
	case DynamicDraw:
		return gl.DYNAMIC_DRAW
	case StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

// CreateObject allocates a host object of the given kind. A zero name from
// the host means the allocation was denied (typically context loss).
func (c *GLContext) CreateObject(kind ResourceKind, params ResourceParams) (Handle, error) {
	var name uint32
	switch kind {
	case KindShader:
		name = gl.CreateShader(stageEnum(params.Stage))
	case KindProgram:
		name = gl.CreateProgram()
	case KindBuffer:
		gl.GenBuffers(1, &name)
	case KindVertexArray:
		gl.GenVertexArrays(1, &name)
	case KindTexture:
		gl.GenTextures(1, &name)
	case KindFramebuffer:
		gl.GenFramebuffers(1, &name)
	case KindRenderbuffer:
		gl.GenRenderbuffers(1, &name)
	default:
		return 0, fmt.Errorf("unsupported resource kind %d", kind)
	}
	if name == 0 {
		return 0, fmt.Errorf("host refused %s allocation", kind)
	}
	return Handle(name), nil
}

// DeleteObject asks the host to reclaim an object.
func (c *GLContext) DeleteObject(kind ResourceKind, h Handle) {
	name := uint32(h)
	switch kind {
	case KindShader:
		gl.DeleteShader(name)
	case KindProgram:
		gl.DeleteProgram(name)
	case KindBuffer:
		gl.DeleteBuffers(1, &name)
	case KindVertexArray:
		gl.DeleteVertexArrays(1, &name)
	case KindTexture:
		gl.DeleteTextures(1, &name)
	case KindFramebuffer:
		gl.DeleteFramebuffers(1, &name)
	case KindRenderbuffer:
		gl.DeleteRenderbuffers(1, &name)
	}
}

// CompileShader uploads source and compiles, returning the info log on
// failure.
func (c *GLContext) CompileShader(h Handle, stage ShaderStage, source string) error {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(h), 1, csources, nil)
	free()
	gl.CompileShader(uint32(h))

	var status int32
	gl.GetShaderiv(uint32(h), gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(uint32(h), gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(uint32(h), logLength, nil, gl.Str(log))
		return fmt.Errorf("%v", strings.TrimRight(log, "\x00"))
	}
	return nil
}

func (c *GLContext) AttachShader(program, shader Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (c *GLContext) DetachShader(program, shader Handle) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (c *GLContext) BindAttribLocation(program Handle, slot uint32, name string) {
	gl.BindAttribLocation(uint32(program), slot, gl.Str(name+"\x00"))
}

// LinkProgram links and returns the info log on failure.
func (c *GLContext) LinkProgram(program Handle) error {
	gl.LinkProgram(uint32(program))

	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(log))
		return fmt.Errorf("%v", strings.TrimRight(log, "\x00"))
	}
	return nil
}

func (c *GLContext) UniformLocation(program Handle, name string) (UniformLocation, bool) {
	loc := gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
	return UniformLocation(loc), loc >= 0
}

func (c *GLContext) UseProgram(h Handle) {
	gl.UseProgram(uint32(h))
}

func (c *GLContext) SetUniformMatrix4(loc UniformLocation, m Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (c *GLContext) BindBuffer(h Handle) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
}

func (c *GLContext) BufferData(data []float32, usage BufferUsage) {
	if len(data) == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usageEnum(usage))
}

func (c *GLContext) BindVertexArray(h Handle) {
	gl.BindVertexArray(uint32(h))
}

func (c *GLContext) EnableVertexAttrib(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (c *GLContext) VertexAttribPointer(slot uint32, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(slot, int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (c *GLContext) VertexAttribDivisor(slot uint32, divisor int) {
	gl.VertexAttribDivisor(slot, uint32(divisor))
}

func (c *GLContext) BindTexture(h Handle) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

func (c *GLContext) TexImage2D(width, height int, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (c *GLContext) BindRenderbuffer(h Handle) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, uint32(h))
}

func (c *GLContext) RenderbufferStorage(width, height int) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
}

func (c *GLContext) BindFramebuffer(h Handle) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(h))
}

func (c *GLContext) FramebufferTexture(texture Handle) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(texture), 0)
}

func (c *GLContext) FramebufferRenderbuffer(renderbuffer Handle) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, uint32(renderbuffer))
}

func (c *GLContext) CheckFramebufferStatus() (bool, uint32) {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	return status == gl.FRAMEBUFFER_COMPLETE, status
}

func (c *GLContext) ReadPixels(x, y, width, height int, dst []byte) error {
	if len(dst) < width*height*4 {
		return fmt.Errorf("pixel buffer too small: %d bytes for %dx%d", len(dst), width, height)
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	return nil
}

func (c *GLContext) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (c *GLContext) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *GLContext) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (c *GLContext) DrawArrays(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

func (c *GLContext) DrawArraysInstanced(first, count, instances int) {
	gl.DrawArraysInstanced(gl.TRIANGLES, int32(first), int32(count), int32(instances))
}
