package engine

// Handle is an opaque host-assigned name for a GPU object. Components other
// than the ResourceRegistry must not retain handles across ticks; they look
// them up by ResourceID instead.
type Handle uint32

// ResourceKind tags the variant of a GPU object.
type ResourceKind int

const (
	KindShader ResourceKind = iota
	KindProgram
	KindBuffer
	KindVertexArray
	KindTexture
	KindFramebuffer
	KindRenderbuffer
)

func (k ResourceKind) String() string {
	switch k {
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindBuffer:
		return "buffer"
	case KindVertexArray:
		return "vertex array"
	case KindTexture:
		return "texture"
	case KindFramebuffer:
		return "framebuffer"
	case KindRenderbuffer:
		return "renderbuffer"
	default:
		return "unknown resource"
	}
}

// ShaderStage identifies a pipeline stage source.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown stage"
	}
}

// BufferUsage hints how often buffer contents change.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

// UniformLocation is a host-assigned slot for a program uniform.
type UniformLocation int32

// ResourceParams carries creation parameters for kinds that need them:
// the stage for shaders, buffer usage for buffers, dimensions for textures
// and renderbuffers.
type ResourceParams struct {
	Stage  ShaderStage
	Usage  BufferUsage
	Width  int
	Height int
}

// GraphicsContext is the capability surface the engine consumes from the
// host graphics layer. All calls are synchronous and run on the thread that
// owns the context. The GL implementation lives in gl_context.go; tests use
// a recording fake.
type GraphicsContext interface {
	// Object lifecycle. CreateObject returns an error when the host denies
	// the allocation (context lost, out of memory, invalid parameters).
	CreateObject(kind ResourceKind, params ResourceParams) (Handle, error)
	DeleteObject(kind ResourceKind, h Handle)

	// Shaders and programs.
	CompileShader(h Handle, stage ShaderStage, source string) error
	AttachShader(program, shader Handle)
	DetachShader(program, shader Handle)
	BindAttribLocation(program Handle, slot uint32, name string)
	LinkProgram(program Handle) error
	UniformLocation(program Handle, name string) (UniformLocation, bool)
	UseProgram(h Handle)
	SetUniformMatrix4(loc UniformLocation, m Mat4)

	// Buffers and vertex layout.
	BindBuffer(h Handle)
	BufferData(data []float32, usage BufferUsage)
	BindVertexArray(h Handle)
	EnableVertexAttrib(slot uint32)
	VertexAttribPointer(slot uint32, size, stride, offset int)
	VertexAttribDivisor(slot uint32, divisor int)

	// Textures, renderbuffers, framebuffers. A zero handle binds the
	// default object for the target.
	BindTexture(h Handle)
	TexImage2D(width, height int, pixels []byte)
	BindRenderbuffer(h Handle)
	RenderbufferStorage(width, height int)
	BindFramebuffer(h Handle)
	FramebufferTexture(texture Handle)
	FramebufferRenderbuffer(renderbuffer Handle)
	CheckFramebufferStatus() (complete bool, status uint32)
	ReadPixels(x, y, width, height int, dst []byte) error

	// Per-frame operations.
	Viewport(width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawArrays(first, count int)
	DrawArraysInstanced(first, count, instances int)
}

// FrameSource is the presentation/scheduling capability: a single-shot next
// frame callback, re-armed every tick, plus a high-resolution clock in
// milliseconds.
type FrameSource interface {
	RequestFrame(callback func(timestampMillis float64))
	Now() float64
}
