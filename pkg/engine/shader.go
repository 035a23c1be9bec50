package engine

import "glimmer/internal/logger"

// AttributeBinding requests a fixed slot for a named vertex attribute.
// Binding happens before link, so vertex-layout code can rely on stable
// slot numbers across platforms.
type AttributeBinding struct {
	Name string
	Slot uint32
}

// ProgramDescriptor is an immutable handle to a linked program: its registry
// id, the attribute bindings it was built with, and every uniform location
// resolved at build time. Re-theming means building a new descriptor.
type ProgramDescriptor struct {
	id       ResourceID
	attribs  []AttributeBinding
	uniforms map[string]UniformLocation
}

// ID returns the program's registry id.
func (d *ProgramDescriptor) ID() ResourceID { return d.id }

// Attributes returns the bindings the program was built with.
func (d *ProgramDescriptor) Attributes() []AttributeBinding {
	out := make([]AttributeBinding, len(d.attribs))
	copy(out, d.attribs)
	return out
}

// Uniform returns the cached location for a uniform resolved at build time.
func (d *ProgramDescriptor) Uniform(name string) (UniformLocation, error) {
	loc, ok := d.uniforms[name]
	if !ok {
		return 0, &UnknownUniformError{Name: name}
	}
	return loc, nil
}

// ProgramBuilder compiles and links shader programs, registering the result
// with the resource registry. A failed build registers nothing.
type ProgramBuilder struct {
	ctx      GraphicsContext
	registry *ResourceRegistry
	log      *logger.Logger
}

// NewProgramBuilder creates a builder over the given context and registry.
func NewProgramBuilder(ctx GraphicsContext, registry *ResourceRegistry, log *logger.Logger) *ProgramBuilder {
	return &ProgramBuilder{ctx: ctx, registry: registry, log: log}
}

// Build compiles both stages, links them with the requested attribute slots
// bound, and resolves every listed uniform. Stage shaders are transient:
// they are detached and deleted once the program links. Any failure aborts
// the build for this program only and is surfaced to the caller.
func (b *ProgramBuilder) Build(vertexSrc, fragmentSrc string, attribs []AttributeBinding, uniforms []string) (*ProgramDescriptor, error) {
	vertex, err := b.compileStage(VertexStage, vertexSrc)
	if err != nil {
		return nil, err
	}
	fragment, err := b.compileStage(FragmentStage, fragmentSrc)
	if err != nil {
		b.ctx.DeleteObject(KindShader, vertex)
		return nil, err
	}

	id, err := b.registry.Create(KindProgram, ResourceParams{})
	if err != nil {
		b.ctx.DeleteObject(KindShader, vertex)
		b.ctx.DeleteObject(KindShader, fragment)
		return nil, err
	}
	program, _ := b.registry.Resolve(id)

	b.ctx.AttachShader(program, vertex)
	b.ctx.AttachShader(program, fragment)
	for _, a := range attribs {
		b.ctx.BindAttribLocation(program, a.Slot, a.Name)
	}

	linkErr := b.ctx.LinkProgram(program)

	b.ctx.DetachShader(program, vertex)
	b.ctx.DetachShader(program, fragment)
	b.ctx.DeleteObject(KindShader, vertex)
	b.ctx.DeleteObject(KindShader, fragment)

	if linkErr != nil {
		b.registry.Release(id)
		lerr := &ProgramLinkError{Log: linkErr.Error()}
		b.log.Errorf("program link failed: %v", lerr)
		return nil, lerr
	}

	locations := make(map[string]UniformLocation, len(uniforms))
	for _, name := range uniforms {
		loc, ok := b.ctx.UniformLocation(program, name)
		if !ok {
			b.registry.Release(id)
			uerr := &UnknownUniformError{Name: name}
			b.log.Errorf("program build failed: %v", uerr)
			return nil, uerr
		}
		locations[name] = loc
	}

	bound := make([]AttributeBinding, len(attribs))
	copy(bound, attribs)

	return &ProgramDescriptor{
		id:       id,
		attribs:  bound,
		uniforms: locations,
	}, nil
}

// compileStage creates and compiles one stage shader directly on the
// context. Stage shaders never enter the registry: no id is issued for
// them, they exist only inside Build and are deleted before it returns, so
// the registry stays the single owner of everything that outlives a call.
func (b *ProgramBuilder) compileStage(stage ShaderStage, source string) (Handle, error) {
	shader, err := b.ctx.CreateObject(KindShader, ResourceParams{Stage: stage})
	if err != nil {
		cerr := &ResourceCreationError{Kind: KindShader, Reason: err.Error()}
		b.log.Errorf("resource creation failed: %v", cerr)
		return 0, cerr
	}
	if err := b.ctx.CompileShader(shader, stage, source); err != nil {
		b.ctx.DeleteObject(KindShader, shader)
		serr := &ShaderCompileError{Stage: stage, Log: err.Error()}
		b.log.Errorf("shader compile failed: %v", serr)
		return 0, serr
	}
	return shader, nil
}
