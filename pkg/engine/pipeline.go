package engine

import "glimmer/internal/logger"

// DrawCall describes one instanced draw: a program, its vertex array, the
// matrix uniforms to set, and the vertex/instance counts.
type DrawCall struct {
	Program       *ProgramDescriptor
	VertexArray   ResourceID
	Uniforms      map[string]Mat4
	VertexCount   int
	InstanceCount int
}

// RenderPipeline issues one frame's draw work. It holds no registry
// ownership: every id is resolved per call, so stale ids fail with an
// invalid handle and the caller skips the affected draw. Draw order is
// caller-specified; the pipeline never reorders for state-change
// minimization.
type RenderPipeline struct {
	ctx      GraphicsContext
	registry *ResourceRegistry
	log      *logger.Logger
}

// NewRenderPipeline creates a pipeline over the given context and registry.
func NewRenderPipeline(ctx GraphicsContext, registry *ResourceRegistry, log *logger.Logger) *RenderPipeline {
	return &RenderPipeline{ctx: ctx, registry: registry, log: log}
}

// Begin sets the viewport and clears the bound framebuffer.
func (p *RenderPipeline) Begin(width, height int) {
	p.ctx.Viewport(width, height)
	p.ctx.ClearColor(0, 0, 0, 1)
	p.ctx.Clear()
}

// Draw binds the call's program and vertex array, sets its matrix uniforms
// from the descriptor's cached locations, and issues a single instanced
// draw of VertexCount x InstanceCount.
func (p *RenderPipeline) Draw(call DrawCall) error {
	program, err := p.registry.Resolve(call.Program.ID())
	if err != nil {
		p.log.Errorf("draw skipped: %v", err)
		return err
	}
	vao, err := p.registry.Resolve(call.VertexArray)
	if err != nil {
		p.log.Errorf("draw skipped: %v", err)
		return err
	}

	p.ctx.UseProgram(program)
	p.ctx.BindVertexArray(vao)
	for name, m := range call.Uniforms {
		loc, err := call.Program.Uniform(name)
		if err != nil {
			p.ctx.BindVertexArray(0)
			p.log.Errorf("draw skipped: %v", err)
			return err
		}
		p.ctx.SetUniformMatrix4(loc, m)
	}

	if call.InstanceCount > 1 {
		p.ctx.DrawArraysInstanced(0, call.VertexCount, call.InstanceCount)
	} else {
		p.ctx.DrawArrays(0, call.VertexCount)
	}
	p.ctx.BindVertexArray(0)
	return nil
}

// DrawOffscreen binds the target's framebuffer, runs fn, then rebinds the
// default framebuffer, also when fn fails.
func (p *RenderPipeline) DrawOffscreen(target *OffscreenTarget, fn func() error) error {
	fb, err := p.registry.Resolve(target.Framebuffer())
	if err != nil {
		p.log.Errorf("offscreen pass skipped: %v", err)
		return err
	}
	p.ctx.BindFramebuffer(fb)
	defer p.ctx.BindFramebuffer(0)
	w, h := target.Size()
	p.Begin(w, h)
	return fn()
}

// UploadVertices fills a registry-owned buffer with vertex data, using the
// usage hint recorded at creation.
func (p *RenderPipeline) UploadVertices(buffer ResourceID, data []float32) error {
	h, err := p.registry.Resolve(buffer)
	if err != nil {
		return err
	}
	params, err := p.registry.Params(buffer)
	if err != nil {
		return err
	}
	p.ctx.BindBuffer(h)
	p.ctx.BufferData(data, params.Usage)
	p.ctx.BindBuffer(0)
	return nil
}

// ConfigureAttribute records a vertex attribute layout into a vertex array:
// slot reads size floats per vertex from buffer at the given stride and
// offset (both in floats). A divisor of 1 advances the attribute once per
// instance instead of once per vertex.
func (p *RenderPipeline) ConfigureAttribute(vertexArray, buffer ResourceID, slot uint32, size, stride, offset, divisor int) error {
	vao, err := p.registry.Resolve(vertexArray)
	if err != nil {
		return err
	}
	buf, err := p.registry.Resolve(buffer)
	if err != nil {
		return err
	}
	p.ctx.BindVertexArray(vao)
	p.ctx.BindBuffer(buf)
	p.ctx.EnableVertexAttrib(slot)
	p.ctx.VertexAttribPointer(slot, size, stride*4, offset*4)
	if divisor > 0 {
		p.ctx.VertexAttribDivisor(slot, divisor)
	}
	p.ctx.BindBuffer(0)
	p.ctx.BindVertexArray(0)
	return nil
}
