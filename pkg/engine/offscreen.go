package engine

import "glimmer/internal/logger"

// OffscreenTarget is a render-to-texture destination: a color texture and a
// depth renderbuffer attached to a framebuffer, all owned by the registry.
// Used for post-processing, the console overlay backdrop and pixel picking.
type OffscreenTarget struct {
	ctx      GraphicsContext
	registry *ResourceRegistry
	log      *logger.Logger

	framebuffer ResourceID
	color       ResourceID
	depth       ResourceID
	width       int
	height      int
}

// NewOffscreenTarget allocates the attachments at the given dimensions and
// verifies framebuffer completeness once. An incomplete framebuffer is a
// fatal configuration error: it is logged and returned, never retried.
func NewOffscreenTarget(ctx GraphicsContext, registry *ResourceRegistry, log *logger.Logger, width, height int) (*OffscreenTarget, error) {
	t := &OffscreenTarget{
		ctx:      ctx,
		registry: registry,
		log:      log,
		width:    width,
		height:   height,
	}
	if err := t.allocate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *OffscreenTarget) allocate() error {
	color, err := t.registry.Create(KindTexture, ResourceParams{Width: t.width, Height: t.height})
	if err != nil {
		return err
	}
	depth, err := t.registry.Create(KindRenderbuffer, ResourceParams{Width: t.width, Height: t.height})
	if err != nil {
		t.registry.Release(color)
		return err
	}
	framebuffer, err := t.registry.Create(KindFramebuffer, ResourceParams{})
	if err != nil {
		t.registry.Release(color)
		t.registry.Release(depth)
		return err
	}

	colorHandle, _ := t.registry.Resolve(color)
	depthHandle, _ := t.registry.Resolve(depth)
	fbHandle, _ := t.registry.Resolve(framebuffer)

	t.ctx.BindTexture(colorHandle)
	t.ctx.TexImage2D(t.width, t.height, nil)
	t.ctx.BindTexture(0)

	t.ctx.BindRenderbuffer(depthHandle)
	t.ctx.RenderbufferStorage(t.width, t.height)
	t.ctx.BindRenderbuffer(0)

	t.ctx.BindFramebuffer(fbHandle)
	t.ctx.FramebufferTexture(colorHandle)
	t.ctx.FramebufferRenderbuffer(depthHandle)
	complete, status := t.ctx.CheckFramebufferStatus()
	t.ctx.BindFramebuffer(0)

	if !complete {
		t.registry.Release(color)
		t.registry.Release(depth)
		t.registry.Release(framebuffer)
		ferr := &FramebufferIncompleteError{Status: status}
		t.log.Errorf("offscreen target setup failed: %v", ferr)
		return ferr
	}

	t.color = color
	t.depth = depth
	t.framebuffer = framebuffer
	return nil
}

// Resize releases the attachments sized to the old viewport and recreates
// them at the new dimensions. Ids held by callers from before the resize go
// stale; drawing against them fails with an invalid handle and the frame is
// skipped, which is the intended degradation.
func (t *OffscreenTarget) Resize(width, height int) error {
	if width == t.width && height == t.height {
		return nil
	}
	t.registry.Release(t.color)
	t.registry.Release(t.depth)
	t.registry.Release(t.framebuffer)
	t.width = width
	t.height = height
	return t.allocate()
}

// Release frees all attachments.
func (t *OffscreenTarget) Release() {
	t.registry.Release(t.color)
	t.registry.Release(t.depth)
	t.registry.Release(t.framebuffer)
}

// Framebuffer returns the current framebuffer id. Not valid across Resize.
func (t *OffscreenTarget) Framebuffer() ResourceID { return t.framebuffer }

// Color returns the current color texture id. Not valid across Resize.
func (t *OffscreenTarget) Color() ResourceID { return t.color }

// Size returns the current target dimensions.
func (t *OffscreenTarget) Size() (int, int) { return t.width, t.height }

// ReadPixel reads one RGBA pixel from the target, used for pick testing.
func (t *OffscreenTarget) ReadPixel(x, y int) ([4]byte, error) {
	var px [4]byte
	fbHandle, err := t.registry.Resolve(t.framebuffer)
	if err != nil {
		return px, err
	}
	t.ctx.BindFramebuffer(fbHandle)
	err = t.ctx.ReadPixels(x, y, 1, 1, px[:])
	t.ctx.BindFramebuffer(0)
	return px, err
}
