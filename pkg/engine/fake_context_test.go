package engine

import (
	"bytes"
	"errors"
	"fmt"

	"glimmer/internal/logger"
)

// fakeDraw records one issued draw command.
type fakeDraw struct {
	first     int
	count     int
	instances int
}

// fakeContext is an in-memory GraphicsContext that records operations and
// can be told to fail specific steps.
type fakeContext struct {
	nextHandle Handle
	live       map[Handle]ResourceKind
	deleted    []Handle

	denyKinds   map[ResourceKind]bool
	compileFail map[ShaderStage]string
	linkFail    string
	uniforms    map[string]UniformLocation
	incomplete  bool
	fbStatus    uint32
	pixel       [4]byte

	ops         []string
	draws       []fakeDraw
	boundFrames []Handle
	uploads     [][]float32
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		live:        make(map[Handle]ResourceKind),
		denyKinds:   make(map[ResourceKind]bool),
		compileFail: make(map[ShaderStage]string),
		uniforms:    make(map[string]UniformLocation),
		fbStatus:    0x8cd6,
	}
}

func (c *fakeContext) CreateObject(kind ResourceKind, params ResourceParams) (Handle, error) {
	if c.denyKinds[kind] {
		return 0, fmt.Errorf("host refused %s allocation", kind)
	}
	c.nextHandle++
	c.live[c.nextHandle] = kind
	return c.nextHandle, nil
}

func (c *fakeContext) DeleteObject(kind ResourceKind, h Handle) {
	delete(c.live, h)
	c.deleted = append(c.deleted, h)
	c.ops = append(c.ops, fmt.Sprintf("delete %s", kind))
}

func (c *fakeContext) liveOf(kind ResourceKind) int {
	n := 0
	for _, k := range c.live {
		if k == kind {
			n++
		}
	}
	return n
}

func (c *fakeContext) CompileShader(h Handle, stage ShaderStage, source string) error {
	if log, ok := c.compileFail[stage]; ok {
		return errors.New(log)
	}
	c.ops = append(c.ops, fmt.Sprintf("compile %s", stage))
	return nil
}

func (c *fakeContext) AttachShader(program, shader Handle) {
	c.ops = append(c.ops, "attach")
}

func (c *fakeContext) DetachShader(program, shader Handle) {
	c.ops = append(c.ops, "detach")
}

func (c *fakeContext) BindAttribLocation(program Handle, slot uint32, name string) {
	c.ops = append(c.ops, fmt.Sprintf("bind attrib %s=%d", name, slot))
}

func (c *fakeContext) LinkProgram(program Handle) error {
	if c.linkFail != "" {
		return errors.New(c.linkFail)
	}
	c.ops = append(c.ops, "link")
	return nil
}

func (c *fakeContext) UniformLocation(program Handle, name string) (UniformLocation, bool) {
	loc, ok := c.uniforms[name]
	return loc, ok
}

func (c *fakeContext) UseProgram(h Handle) {
	c.ops = append(c.ops, "use program")
}

func (c *fakeContext) SetUniformMatrix4(loc UniformLocation, m Mat4) {
	c.ops = append(c.ops, fmt.Sprintf("set uniform %d", loc))
}

func (c *fakeContext) BindBuffer(h Handle)      {}
func (c *fakeContext) BindVertexArray(h Handle) {}

func (c *fakeContext) BufferData(data []float32, usage BufferUsage) {
	c.uploads = append(c.uploads, data)
}

func (c *fakeContext) EnableVertexAttrib(slot uint32)                         {}
func (c *fakeContext) VertexAttribPointer(slot uint32, size, stride, off int) {}
func (c *fakeContext) VertexAttribDivisor(slot uint32, divisor int)           {}

func (c *fakeContext) countOps(op string) int {
	n := 0
	for _, o := range c.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (c *fakeContext) indexOfOp(op string) int {
	for i, o := range c.ops {
		if o == op {
			return i
		}
	}
	return -1
}

func (c *fakeContext) BindTexture(h Handle)               {}
func (c *fakeContext) TexImage2D(w, h int, pixels []byte) {}
func (c *fakeContext) BindRenderbuffer(h Handle)          {}
func (c *fakeContext) RenderbufferStorage(w, h int)       {}
func (c *fakeContext) FramebufferTexture(texture Handle)  {}
func (c *fakeContext) FramebufferRenderbuffer(rb Handle)  {}

func (c *fakeContext) BindFramebuffer(h Handle) {
	c.boundFrames = append(c.boundFrames, h)
}

func (c *fakeContext) CheckFramebufferStatus() (bool, uint32) {
	if c.incomplete {
		return false, c.fbStatus
	}
	return true, 0x8cd5
}

func (c *fakeContext) ReadPixels(x, y, w, h int, dst []byte) error {
	copy(dst, c.pixel[:])
	return nil
}

func (c *fakeContext) Viewport(w, h int)             {}
func (c *fakeContext) ClearColor(r, g, b, a float32) {}
func (c *fakeContext) Clear()                        {}

func (c *fakeContext) DrawArrays(first, count int) {
	c.draws = append(c.draws, fakeDraw{first: first, count: count, instances: 1})
}

func (c *fakeContext) DrawArraysInstanced(first, count, instances int) {
	c.draws = append(c.draws, fakeDraw{first: first, count: count, instances: instances})
}

// fakeFrameSource delivers frame callbacks on demand.
type fakeFrameSource struct {
	pending   func(float64)
	doubleArm bool
	now       float64
}

func (s *fakeFrameSource) RequestFrame(callback func(float64)) {
	if s.pending != nil {
		s.doubleArm = true
	}
	s.pending = callback
}

func (s *fakeFrameSource) Now() float64 { return s.now }

// fire delivers the armed callback, if any.
func (s *fakeFrameSource) fire(timestamp float64) bool {
	cb := s.pending
	s.pending = nil
	if cb == nil {
		return false
	}
	cb(timestamp)
	return true
}

// newTestLogger returns a debug logger capturing output for assertions.
func newTestLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logger.NewLogger("debug")
	log.SetOutput(&buf)
	return log, &buf
}

func zeroOrigin() (float64, float64) { return 0, 0 }
