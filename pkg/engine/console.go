package engine

import (
	"time"

	"glimmer/internal/logger"
)

// ConsoleLine is one diagnostic line held by the console overlay.
type ConsoleLine struct {
	Text  string
	Level logger.LogLevel
	When  time.Time
}

// severity tints for the overlay strips, RGBA.
var consoleColors = map[logger.LogLevel][4]float32{
	logger.DEBUG: {0.3, 0.6, 0.6, 0.6},
	logger.INFO:  {0.2, 0.5, 0.2, 0.6},
	logger.WARN:  {0.6, 0.5, 0.1, 0.6},
	logger.ERROR: {0.6, 0.15, 0.15, 0.6},
}

// DebugConsole is an in-scene diagnostic overlay: a fixed-capacity ring of
// lines, rendered once per frame by its owner. Appending while hidden still
// records, so history is not lost; rendering while hidden is a no-op.
type DebugConsole struct {
	lines    []ConsoleLine
	capacity int
	next     int
	count    int
	visible  bool

	program     *ProgramDescriptor
	vertexArray ResourceID
	buffer      ResourceID
}

// NewDebugConsole creates a console holding at most capacity lines.
func NewDebugConsole(capacity int) *DebugConsole {
	if capacity <= 0 {
		capacity = 32
	}
	return &DebugConsole{
		lines:    make([]ConsoleLine, capacity),
		capacity: capacity,
	}
}

// Append records a line, evicting the oldest when the ring is full.
func (c *DebugConsole) Append(text string, level logger.LogLevel) {
	c.lines[c.next] = ConsoleLine{Text: text, Level: level, When: time.Now()}
	c.next = (c.next + 1) % c.capacity
	if c.count < c.capacity {
		c.count++
	}
}

// Lines returns the retained lines in insertion order.
func (c *DebugConsole) Lines() []ConsoleLine {
	out := make([]ConsoleLine, 0, c.count)
	start := (c.next - c.count + c.capacity) % c.capacity
	for i := 0; i < c.count; i++ {
		out = append(out, c.lines[(start+i)%c.capacity])
	}
	return out
}

// Visible reports whether the overlay is drawn.
func (c *DebugConsole) Visible() bool { return c.visible }

// SetVisible toggles overlay drawing. Hiding does not clear history.
func (c *DebugConsole) SetVisible(v bool) { c.visible = v }

// Toggle flips overlay visibility.
func (c *DebugConsole) Toggle() { c.visible = !c.visible }

// InitGraphics builds the overlay's program and geometry. Until it is
// called, Render is a no-op, which keeps the console usable as a plain
// ring buffer in headless contexts.
func (c *DebugConsole) InitGraphics(builder *ProgramBuilder, registry *ResourceRegistry, pipeline *RenderPipeline) error {
	program, err := builder.Build(
		consoleVertexShaderSource,
		consoleFragmentShaderSource,
		[]AttributeBinding{{Name: "position", Slot: 0}, {Name: "color", Slot: 1}},
		[]string{"transform"},
	)
	if err != nil {
		return err
	}
	vao, err := registry.Create(KindVertexArray, ResourceParams{})
	if err != nil {
		registry.Release(program.ID())
		return err
	}
	buffer, err := registry.Create(KindBuffer, ResourceParams{Usage: StreamDraw})
	if err != nil {
		registry.Release(program.ID())
		registry.Release(vao)
		return err
	}
	release := func() {
		registry.Release(program.ID())
		registry.Release(vao)
		registry.Release(buffer)
	}
	// x,y position + rgba color, interleaved.
	if err := pipeline.ConfigureAttribute(vao, buffer, 0, 2, 6, 0, 0); err != nil {
		release()
		return err
	}
	if err := pipeline.ConfigureAttribute(vao, buffer, 1, 4, 6, 2, 0); err != nil {
		release()
		return err
	}

	c.program = program
	c.vertexArray = vao
	c.buffer = buffer
	return nil
}

// Render draws one translucent strip per retained line, newest at the
// bottom of the stack. No host state outside this draw is touched.
func (c *DebugConsole) Render(pipeline *RenderPipeline, viewportWidth, viewportHeight int) error {
	if !c.visible || c.program == nil || c.count == 0 {
		return nil
	}

	const lineHeight = 18.0
	rows := c.Lines()
	vertices := make([]float32, 0, len(rows)*6*6)
	for i, line := range rows {
		top := 1.0 - float32(i)*2.0*lineHeight/float32(viewportHeight)
		bottom := top - 2.0*lineHeight/float32(viewportHeight)
		tint, ok := consoleColors[line.Level]
		if !ok {
			tint = consoleColors[logger.INFO]
		}
		vertices = appendStrip(vertices, -1.0, 1.0, top, bottom, tint)
	}

	if err := pipeline.UploadVertices(c.buffer, vertices); err != nil {
		return err
	}
	return pipeline.Draw(DrawCall{
		Program:     c.program,
		VertexArray: c.vertexArray,
		Uniforms:    map[string]Mat4{"transform": Identity()},
		VertexCount: len(rows) * 6,
	})
}

func appendStrip(dst []float32, left, right, top, bottom float32, tint [4]float32) []float32 {
	quad := [6][2]float32{
		{left, bottom}, {right, bottom}, {right, top},
		{right, top}, {left, top}, {left, bottom},
	}
	for _, v := range quad {
		dst = append(dst, v[0], v[1], tint[0], tint[1], tint[2], tint[3])
	}
	return dst
}
