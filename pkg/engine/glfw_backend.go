package engine

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glimmer/pkg/config"
)

// NewWindow initializes GLFW and creates a window with a current 4.1 core
// context. The caller must have locked the OS thread.
func NewWindow(cfg config.GraphicsConfig) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}

	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return window, nil
}

// GLFWFrameSource adapts GLFW's swap/poll loop to the single-shot frame
// callback model: each requested callback fires once per iteration of Run,
// with glfw's high-resolution clock as the timestamp.
type GLFWFrameSource struct {
	window  *glfw.Window
	pending func(float64)
}

// NewGLFWFrameSource creates a frame source for the given window.
func NewGLFWFrameSource(window *glfw.Window) *GLFWFrameSource {
	return &GLFWFrameSource{window: window}
}

// RequestFrame arms the next-frame callback. Single-shot: Run consumes it.
func (s *GLFWFrameSource) RequestFrame(callback func(timestampMillis float64)) {
	s.pending = callback
}

// Now returns glfw's clock in milliseconds.
func (s *GLFWFrameSource) Now() float64 {
	return glfw.GetTime() * 1000.0
}

// Run delivers frame callbacks until the scheduler stops re-arming or the
// window is closed. Each iteration runs one tick, presents it, then polls
// window events so input callbacks fire between ticks.
func (s *GLFWFrameSource) Run() {
	for s.pending != nil && !s.window.ShouldClose() {
		tick := s.pending
		s.pending = nil
		tick(s.Now())

		s.window.SwapBuffers()
		glfw.PollEvents()
	}
}

// AttachPointerCallbacks wires GLFW mouse callbacks into the router and
// returns a detach function that restores them, guaranteeing listener
// removal on shutdown. GLFW reports window-local cursor coordinates, so the
// router's origin callback handles any further translation.
func AttachPointerCallbacks(window *glfw.Window, router *InputRouter) func() {
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		switch action {
		case glfw.Press:
			router.MouseDown(x, y)
		case glfw.Release:
			router.MouseUp(x, y)
		}
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		router.MouseMove(x, y)
	})

	return func() {
		window.SetMouseButtonCallback(nil)
		window.SetCursorPosCallback(nil)
	}
}
