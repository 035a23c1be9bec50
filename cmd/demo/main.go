package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glimmer/internal/logger"
	"glimmer/pkg/config"
	"glimmer/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

// instance is one hexatile of the demo triplet.
type instance struct {
	offset [3]float32
	scale  [3]float32
	color  [3]float32
	angle  float32
	speed  float32
}

// floats per instance: color(3) + model(16) + normals(16)
const instanceStride = 35

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Println(err)
	}
	log := logger.NewLogger(cfg.Logging.Level)
	log.Info("Starting glimmer demo...")

	if err := run(cfg, log); err != nil {
		log.Fatalf("demo failed: %v", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	window, err := engine.NewWindow(cfg.Graphics)
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	ctx, err := engine.NewGLContext()
	if err != nil {
		return err
	}

	registry := engine.NewResourceRegistry(ctx, log)
	defer registry.ReleaseAll()
	builder := engine.NewProgramBuilder(ctx, registry, log)
	pipeline := engine.NewRenderPipeline(ctx, registry, log)

	router := engine.NewInputRouter(func() (float64, float64) { return 0, 0 }, cfg.Engine.InputQueueSize, log)
	detach := engine.AttachPointerCallbacks(window, router)
	defer detach()

	console := engine.NewDebugConsole(cfg.Console.Capacity)
	console.SetVisible(cfg.Console.Visible)
	if err := console.InitGraphics(builder, registry, pipeline); err != nil {
		return err
	}

	cues := engine.NewAudioCues(cfg.Audio, log)
	defer cues.Shutdown()

	scene, err := newScene(builder, registry, pipeline)
	if err != nil {
		return err
	}

	width, height := window.GetFramebufferSize()
	pick, err := engine.NewOffscreenTarget(ctx, registry, log, width, height)
	if err != nil {
		return err
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		width, height = w, h
		if w <= 0 || h <= 0 {
			return
		}
		if err := pick.Resize(w, h); err != nil {
			log.Errorf("pick target resize failed: %v", err)
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF1:
			console.Toggle()
		}
	})

	var (
		dragging  bool
		dragStart [2]float64
		camBase   [2]float32
		camOffset [2]float32
	)

	source := engine.NewGLFWFrameSource(window)
	scheduler := engine.NewFrameScheduler(source, router, func(tick engine.FrameTick, events []engine.PointerEvent) error {
		for _, ev := range events {
			switch ev.Phase {
			case engine.PhaseDown:
				dragging = true
				dragStart = [2]float64{ev.X, ev.Y}
				camBase = camOffset
				cues.Trigger()
				console.Append(fmt.Sprintf("pointer %d down at %.0f,%.0f", ev.ID, ev.X, ev.Y), logger.DEBUG)
			case engine.PhaseMove:
				if dragging {
					camOffset[0] = camBase[0] + float32(ev.X-dragStart[0])/100.0
					camOffset[1] = camBase[1] + float32(-ev.Y+dragStart[1])/100.0
				}
			case engine.PhaseUp:
				dragging = false
				if px, err := pick.ReadPixel(int(ev.X), height-int(ev.Y)); err == nil {
					console.Append(fmt.Sprintf("picked rgba %v", px), logger.INFO)
				}
			case engine.PhaseCancel:
				dragging = false
			}
		}

		scene.advance(tick.Delta)

		// A minimized window reports a zero-sized framebuffer; skip drawing
		// until it is restored.
		if width <= 0 || height <= 0 {
			return nil
		}
		view := engine.LookAt(
			[3]float32{0.5 + camOffset[0], 1.0, 3.0 + camOffset[1]},
			[3]float32{0, 0, 0},
			[3]float32{0, 1, 0},
		)
		projection := engine.Perspective(60.0, float32(width)/float32(height), 0.1, 100.0)

		// pick pass first, then the visible frame
		if err := pipeline.DrawOffscreen(pick, func() error {
			return scene.draw(pipeline, view, projection)
		}); err != nil {
			log.Errorf("pick pass skipped: %v", err)
		}

		pipeline.Begin(width, height)
		if err := scene.draw(pipeline, view, projection); err != nil {
			log.Errorf("scene draw skipped: %v", err)
		}
		return console.Render(pipeline, width, height)
	}, cfg.Engine.MaxFrameDelta, log)

	log.Info("Engine initialized, starting frame loop...")
	scheduler.Start()
	source.Run()
	scheduler.Stop()
	return nil
}

// scene is the hexatile triplet with its GPU resources.
type scene struct {
	pipeline    *engine.RenderPipeline
	program     *engine.ProgramDescriptor
	vertexArray engine.ResourceID
	instanceBuf engine.ResourceID
	vertexCount int
	instances   []instance
}

func newScene(builder *engine.ProgramBuilder, registry *engine.ResourceRegistry, pipeline *engine.RenderPipeline) (*scene, error) {
	program, err := builder.Build(
		engine.MeshVertexShaderSource,
		engine.MeshFragmentShaderSource,
		[]engine.AttributeBinding{
			{Name: "position", Slot: 0},
			{Name: "normal", Slot: 1},
			{Name: "color", Slot: 2},
			{Name: "model", Slot: 3},
			{Name: "normals", Slot: 7},
		},
		[]string{"view", "projection"},
	)
	if err != nil {
		return nil, err
	}

	vertices, normals := engine.HexatileMesh()

	vao, err := registry.Create(engine.KindVertexArray, engine.ResourceParams{})
	if err != nil {
		return nil, err
	}
	posBuf, err := registry.Create(engine.KindBuffer, engine.ResourceParams{Usage: engine.StaticDraw})
	if err != nil {
		return nil, err
	}
	normBuf, err := registry.Create(engine.KindBuffer, engine.ResourceParams{Usage: engine.StaticDraw})
	if err != nil {
		return nil, err
	}
	instanceBuf, err := registry.Create(engine.KindBuffer, engine.ResourceParams{Usage: engine.DynamicDraw})
	if err != nil {
		return nil, err
	}

	if err := pipeline.UploadVertices(posBuf, vertices); err != nil {
		return nil, err
	}
	if err := pipeline.UploadVertices(normBuf, normals); err != nil {
		return nil, err
	}

	if err := pipeline.ConfigureAttribute(vao, posBuf, 0, 3, 3, 0, 0); err != nil {
		return nil, err
	}
	if err := pipeline.ConfigureAttribute(vao, normBuf, 1, 3, 3, 0, 0); err != nil {
		return nil, err
	}
	if err := pipeline.ConfigureAttribute(vao, instanceBuf, 2, 3, instanceStride, 0, 1); err != nil {
		return nil, err
	}
	for col := 0; col < 4; col++ {
		if err := pipeline.ConfigureAttribute(vao, instanceBuf, uint32(3+col), 4, instanceStride, 3+col*4, 1); err != nil {
			return nil, err
		}
		if err := pipeline.ConfigureAttribute(vao, instanceBuf, uint32(7+col), 4, instanceStride, 19+col*4, 1); err != nil {
			return nil, err
		}
	}

	return &scene{
		pipeline:    pipeline,
		program:     program,
		vertexArray: vao,
		instanceBuf: instanceBuf,
		vertexCount: len(vertices) / 3,
		instances: []instance{
			{offset: [3]float32{-0.6, 0, 0}, scale: [3]float32{1, 3, 1}, color: rgb(0x19, 0x19, 0x70), speed: 0.4},
			{offset: [3]float32{0, 0, 0}, scale: [3]float32{1, 2, 1}, color: rgb(0x87, 0xce, 0xfa), speed: 0.8},
			{offset: [3]float32{0.6, 0, 0}, scale: [3]float32{1, 1, 1}, color: rgb(0xff, 0xb6, 0xc1), speed: 1.2},
		},
	}, nil
}

func (s *scene) advance(delta float64) {
	for i := range s.instances {
		s.instances[i].angle += s.instances[i].speed * float32(delta)
	}
}

func (s *scene) draw(pipeline *engine.RenderPipeline, view, projection engine.Mat4) error {
	data := make([]float32, 0, len(s.instances)*instanceStride)
	for _, in := range s.instances {
		rotation := engine.RotationY(in.angle)
		model := engine.Translation(in.offset[0], in.offset[1], in.offset[2]).
			Mul(rotation).
			Mul(engine.Scaling(in.scale[0], in.scale[1], in.scale[2]))
		data = append(data, in.color[0], in.color[1], in.color[2])
		data = append(data, model[:]...)
		data = append(data, rotation[:]...)
	}
	if err := pipeline.UploadVertices(s.instanceBuf, data); err != nil {
		return err
	}

	return pipeline.Draw(engine.DrawCall{
		Program:     s.program,
		VertexArray: s.vertexArray,
		Uniforms: map[string]engine.Mat4{
			"view":       view,
			"projection": projection,
		},
		VertexCount:   s.vertexCount,
		InstanceCount: len(s.instances),
	})
}

func rgb(r, g, b int) [3]float32 {
	return [3]float32{float32(r) / 255.0, float32(g) / 255.0, float32(b) / 255.0}
}
