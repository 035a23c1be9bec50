package engine

import "glimmer/internal/logger"

// FrameTick is the timing information for one scheduler iteration.
// Timestamp is the host's high-resolution time in milliseconds; Delta is
// the clamped time since the previous tick, in seconds.
type FrameTick struct {
	Timestamp float64
	Delta     float64
}

// UpdateFunc is the caller-supplied per-frame closure: it advances
// application state from the tick and the pointer events observed since the
// previous tick, then draws.
type UpdateFunc func(tick FrameTick, events []PointerEvent) error

// SchedulerState is the frame scheduler's lifecycle state.
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateArmed
	StateRunning
	StateStopped
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown state"
	}
}

// frameRate keeps a ring of recent tick timestamps for a rough FPS figure.
type frameRate struct {
	buf   [32]float64
	index int
	count int
}

func (f *frameRate) record(timestamp float64) {
	f.buf[f.index] = timestamp
	f.index = (f.index + 1) % len(f.buf)
	if f.count < len(f.buf) {
		f.count++
	}
}

func (f *frameRate) rate() float64 {
	if f.count < 2 {
		return 0
	}
	oldest := f.buf[(f.index-f.count+len(f.buf))%len(f.buf)]
	newest := f.buf[(f.index-1+len(f.buf))%len(f.buf)]
	if newest <= oldest {
		return 0
	}
	return float64(f.count-1) * 1000.0 / (newest - oldest)
}

// FrameScheduler drives the engine from host refresh callbacks. There is no
// background thread: every tick runs synchronously inside the callback, and
// between ticks control returns entirely to the host. The single re-arming
// entry point keeps the loop from double-arming.
type FrameScheduler struct {
	source   FrameSource
	input    *InputRouter
	update   UpdateFunc
	log      *logger.Logger
	maxDelta float64

	state    SchedulerState
	last     float64
	hasLast  bool
	stopReq  bool
	fps      frameRate
}

// NewFrameScheduler creates a scheduler. maxDelta caps a tick's delta in
// seconds; zero selects a default of 0.1s.
func NewFrameScheduler(source FrameSource, input *InputRouter, update UpdateFunc, maxDelta float64, log *logger.Logger) *FrameScheduler {
	if maxDelta <= 0 {
		maxDelta = 0.1
	}
	return &FrameScheduler{
		source:   source,
		input:    input,
		update:   update,
		log:      log,
		maxDelta: maxDelta,
		state:    StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *FrameScheduler) State() SchedulerState { return s.state }

// Start arms the scheduler and requests the first refresh callback. Only
// valid from the idle state.
func (s *FrameScheduler) Start() {
	if s.state != StateIdle {
		s.log.Warnf("start ignored in state %s", s.state)
		return
	}
	s.state = StateArmed
	s.source.RequestFrame(s.tick)
}

// Stop requests a stop. Idempotent, and safe to call from within the
// per-frame closure: it takes effect at the end of the current tick, so no
// further closure invocation occurs.
func (s *FrameScheduler) Stop() {
	switch s.state {
	case StateIdle:
		s.state = StateStopped
	case StateArmed, StateRunning:
		s.stopReq = true
	}
}

// tick is the single re-arming entry point, invoked by the host once per
// display refresh while the scheduler is armed.
func (s *FrameScheduler) tick(timestamp float64) {
	if s.state != StateArmed {
		s.log.Warnf("tick ignored in state %s", s.state)
		return
	}
	if s.stopReq {
		s.state = StateStopped
		s.log.Debugf("scheduler stopped, frame rate %.1f fps", s.fps.rate())
		return
	}
	s.state = StateRunning

	delta := 0.0
	if s.hasLast {
		delta = (timestamp - s.last) / 1000.0
		if delta < 0 {
			delta = 0
		} else if delta > s.maxDelta {
			delta = s.maxDelta
		}
	}
	s.last = timestamp
	s.hasLast = true
	s.fps.record(timestamp)

	events := s.input.Drain()
	if err := s.update(FrameTick{Timestamp: timestamp, Delta: delta}, events); err != nil {
		s.log.Errorf("frame update: %v", err)
	}

	if s.stopReq {
		s.state = StateStopped
		s.log.Debugf("scheduler stopped, frame rate %.1f fps", s.fps.rate())
		return
	}
	s.state = StateArmed
	s.source.RequestFrame(s.tick)
}
