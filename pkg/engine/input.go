package engine

import "glimmer/internal/logger"

// PointerPhase describes a gesture's lifecycle stage.
type PointerPhase int

const (
	PhaseDown PointerPhase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown phase"
	}
}

// PointerSource discriminates which device produced an event.
type PointerSource int

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// MousePointerID is the reserved pointer id for the single mouse pointer.
// Host-assigned touch ids are non-negative, so they never collide with it.
const MousePointerID = -1

// PointerEvent is the unified pointer model: mouse and touch input are
// normalized at the boundary so downstream logic is source-agnostic.
// X and Y are canvas-local coordinates.
type PointerEvent struct {
	ID     int
	Phase  PointerPhase
	X, Y   float64
	Source PointerSource
}

// OriginFunc returns the canvas origin in viewport coordinates. It is
// re-queried for every event because page layout can move the canvas.
type OriginFunc func() (x, y float64)

// InputRouter merges mouse and multi-touch input into one ordered event
// queue with at-most-one-active-gesture-per-id semantics. Events are queued
// in arrival order, without coalescing, and drained once per tick by the
// scheduler. Malformed source events (duplicate downs, ups with no active
// gesture) are recovered internally and never surfaced. The queue limit
// bounds Move flood between drains; phase transitions are always admitted.
type InputRouter struct {
	origin OriginFunc
	log    *logger.Logger
	queue  []PointerEvent
	limit  int
	active map[int]bool
}

// NewInputRouter creates a router with the given queue capacity. The origin
// callback translates viewport coordinates to canvas-local space.
func NewInputRouter(origin OriginFunc, queueLimit int, log *logger.Logger) *InputRouter {
	if queueLimit <= 0 {
		queueLimit = 256
	}
	return &InputRouter{
		origin: origin,
		log:    log,
		limit:  queueLimit,
		active: make(map[int]bool),
	}
}

// MouseDown records a mouse button press. A second press with no
// intervening release is malformed and dropped.
func (r *InputRouter) MouseDown(x, y float64) {
	if r.active[MousePointerID] {
		r.log.Debug("dropping duplicate mouse down")
		return
	}
	r.active[MousePointerID] = true
	r.push(MousePointerID, PhaseDown, x, y, SourceMouse)
}

// MouseMove records a cursor move. Hover moves (no button down) are valid.
func (r *InputRouter) MouseMove(x, y float64) {
	r.push(MousePointerID, PhaseMove, x, y, SourceMouse)
}

// MouseUp records a mouse button release, freeing the mouse pointer id.
func (r *InputRouter) MouseUp(x, y float64) {
	if !r.active[MousePointerID] {
		r.log.Debug("dropping mouse up with no active press")
		return
	}
	delete(r.active, MousePointerID)
	r.push(MousePointerID, PhaseUp, x, y, SourceMouse)
}

// TouchStart records a new touch gesture. A start for an id that is already
// active recovers from a missed end: it is observed as Cancel then Down.
func (r *InputRouter) TouchStart(id int, x, y float64) {
	if id < 0 {
		r.log.Debugf("dropping touch start with invalid id %d", id)
		return
	}
	if r.active[id] {
		r.log.Debugf("touch %d restarted without end, cancelling previous gesture", id)
		r.push(id, PhaseCancel, x, y, SourceTouch)
	}
	r.active[id] = true
	r.push(id, PhaseDown, x, y, SourceTouch)
}

// TouchMove records movement for an active touch.
func (r *InputRouter) TouchMove(id int, x, y float64) {
	if !r.active[id] {
		r.log.Debugf("dropping move for unknown touch %d", id)
		return
	}
	r.push(id, PhaseMove, x, y, SourceTouch)
}

// TouchEnd records the end of an active touch, freeing its id.
func (r *InputRouter) TouchEnd(id int, x, y float64) {
	if !r.active[id] {
		r.log.Debugf("dropping end for unknown touch %d", id)
		return
	}
	delete(r.active, id)
	r.push(id, PhaseUp, x, y, SourceTouch)
}

// TouchCancel records host-side cancellation of an active touch.
func (r *InputRouter) TouchCancel(id int, x, y float64) {
	if !r.active[id] {
		r.log.Debugf("dropping cancel for unknown touch %d", id)
		return
	}
	delete(r.active, id)
	r.push(id, PhaseCancel, x, y, SourceTouch)
}

// Drain returns all queued events in arrival order and empties the queue.
// Called once per scheduler tick; callers wanting Move coalescing do it on
// the returned slice.
func (r *InputRouter) Drain() []PointerEvent {
	if len(r.queue) == 0 {
		return nil
	}
	out := r.queue
	r.queue = nil
	return out
}

// ActivePointers reports how many gestures are currently between Down and
// Up/Cancel.
func (r *InputRouter) ActivePointers() int { return len(r.active) }

func (r *InputRouter) push(id int, phase PointerPhase, x, y float64, source PointerSource) {
	// Only Moves are dropped on overflow. Down/Up/Cancel always enqueue, so
	// the drained stream never loses a phase transition: gesture state and
	// observed phases stay consistent even under a full queue.
	if phase == PhaseMove && len(r.queue) >= r.limit {
		r.log.Warnf("input queue full, dropping %s for pointer %d", phase, id)
		return
	}
	ox, oy := r.origin()
	r.queue = append(r.queue, PointerEvent{
		ID:     id,
		Phase:  phase,
		X:      x - ox,
		Y:      y - oy,
		Source: source,
	})
}
