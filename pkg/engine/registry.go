package engine

import (
	"fmt"

	"glimmer/internal/logger"
)

// ResourceID is a generation-tagged index into the registry's arena. The
// zero value never refers to a live resource. Ids are stable for the
// lifetime of the resource and are never reused for a different object:
// releasing a slot bumps its generation, so a stale id held by another
// component can only fail, not alias.
type ResourceID struct {
	index uint32
	gen   uint32
}

func (id ResourceID) String() string {
	return fmt.Sprintf("res#%d.%d", id.index, id.gen)
}

type resourceSlot struct {
	handle Handle
	kind   ResourceKind
	params ResourceParams
	gen    uint32
	live   bool
}

// ResourceRegistry owns the lifetime of every GPU-side object. All other
// components hold ResourceIDs and resolve them per use; the registry is the
// single writer of host object lifetime.
type ResourceRegistry struct {
	ctx   GraphicsContext
	log   *logger.Logger
	slots []resourceSlot
	free  []uint32
}

// NewResourceRegistry creates an empty registry over the given context.
func NewResourceRegistry(ctx GraphicsContext, log *logger.Logger) *ResourceRegistry {
	return &ResourceRegistry{ctx: ctx, log: log}
}

// Create allocates a host object of the given kind and registers it.
// Returns a ResourceCreationError when the host denies the allocation.
func (r *ResourceRegistry) Create(kind ResourceKind, params ResourceParams) (ResourceID, error) {
	handle, err := r.ctx.CreateObject(kind, params)
	if err != nil {
		cerr := &ResourceCreationError{Kind: kind, Reason: err.Error()}
		r.log.Errorf("resource creation failed: %v", cerr)
		return ResourceID{}, cerr
	}

	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, resourceSlot{})
		index = uint32(len(r.slots) - 1)
	}

	slot := &r.slots[index]
	slot.handle = handle
	slot.kind = kind
	slot.params = params
	slot.gen++
	slot.live = true

	return ResourceID{index: index, gen: slot.gen}, nil
}

// Release invalidates the id and asks the host to reclaim the object.
// Releasing an already-released or unknown id is a no-op.
func (r *ResourceRegistry) Release(id ResourceID) {
	slot := r.lookup(id)
	if slot == nil {
		return
	}
	slot.live = false
	r.free = append(r.free, id.index)
	r.ctx.DeleteObject(slot.kind, slot.handle)
}

// Resolve returns the host handle for a live id, or an InvalidHandleError
// for ids that were never issued, were released, or were invalidated.
func (r *ResourceRegistry) Resolve(id ResourceID) (Handle, error) {
	slot := r.lookup(id)
	if slot == nil {
		return 0, &InvalidHandleError{ID: id}
	}
	return slot.handle, nil
}

// Kind returns the resource kind for a live id.
func (r *ResourceRegistry) Kind(id ResourceID) (ResourceKind, error) {
	slot := r.lookup(id)
	if slot == nil {
		return 0, &InvalidHandleError{ID: id}
	}
	return slot.kind, nil
}

// Params returns the creation parameters recorded for a live id.
func (r *ResourceRegistry) Params(id ResourceID) (ResourceParams, error) {
	slot := r.lookup(id)
	if slot == nil {
		return ResourceParams{}, &InvalidHandleError{ID: id}
	}
	return slot.params, nil
}

// Live reports how many resources are currently registered.
func (r *ResourceRegistry) Live() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].live {
			n++
		}
	}
	return n
}

// ReleaseAll tears down every live resource, deleting the host objects.
func (r *ResourceRegistry) ReleaseAll() {
	for i := range r.slots {
		slot := &r.slots[i]
		if !slot.live {
			continue
		}
		slot.live = false
		r.free = append(r.free, uint32(i))
		r.ctx.DeleteObject(slot.kind, slot.handle)
	}
}

// InvalidateAll marks every id stale without issuing host-side deletes.
// Used on context loss, where the objects died with the context and the
// caller is responsible for rebuilding resources.
func (r *ResourceRegistry) InvalidateAll() {
	for i := range r.slots {
		slot := &r.slots[i]
		if !slot.live {
			continue
		}
		slot.live = false
		r.free = append(r.free, uint32(i))
	}
	r.log.Warn("all resource handles invalidated")
}

func (r *ResourceRegistry) lookup(id ResourceID) *resourceSlot {
	if int(id.index) >= len(r.slots) {
		return nil
	}
	slot := &r.slots[id.index]
	if !slot.live || slot.gen != id.gen {
		return nil
	}
	return slot
}
