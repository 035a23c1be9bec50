package engine

import "fmt"

// ResourceCreationError indicates the host refused to allocate a GPU object,
// for example after context loss or under memory pressure.
type ResourceCreationError struct {
	Kind   ResourceKind
	Reason string
}

func (e *ResourceCreationError) Error() string {
	return fmt.Sprintf("failed to create %s: %s", e.Kind, e.Reason)
}

// InvalidHandleError indicates a resource id that was never issued, was
// released, or belongs to a previous generation of its slot.
type InvalidHandleError struct {
	ID ResourceID
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("invalid resource handle %v", e.ID)
}

// ShaderCompileError carries the host's info log for a failed stage compile.
type ShaderCompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// ProgramLinkError carries the host's info log for a failed program link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("shader program linking failed: %s", e.Log)
}

// UnknownUniformError indicates a statically-known uniform name that the
// linked program does not expose. Treated as a build-time error.
type UnknownUniformError struct {
	Name string
}

func (e *UnknownUniformError) Error() string {
	return fmt.Sprintf("unknown uniform %q", e.Name)
}

// FramebufferIncompleteError indicates an offscreen target whose attachments
// the host rejected. This is a fatal configuration error, not retried.
type FramebufferIncompleteError struct {
	Status uint32
}

func (e *FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("framebuffer incomplete: status 0x%x", e.Status)
}
