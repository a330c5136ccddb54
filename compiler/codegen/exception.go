package codegen

import "github.com/wasmjit-go/wazm/internal/ir"

// TryHandle is the opaque per-try-region state an ExceptionLowering
// implementation threads through a try/catch/catch_all/end sequence.
// The translator never inspects it beyond UnwindBlock, which it needs
// to pick an invoke target for calls issued inside the region.
type TryHandle interface {
	UnwindBlock() *ir.BasicBlock
}

// ExceptionLowering lowers the exception-handling proposal's control
// instructions onto one of two ABIs: the funclet/SEH model
// (FuncletLowering) or the landing-pad/Itanium model (LandingPadLowering).
// The translator drives this interface without knowing which model is
// in effect, the way its dispatch loop stays agnostic to the calling
// convention beyond the module's declared Personality.
type ExceptionLowering interface {
	// Try opens a try region and returns its handle; calls issued
	// before the matching EndTry target UnwindBlock() on exception.
	Try(t *translator) TryHandle

	// Catch opens a handler clause for tagIndex, whose payload types
	// are tagTypes. It returns the block the clause's body should be
	// emitted into and the values bound to the payload.
	Catch(t *translator, h TryHandle, tagIndex uint32, tagTypes []ir.Type) (clause *ir.BasicBlock, bound []*ir.Value)

	// CatchAll opens a handler clause matching any exception.
	CatchAll(t *translator, h TryHandle) (clause *ir.BasicBlock)

	// Throw raises a new exception carrying args under tagIndex.
	Throw(t *translator, tagIndex uint32, args []*ir.Value)

	// Rethrow re-raises the exception caught by h's active clause.
	Rethrow(t *translator, h TryHandle)

	// EndTry finalizes the region's unwind block once every clause
	// has been registered via Catch/CatchAll.
	EndTry(t *translator, h TryHandle)

	// EndCatch runs at the close of a handler clause's body, before
	// control rejoins the try construct's continuation.
	EndCatch(t *translator, h TryHandle)
}
