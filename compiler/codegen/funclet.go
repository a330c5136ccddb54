package codegen

import "github.com/wasmjit-go/wazm/internal/ir"

// FuncletLowering implements ExceptionLowering on the funclet model
// used by __C_specific_handler: a catchswitch terminator names every
// catchpad clause of a try region, and the runtime's unwinder picks
// the first whose filter accepts the in-flight exception.
type FuncletLowering struct{}

type funcletState struct {
	unwind   *ir.BasicBlock
	handlers []*ir.BasicBlock
}

func (s *funcletState) UnwindBlock() *ir.BasicBlock { return s.unwind }

func (FuncletLowering) Try(t *translator) TryHandle {
	return &funcletState{unwind: t.fn.AllocateBasicBlock()}
}

func (FuncletLowering) Catch(t *translator, h TryHandle, tagIndex uint32, tagTypes []ir.Type) (*ir.BasicBlock, []*ir.Value) {
	st := h.(*funcletState)
	pad := t.fn.AllocateBasicBlock()
	st.handlers = append(st.handlers, pad)

	t.fn.Append(pad)
	t.b.SetInsertionPoint(pad)

	// local-recover lets the filter function (built from the same
	// EscapedLocals list) reach the parent frame's locals; the catch
	// body itself just asks the runtime for the decoded payload.
	bound := make([]*ir.Value, len(tagTypes))
	for i, ty := range tagTypes {
		bound[i] = t.b.CallIntrinsic("rt.seh.catch_value", []*ir.Value{
			t.b.Iconst32(int32(tagIndex)),
			t.b.Iconst32(int32(i)),
		}, []ir.Type{ty})[0]
	}
	return pad, bound
}

func (FuncletLowering) CatchAll(t *translator, h TryHandle) *ir.BasicBlock {
	st := h.(*funcletState)
	pad := t.fn.AllocateBasicBlock()
	st.handlers = append(st.handlers, pad)

	t.fn.Append(pad)
	t.b.SetInsertionPoint(pad)
	return pad
}

func (FuncletLowering) Throw(t *translator, tagIndex uint32, args []*ir.Value) {
	raiseArgs := append([]*ir.Value{t.b.Iconst32(int32(tagIndex))}, args...)
	t.b.CallIntrinsic("rt.seh.raise", raiseArgs, nil)
	t.emitTrap(TrapUncaughtException)
}

func (FuncletLowering) Rethrow(t *translator, h TryHandle) {
	t.b.CallIntrinsic("rt.seh.rethrow", nil, nil)
	t.emitTrap(TrapUncaughtException)
}

// EndTry finalizes the catchswitch once every clause is known. Every
// try gets a funcletState; one with no catch clauses at all reaches
// EndTry with an empty handler list and gets a catchswitch with no
// handlers.
func (FuncletLowering) EndTry(t *translator, h TryHandle) {
	st := h.(*funcletState)
	t.fn.Append(st.unwind)
	t.b.SetInsertionPoint(st.unwind)
	t.b.CatchSwitch(st.handlers)
}

// EndCatch has nothing model-specific to add: the catchpad body's own
// jump to the try construct's continuation is a plain catchret in a
// full implementation, which the translator's generic control-flow
// unwinding already emits as an ordinary jump.
func (FuncletLowering) EndCatch(t *translator, h TryHandle) {}
