package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm/code"
)

func (t *translator) stepLocal(instr code.Instruction) error {
	idx := instr.Localidx()
	if int(idx) >= len(t.locals) {
		return fmt.Errorf("local index %d out of range", idx)
	}
	slot := t.localSlot(idx)

	switch instr.Opcode {
	case code.OpLocalGet:
		t.push(t.b.LocalLoad(slot))
	case code.OpLocalSet:
		t.b.LocalStore(slot, t.pop())
	case code.OpLocalTee:
		v := t.pop()
		t.b.LocalStore(slot, v)
		t.push(v)
	}
	return nil
}

// localSlot returns the alloca backing local idx. Inside a funclet/SEH
// catch clause, that alloca lives in the enclosing function's frame,
// not the conceptual filter's own, so it has to be recovered via the
// backend's local-recover intrinsic keyed by the index local-escape
// assigned it; everywhere else the slot is used directly.
func (t *translator) localSlot(idx uint32) *ir.Value {
	slot := t.locals[idx]
	if !t.inCatchFilter() {
		return slot
	}
	return t.b.CallIntrinsic("rt.seh.local_recover", []*ir.Value{t.b.Iconst32(int32(t.escapedSlot(slot)))}, []ir.Type{slot.Type()})[0]
}

// globalOffset maps a globalidx onto the flat byte offset the runtime
// reserves for it in the module's global data segment, the same
// linear layout compiler/wax's global accessors assume.
func (t *translator) globalOffset(idx uint32) int64 {
	return int64(idx) * 8
}

func (t *translator) stepGlobal(instr code.Instruction) error {
	idx := instr.Globalidx()
	g, ok := t.scope.GetGlobalType(idx)
	if !ok {
		return fmt.Errorf("unknown global %d", idx)
	}
	offset := t.globalOffset(idx)

	switch instr.Opcode {
	case code.OpGlobalGet:
		t.push(t.b.GlobalLoad(offset, irType(g.Type)))
	case code.OpGlobalSet:
		t.b.GlobalStore(offset, t.pop())
	}
	return nil
}
