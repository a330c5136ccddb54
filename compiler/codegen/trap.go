package codegen

import "github.com/wasmjit-go/wazm/internal/ir"

// trapIf builds the <name>Trap/<name>Skip basic block pair used
// throughout the translator for guarded operations: div/rem by zero,
// INT_MIN/-1 overflow, float-to-int range checks, and misaligned
// atomic accesses. cond is evaluated in the current block; when true,
// control diverts into a block that reports code and never returns,
// otherwise falls through to skip, which becomes the new insertion
// point.
func (t *translator) trapIf(cond *ir.Value, code TrapCode) {
	trapBB := t.fn.AllocateBasicBlock()
	skipBB := t.fn.AllocateBasicBlock()

	t.b.Branch(cond, trapBB, skipBB, nil)

	t.fn.Append(trapBB)
	t.b.SetInsertionPoint(trapBB)
	t.emitTrap(code)

	t.fn.Append(skipBB)
	t.b.SetInsertionPoint(skipBB)
}

// emitTrap calls the runtime trap helper and terminates the current
// block. The helper itself never returns control to the caller; the
// unreachable terminator documents that to the backend.
func (t *translator) emitTrap(code TrapCode) {
	t.b.CallIntrinsic(IntrinsicTrap, []*ir.Value{t.b.Iconst32(int32(code))}, nil)
	t.b.TrapUnreachable()
}
