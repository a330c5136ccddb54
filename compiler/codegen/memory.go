package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm/code"
)

// memAddr pops the instruction's i32 effective-address operand,
// widens it to the backend pointer width, and folds in the static
// memarg offset, leaving a single linear-memory pointer value.
func (t *translator) memAddr(offset uint32) *ir.Value {
	base := t.pop()
	addr := base
	if base.Type() != ir.TypeI64 {
		addr = t.b.Iextend(base, ir.TypeI64, false)
	}
	return t.b.Iadd(addr, t.b.Iconst64(int64(offset)))
}

func (t *translator) load(offset uint32, typ ir.Type) {
	t.push(t.b.Load(t.memAddr(offset), typ))
}

func (t *translator) loadNarrow(offset uint32, intrinsic string, typ ir.Type) {
	addr := t.memAddr(offset)
	t.push(t.b.CallIntrinsic(intrinsic, []*ir.Value{addr}, []ir.Type{typ})[0])
}

func (t *translator) store(offset uint32) {
	val := t.pop()
	t.b.Store(t.memAddr(offset), val)
}

func (t *translator) storeNarrow(offset uint32, intrinsic string) {
	val := t.pop()
	addr := t.memAddr(offset)
	t.b.CallIntrinsic(intrinsic, []*ir.Value{addr, val}, nil)
}

// atomicAddr is memAddr plus the alignment check every atomic
// load/store/rmw/cmpxchg requires: the effective address must be a
// multiple of the access's natural size, or the access traps instead
// of reading/writing a misaligned location.
func (t *translator) atomicAddr(offset, alignLog2 uint32) *ir.Value {
	addr := t.memAddr(offset)
	if alignLog2 == 0 {
		return addr
	}
	mask := t.b.Iconst64(int64(1<<alignLog2) - 1)
	misaligned := t.b.Icmp(ir.CmpNe, t.b.Band(addr, mask), t.b.Iconst64(0))
	t.trapIf(misaligned, TrapUnalignedAtomicAccess)
	return addr
}

func (t *translator) stepMemory(instr code.Instruction) error {
	offset, _ := instr.Memarg()

	switch instr.Opcode {
	case code.OpI32Load:
		t.load(offset, ir.TypeI32)
	case code.OpI64Load:
		t.load(offset, ir.TypeI64)
	case code.OpF32Load:
		t.load(offset, ir.TypeF32)
	case code.OpF64Load:
		t.load(offset, ir.TypeF64)

	case code.OpI32Load8S:
		t.loadNarrow(offset, IntrinsicMemLoad8S, ir.TypeI32)
	case code.OpI32Load8U:
		t.loadNarrow(offset, IntrinsicMemLoad8U, ir.TypeI32)
	case code.OpI32Load16S:
		t.loadNarrow(offset, IntrinsicMemLoad16S, ir.TypeI32)
	case code.OpI32Load16U:
		t.loadNarrow(offset, IntrinsicMemLoad16U, ir.TypeI32)
	case code.OpI64Load8S:
		t.loadNarrow(offset, IntrinsicMemLoad8S, ir.TypeI64)
	case code.OpI64Load8U:
		t.loadNarrow(offset, IntrinsicMemLoad8U, ir.TypeI64)
	case code.OpI64Load16S:
		t.loadNarrow(offset, IntrinsicMemLoad16S, ir.TypeI64)
	case code.OpI64Load16U:
		t.loadNarrow(offset, IntrinsicMemLoad16U, ir.TypeI64)
	case code.OpI64Load32S:
		t.loadNarrow(offset, IntrinsicMemLoad32S, ir.TypeI64)
	case code.OpI64Load32U:
		t.loadNarrow(offset, IntrinsicMemLoad32U, ir.TypeI64)

	case code.OpI32Store, code.OpI64Store, code.OpF32Store, code.OpF64Store:
		t.store(offset)
	case code.OpI32Store8, code.OpI64Store8:
		t.storeNarrow(offset, IntrinsicMemStore8)
	case code.OpI32Store16, code.OpI64Store16:
		t.storeNarrow(offset, IntrinsicMemStore16)
	case code.OpI64Store32:
		t.storeNarrow(offset, IntrinsicMemStore32)

	default:
		return fmt.Errorf("unsupported memory opcode 0x%x", instr.Opcode)
	}
	return nil
}

// stepAtomic lowers the shared-memory proposal's sub-opcode space,
// covering notify/wait and the load/store/rmw/cmpxchg families for the
// two widths the type system carries natively.
func (t *translator) stepAtomic(instr code.Instruction) error {
	offset, alignLog2 := instr.SIMDMemarg()

	switch instr.SubOp() {
	case code.OpAtomicNotify:
		count := t.pop()
		addr := t.memAddr(offset)
		t.push(t.b.CallIntrinsic(IntrinsicAtomicNotify, []*ir.Value{addr, count}, []ir.Type{ir.TypeI32})[0])

	case code.OpAtomicWaitI32:
		timeout := t.pop()
		expected := t.pop()
		addr := t.memAddr(offset)
		t.push(t.b.CallIntrinsic(IntrinsicAtomicWait, []*ir.Value{addr, expected, timeout, t.b.Iconst32(0)}, []ir.Type{ir.TypeI32})[0])

	case code.OpAtomicWaitI64:
		timeout := t.pop()
		expected := t.pop()
		addr := t.memAddr(offset)
		t.push(t.b.CallIntrinsic(IntrinsicAtomicWait, []*ir.Value{addr, expected, timeout, t.b.Iconst32(1)}, []ir.Type{ir.TypeI32})[0])

	case code.OpI32AtomicLoad:
		t.push(t.b.AtomicLoad(t.atomicAddr(offset, alignLog2), ir.TypeI32))
	case code.OpI64AtomicLoad:
		t.push(t.b.AtomicLoad(t.atomicAddr(offset, alignLog2), ir.TypeI64))

	case code.OpI32AtomicStore, code.OpI64AtomicStore:
		val := t.pop()
		t.b.AtomicStore(t.atomicAddr(offset, alignLog2), val)

	case code.OpI32AtomicRmwAdd, code.OpI64AtomicRmwAdd:
		val := t.pop()
		t.push(t.b.AtomicRmw("add", t.atomicAddr(offset, alignLog2), val))

	case code.OpI32AtomicRmwSub, code.OpI64AtomicRmwSub:
		val := t.pop()
		t.push(t.b.AtomicRmw("sub", t.atomicAddr(offset, alignLog2), val))

	case code.OpI32AtomicRmwCmpxchg, code.OpI64AtomicRmwCmpxchg:
		replacement := t.pop()
		expected := t.pop()
		t.push(t.b.AtomicCmpxchg(t.atomicAddr(offset, alignLog2), expected, replacement))

	default:
		return fmt.Errorf("unsupported atomic sub-opcode %d", instr.SubOp())
	}
	return nil
}
