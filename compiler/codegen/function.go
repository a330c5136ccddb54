package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm"
	"github.com/wasmjit-go/wazm/wasm/code"
)

// ctrlKind distinguishes the control-flow constructs the translator's
// control stack tracks, mirroring compiler/wax's Block bookkeeping but
// driving an ir.Builder instead of building expression trees.
type ctrlKind int

const (
	ctrlBlock ctrlKind = iota
	ctrlLoop
	ctrlIfThen
	ctrlIfElse
	ctrlTry
	ctrlCatch
)

// ctrl is one entry of the translator's control stack, one per open
// block/loop/if/try construct.
type ctrl struct {
	kind ctrlKind

	resultTypes []wasm.ValueType
	paramTypes  []wasm.ValueType // loop only: the backedge phi types

	header *ir.BasicBlock // loop only: the backedge target
	end    *ir.BasicBlock // the construct's continuation
	elseBB *ir.BasicBlock // if only: the pre-allocated else block

	elseTaken bool

	stackHeight int // operand stack depth at entry, for unreachable-code drops

	// tryHandle is non-nil for ctrlTry/ctrlCatch entries.
	tryHandle TryHandle
}

type translator struct {
	module *ModuleEmitter
	lower  ExceptionLowering

	fn    *ir.Function
	b     *ir.Builder
	scope code.Scope

	sig  wasm.FunctionSig
	body wasm.FunctionBody

	locals []*ir.Value // one LocalAlloca slot per local, params included

	// escapeIndex records, for each local slot a SEH catch clause has
	// had to recover, its position in fn.EscapedLocals. Populated
	// lazily by localSlot; stays nil for functions with no try/catch.
	escapeIndex map[*ir.Value]int

	stack []*ir.Value
	ctrls []*ctrl

	unreachable bool
	deadNesting int // structured regions entered since t.unreachable went true
}

func newTranslator(m *ModuleEmitter, fn *ir.Function, sig wasm.FunctionSig, body wasm.FunctionBody, scope code.Scope) *translator {
	return &translator{
		module: m,
		lower:  m.lowering(),
		fn:     fn,
		sig:    sig,
		body:   body,
		scope:  scope,
	}
}

func (t *translator) translate() error {
	entry := t.fn.AllocateBasicBlock()
	for _, ty := range t.fn.Sig.Params {
		entry.AddParam(t.fn, ty)
	}
	t.fn.Append(entry)

	t.b = ir.NewBuilder(t.fn)
	t.b.SetInsertionPoint(entry)

	t.declareLocals(entry.Params[1:]) // Params[0] is the context pointer

	decoded, err := code.Decode(t.body.Code, t.scope, t.sig.ReturnTypes)
	if err != nil {
		return err
	}

	retEnd := t.fn.AllocateBasicBlock()
	for _, rt := range t.sig.ReturnTypes {
		retEnd.AddParam(t.fn, irType(rt))
	}
	t.ctrls = append(t.ctrls, &ctrl{kind: ctrlBlock, resultTypes: t.sig.ReturnTypes, end: retEnd})

	for ip, instr := range decoded.Instructions {
		t.b.SetLine(ip)
		if err := t.step(instr); err != nil {
			return fmt.Errorf("operator %d (%s): %w", ip, instr.String(), err)
		}
	}

	if len(t.fn.EscapedLocals) > 0 {
		t.spliceLocalEscapeBlock(entry)
	}
	return nil
}

// inCatchFilter reports whether the translator is currently emitting
// code that lives inside a funclet/SEH catch clause, where a local
// access reaches a slot allocated in the enclosing function's frame
// rather than the filter's own. The landing-pad model has no such
// split: an Itanium catch block still runs in the same frame.
func (t *translator) inCatchFilter() bool {
	if t.module.personality != PersonalitySEH {
		return false
	}
	for _, c := range t.ctrls {
		if c.kind == ctrlCatch {
			return true
		}
	}
	return false
}

// escapedSlot records slot for local-escape on first use and returns
// its index into fn.EscapedLocals, reusing the same index on repeat
// recoveries of the same local.
func (t *translator) escapedSlot(slot *ir.Value) int {
	if t.escapeIndex == nil {
		t.escapeIndex = make(map[*ir.Value]int)
	}
	if i, ok := t.escapeIndex[slot]; ok {
		return i
	}
	i := len(t.fn.EscapedLocals)
	t.fn.EscapedLocals = append(t.fn.EscapedLocals, slot)
	t.escapeIndex[slot] = i
	return i
}

// spliceLocalEscapeBlock prepends a block that registers every local a
// catch clause recovered during translation with the backend's
// local-escape intrinsic, then falls through to the function's real
// entry. Only built when translation actually demanded it, so a
// function with no try/catch never pays for it.
func (t *translator) spliceLocalEscapeBlock(entry *ir.BasicBlock) {
	escape := t.fn.AllocateBasicBlock()
	t.b.SetInsertionPoint(escape)
	t.b.LocalEscape(t.fn.EscapedLocals)
	t.b.Jump(entry, nil)
	t.fn.Blocks = append([]*ir.BasicBlock{escape}, t.fn.Blocks...)
}

func (t *translator) declareLocals(paramValues []*ir.Value) {
	for _, p := range paramValues {
		slot := t.b.LocalAlloca(p.Type())
		t.b.LocalStore(slot, p)
		t.locals = append(t.locals, slot)
	}
	for _, l := range t.body.Locals {
		for i := uint32(0); i < l.Count; i++ {
			slot := t.b.LocalAlloca(irType(l.Type))
			t.b.LocalStore(slot, t.b.ZeroValue(irType(l.Type)))
			t.locals = append(t.locals, slot)
		}
	}
}

// step dispatches one already-validated operator onto the builder.
// The decoder guarantees stack-type correctness, so the cases below
// only ever need the instruction's own declared operand counts.
func (t *translator) step(instr code.Instruction) error {
	if t.unreachable {
		return t.stepUnreachable(instr)
	}
	switch instr.Opcode {
	case code.OpNop:
		// no-op

	case code.OpUnreachable:
		t.emitTrap(TrapUnreachable)
		t.markUnreachable()

	case code.OpBlock, code.OpLoop, code.OpIf:
		return t.stepBlockHeader(instr)
	case code.OpElse:
		return t.stepElse()
	case code.OpEnd:
		return t.stepEnd()

	case code.OpTry:
		return t.stepTry(instr)
	case code.OpCatch:
		return t.stepCatch(instr)
	case code.OpCatchAll:
		return t.stepCatchAll()
	case code.OpDelegate:
		return t.stepDelegate(instr)
	case code.OpThrow:
		return t.stepThrow(instr)
	case code.OpRethrow:
		return t.stepRethrow(instr)

	case code.OpBr:
		return t.stepBr(instr)
	case code.OpBrIf:
		return t.stepBrIf(instr)
	case code.OpBrTable:
		return t.stepBrTable(instr)
	case code.OpReturn:
		return t.stepReturn()

	case code.OpCall:
		return t.stepCall(instr)
	case code.OpCallIndirect:
		return t.stepCallIndirect(instr)

	case code.OpDrop:
		t.pop()
	case code.OpSelect:
		t.stepSelect()

	case code.OpLocalGet, code.OpLocalSet, code.OpLocalTee:
		return t.stepLocal(instr)
	case code.OpGlobalGet, code.OpGlobalSet:
		return t.stepGlobal(instr)

	case code.OpMemorySize:
		t.push(t.b.CallIntrinsic(IntrinsicMemorySize, nil, []ir.Type{ir.TypeI32})[0])
	case code.OpMemoryGrow:
		delta := t.pop()
		t.push(t.b.CallIntrinsic(IntrinsicMemoryGrow, []*ir.Value{delta}, []ir.Type{ir.TypeI32})[0])

	case code.OpPrefix:
		return t.stepSaturatingTrunc(instr)
	case code.OpPrefixSIMD:
		return t.stepSIMD(instr)
	case code.OpPrefixAtomic:
		return t.stepAtomic(instr)

	default:
		if isLoadStore(instr.Opcode) {
			return t.stepMemory(instr)
		}
		return t.stepNumeric(instr)
	}
	return nil
}

// --- operand stack -------------------------------------------------

func (t *translator) push(v *ir.Value) { t.stack = append(t.stack, v) }

func (t *translator) pop() *ir.Value {
	v := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return v
}

func (t *translator) popN(n int) []*ir.Value {
	if n == 0 {
		return nil
	}
	vs := append([]*ir.Value(nil), t.stack[len(t.stack)-n:]...)
	t.stack = t.stack[:len(t.stack)-n]
	return vs
}

func (t *translator) peekN(n int) []*ir.Value {
	if n == 0 {
		return nil
	}
	return t.stack[len(t.stack)-n:]
}

// --- control stack ---------------------------------------------------

func (t *translator) pushCtrl(c *ctrl) {
	c.stackHeight = len(t.stack)
	t.ctrls = append(t.ctrls, c)
}

func (t *translator) topCtrl() *ctrl { return t.ctrls[len(t.ctrls)-1] }

func (t *translator) popCtrl() *ctrl {
	c := t.ctrls[len(t.ctrls)-1]
	t.ctrls = t.ctrls[:len(t.ctrls)-1]
	return c
}

func (t *translator) ctrlAt(depth uint32) *ctrl {
	return t.ctrls[len(t.ctrls)-1-int(depth)]
}

// branchTarget returns the block a branch to depth jumps to and the
// value types it must feed, per the WebAssembly rule that a loop's
// label targets its header (fed the loop's parameter types) while
// every other construct's label targets its continuation (fed the
// construct's result types).
func (t *translator) branchTarget(depth uint32) (*ir.BasicBlock, []wasm.ValueType) {
	c := t.ctrlAt(depth)
	if c.kind == ctrlLoop {
		return c.header, c.paramTypes
	}
	return c.end, c.resultTypes
}

func (t *translator) markUnreachable() {
	t.unreachable = true
	t.stack = t.stack[:t.topCtrl().stackHeight]
}

// innermostUnwind finds the nearest enclosing try/catch's unwind
// block, the invoke destination for calls made inside it.
func (t *translator) innermostUnwind() *ir.BasicBlock {
	for i := len(t.ctrls) - 1; i >= 0; i-- {
		if h := t.ctrls[i].tryHandle; h != nil {
			return h.UnwindBlock()
		}
	}
	return nil
}

func isLoadStore(op byte) bool {
	switch op {
	case code.OpI32Load, code.OpI64Load, code.OpF32Load, code.OpF64Load,
		code.OpI32Load8S, code.OpI32Load8U, code.OpI32Load16S, code.OpI32Load16U,
		code.OpI64Load8S, code.OpI64Load8U, code.OpI64Load16S, code.OpI64Load16U, code.OpI64Load32S, code.OpI64Load32U,
		code.OpI32Store, code.OpI64Store, code.OpF32Store, code.OpF64Store,
		code.OpI32Store8, code.OpI32Store16, code.OpI64Store8, code.OpI64Store16, code.OpI64Store32:
		return true
	}
	return false
}
