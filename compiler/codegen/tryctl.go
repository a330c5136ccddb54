package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm/code"
)

// stepTry opens a try region. Like block, its "in" operands need no
// new basic block at entry: the region has exactly one predecessor,
// the instruction stream that reached the try.
func (t *translator) stepTry(instr code.Instruction) error {
	_, out, ok := instr.BlockType(t.scope)
	if !ok {
		return fmt.Errorf("unresolvable block type")
	}

	end := t.fn.AllocateBasicBlock()
	for _, ty := range out {
		end.AddParam(t.fn, irType(ty))
	}
	h := t.lower.Try(t)
	t.pushCtrl(&ctrl{kind: ctrlTry, resultTypes: out, end: end, tryHandle: h})
	return nil
}

// closeClause finishes the region current at the top of the control
// stack, whether that's the try's guarded body or a preceding catch
// clause, mirroring stepElse's close-then-open-next-region shape.
func (t *translator) closeClause(c *ctrl) {
	if !t.unreachable {
		t.b.Jump(c.end, t.popN(len(c.resultTypes)))
	}
	if c.kind == ctrlCatch {
		t.lower.EndCatch(t, c.tryHandle)
	}
	t.unreachable = false
	t.stack = t.stack[:c.stackHeight]
}

func (t *translator) stepCatch(instr code.Instruction) error {
	c := t.popCtrl()
	if c.kind != ctrlTry && c.kind != ctrlCatch {
		return fmt.Errorf("catch without matching try")
	}
	t.closeClause(c)

	tagSig, _ := t.scope.GetExceptionType(instr.Tagidx())
	clause, bound := t.lower.Catch(t, c.tryHandle, instr.Tagidx(), irTypes(tagSig.ParamTypes))
	t.b.SetInsertionPoint(clause)
	for _, v := range bound {
		t.push(v)
	}
	t.pushCtrl(&ctrl{kind: ctrlCatch, resultTypes: c.resultTypes, end: c.end, tryHandle: c.tryHandle})
	return nil
}

func (t *translator) stepCatchAll() error {
	c := t.popCtrl()
	if c.kind != ctrlTry && c.kind != ctrlCatch {
		return fmt.Errorf("catch_all without matching try")
	}
	t.closeClause(c)

	clause := t.lower.CatchAll(t, c.tryHandle)
	t.b.SetInsertionPoint(clause)
	t.pushCtrl(&ctrl{kind: ctrlCatch, resultTypes: c.resultTypes, end: c.end, tryHandle: c.tryHandle})
	return nil
}

func (t *translator) stepThrow(instr code.Instruction) error {
	tagSig, _ := t.scope.GetExceptionType(instr.Tagidx())
	args := t.popN(len(tagSig.ParamTypes))
	t.lower.Throw(t, instr.Tagidx(), args)
	t.markUnreachable()
	return nil
}

func (t *translator) stepRethrow(instr code.Instruction) error {
	h := t.ctrlAt(uint32(instr.Labelidx())).tryHandle
	t.lower.Rethrow(t, h)
	t.markUnreachable()
	return nil
}

// stepDelegate closes a try that declares no catch clauses of its own
// and instead forwards any exception straight to an enclosing label's
// unwind edge (or out of the function, if the label names the
// function body itself).
func (t *translator) stepDelegate(instr code.Instruction) error {
	c := t.popCtrl()
	if c.kind != ctrlTry {
		return fmt.Errorf("delegate without matching try")
	}

	if !t.unreachable {
		t.b.Jump(c.end, t.popN(len(c.resultTypes)))
	}

	unwind := c.tryHandle.UnwindBlock()
	t.fn.Append(unwind)
	t.b.SetInsertionPoint(unwind)
	if target := t.delegateTarget(int(instr.Labelidx())); target != nil {
		t.b.Jump(target, nil)
	} else {
		t.emitTrap(TrapUncaughtException)
	}

	t.unreachable = false
	t.stack = t.stack[:c.stackHeight]
	t.fn.Append(c.end)
	t.b.SetInsertionPoint(c.end)
	for _, v := range c.end.Params {
		t.push(v)
	}
	return nil
}

func (t *translator) delegateTarget(depth int) *ir.BasicBlock {
	if depth >= len(t.ctrls) {
		return nil
	}
	if h := t.ctrlAt(uint32(depth)).tryHandle; h != nil {
		return h.UnwindBlock()
	}
	return nil
}
