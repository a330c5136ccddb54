package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm/code"
)

// stepBlockHeader handles block/loop/if. Unlike loop, block needs no
// new basic block at entry: its label targets its forward end, and
// nothing branches back to its start, so the "in" operands just stay
// on the value stack under the new ctrl entry.
func (t *translator) stepBlockHeader(instr code.Instruction) error {
	in, out, ok := instr.BlockType(t.scope)
	if !ok {
		return fmt.Errorf("unresolvable block type")
	}

	switch instr.Opcode {
	case code.OpBlock:
		end := t.fn.AllocateBasicBlock()
		for _, ty := range out {
			end.AddParam(t.fn, irType(ty))
		}
		t.pushCtrl(&ctrl{kind: ctrlBlock, resultTypes: out, end: end})

	case code.OpLoop:
		header := t.fn.AllocateBasicBlock()
		for _, ty := range in {
			header.AddParam(t.fn, irType(ty))
		}
		args := t.popN(len(in))
		t.b.Jump(header, args)
		t.fn.Append(header)
		t.b.SetInsertionPoint(header)
		for _, v := range header.Params {
			t.push(v)
		}

		end := t.fn.AllocateBasicBlock()
		for _, ty := range out {
			end.AddParam(t.fn, irType(ty))
		}
		t.pushCtrl(&ctrl{kind: ctrlLoop, resultTypes: out, paramTypes: in, header: header, end: end})

	case code.OpIf:
		cond := t.pop()
		thenBB := t.fn.AllocateBasicBlock()
		elseBB := t.fn.AllocateBasicBlock()
		for _, ty := range in {
			thenBB.AddParam(t.fn, irType(ty))
			elseBB.AddParam(t.fn, irType(ty))
		}
		end := t.fn.AllocateBasicBlock()
		for _, ty := range out {
			end.AddParam(t.fn, irType(ty))
		}
		args := t.popN(len(in))
		t.b.Branch(cond, thenBB, elseBB, args)

		t.fn.Append(thenBB)
		t.b.SetInsertionPoint(thenBB)
		for _, v := range thenBB.Params {
			t.push(v)
		}
		t.pushCtrl(&ctrl{kind: ctrlIfThen, resultTypes: out, end: end, elseBB: elseBB})
	}
	return nil
}

func (t *translator) stepElse() error {
	c := t.popCtrl()
	if c.kind != ctrlIfThen {
		return fmt.Errorf("else without matching if")
	}

	if !t.unreachable {
		t.b.Jump(c.end, t.popN(len(c.resultTypes)))
	}
	t.unreachable = false
	t.stack = t.stack[:c.stackHeight]

	t.fn.Append(c.elseBB)
	t.b.SetInsertionPoint(c.elseBB)
	for _, v := range c.elseBB.Params {
		t.push(v)
	}
	t.pushCtrl(&ctrl{kind: ctrlIfElse, resultTypes: c.resultTypes, end: c.end})
	return nil
}

// stepEnd closes the innermost construct. An if with no explicit else
// falls through elseBB as an identity pass-through of its "in" args,
// since stepBlockHeader already fed elseBB the same args it fed thenBB.
func (t *translator) stepEnd() error {
	c := t.popCtrl()

	switch c.kind {
	case ctrlIfThen:
		if !t.unreachable {
			t.b.Jump(c.end, t.popN(len(c.resultTypes)))
		}
		t.fn.Append(c.elseBB)
		t.b.SetInsertionPoint(c.elseBB)
		t.unreachable = false
		t.stack = t.stack[:c.stackHeight]
		t.b.Jump(c.end, t.elseFallthroughArgs(c))

	case ctrlIfElse, ctrlBlock:
		if !t.unreachable {
			t.b.Jump(c.end, t.popN(len(c.resultTypes)))
		}

	case ctrlLoop:
		if !t.unreachable {
			t.b.Jump(c.end, t.popN(len(c.resultTypes)))
		}

	case ctrlTry, ctrlCatch:
		if !t.unreachable {
			t.b.Jump(c.end, t.popN(len(c.resultTypes)))
		}
		if c.kind == ctrlCatch {
			t.lower.EndCatch(t, c.tryHandle)
		}
		// This end is reached only once no further catch/catch_all
		// follows, so every clause of the region is known by now.
		t.lower.EndTry(t, c.tryHandle)
	}

	t.unreachable = false
	t.stack = t.stack[:c.stackHeight]

	t.fn.Append(c.end)
	t.b.SetInsertionPoint(c.end)
	for _, v := range c.end.Params {
		t.push(v)
	}

	// The outermost ctrl (the function body's implicit block) has no
	// enclosing construct to fall through to: its end is the return.
	if len(t.ctrls) == 0 {
		t.b.Return(t.popN(len(c.resultTypes)))
		t.unreachable = true
	}
	return nil
}

// stepUnreachable is where step() dispatches every operator once the
// current region is statically dead (after br/br_table/return/throw/
// unreachable). Per spec §4.3 it counts nested structured regions and
// forwards only else/end/catch/catch_all/delegate once nesting returns
// to the level that was live when the region went unreachable — every
// other operator, including ones that would otherwise touch the
// operand stack, is silently dropped.
func (t *translator) stepUnreachable(instr code.Instruction) error {
	switch instr.Opcode {
	case code.OpBlock, code.OpLoop, code.OpIf, code.OpTry:
		t.deadNesting++
	case code.OpEnd:
		if t.deadNesting == 0 {
			return t.stepEnd()
		}
		t.deadNesting--
	case code.OpElse:
		if t.deadNesting == 0 {
			return t.stepElse()
		}
	case code.OpCatch:
		if t.deadNesting == 0 {
			return t.stepCatch(instr)
		}
	case code.OpCatchAll:
		if t.deadNesting == 0 {
			return t.stepCatchAll()
		}
	case code.OpDelegate:
		if t.deadNesting == 0 {
			return t.stepDelegate(instr)
		}
		t.deadNesting--
	}
	return nil
}

// elseFallthroughArgs re-reads the if's "in" operands, which
// stepBlockHeader already fed to elseBB's phis via Branch; here we
// only need matching values to satisfy Jump's signature, so read them
// back off elseBB's own params.
func (t *translator) elseFallthroughArgs(c *ctrl) []*ir.Value {
	return c.elseBB.Params
}

func (t *translator) stepBr(instr code.Instruction) error {
	target, types := t.branchTarget(uint32(instr.Labelidx()))
	t.b.Jump(target, t.popN(len(types)))
	t.markUnreachable()
	return nil
}

func (t *translator) stepBrIf(instr code.Instruction) error {
	cond := t.pop()
	target, types := t.branchTarget(uint32(instr.Labelidx()))
	args := t.peekN(len(types))

	fallthroughBB := t.fn.AllocateBasicBlock()
	t.b.Branch(cond, target, fallthroughBB, args)
	t.fn.Append(fallthroughBB)
	t.b.SetInsertionPoint(fallthroughBB)
	return nil
}

// stepBrTable lowers br_table onto Switch, wiring each target's phis
// by hand since Switch does not do so automatically (targets may repeat).
func (t *translator) stepBrTable(instr code.Instruction) error {
	index := t.pop()

	defBB, defTypes := t.branchTarget(uint32(instr.Default()))
	args := t.peekN(len(defTypes))

	cases := make([]*ir.BasicBlock, len(instr.Labels))
	for i := range cases {
		bb, _ := t.branchTarget(uint32(instr.Labels[i]))
		cases[i] = bb
	}

	pred := t.b.InsertionBlock()
	for idx, a := range args {
		defBB.AddIncoming(idx, pred, a)
	}
	for _, bb := range cases {
		for idx, a := range args {
			bb.AddIncoming(idx, pred, a)
		}
	}

	t.b.Switch(index, defBB, cases)
	t.markUnreachable()
	return nil
}

func (t *translator) stepReturn() error {
	outer := t.ctrls[0]
	t.b.Jump(outer.end, t.popN(len(outer.resultTypes)))
	t.markUnreachable()
	return nil
}

