package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm/code"
)

// stepNumeric lowers every plain arithmetic/comparison/conversion
// operator that doesn't need its own control-flow shape. Division,
// remainder, and the non-saturating float-to-int conversions still
// need a trap check ahead of the operation itself, mirrored here the
// way compiler/wax guards the same operators before emitting them.
func (t *translator) stepNumeric(instr code.Instruction) error {
	switch instr.Opcode {
	case code.OpI32Const:
		t.push(t.b.Iconst32(instr.I32()))
	case code.OpI64Const:
		t.push(t.b.Iconst64(instr.I64()))
	case code.OpF32Const:
		t.push(t.b.Fconst32(instr.F32()))
	case code.OpF64Const:
		t.push(t.b.Fconst64(instr.F64()))

	case code.OpI32Add, code.OpI64Add:
		t.binop(t.b.Iadd)
	case code.OpI32Sub, code.OpI64Sub:
		t.binop(t.b.Isub)
	case code.OpI32Mul, code.OpI64Mul:
		t.binop(t.b.Imul)
	case code.OpI32And, code.OpI64And:
		t.binop(t.b.Band)
	case code.OpI32Or, code.OpI64Or:
		t.binop(t.b.Bor)
	case code.OpI32Xor, code.OpI64Xor:
		t.binop(t.b.Bxor)
	case code.OpI32Shl, code.OpI64Shl:
		t.shift(t.b.Shl)
	case code.OpI32ShrU, code.OpI64ShrU:
		t.shift(t.b.Lshr)
	case code.OpI32ShrS, code.OpI64ShrS:
		t.shift(t.b.Ashr)

	case code.OpI32DivS, code.OpI64DivS:
		return t.intDiv(true, false)
	case code.OpI32DivU, code.OpI64DivU:
		return t.intDiv(false, false)
	case code.OpI32RemS, code.OpI64RemS:
		return t.intDiv(true, true)
	case code.OpI32RemU, code.OpI64RemU:
		return t.intDiv(false, true)

	case code.OpI32Rotl, code.OpI64Rotl:
		t.rotate(true)
	case code.OpI32Rotr, code.OpI64Rotr:
		t.rotate(false)

	case code.OpI32Clz, code.OpI64Clz:
		t.push(t.b.Clz(t.pop()))
	case code.OpI32Ctz, code.OpI64Ctz:
		t.push(t.b.Ctz(t.pop()))
	case code.OpI32Popcnt, code.OpI64Popcnt:
		t.push(t.b.Popcnt(t.pop()))

	case code.OpI32Eqz:
		t.pushBool(t.b.Icmp(ir.CmpEq, t.pop(), t.b.Iconst32(0)))
	case code.OpI64Eqz:
		t.pushBool(t.b.Icmp(ir.CmpEq, t.pop(), t.b.Iconst64(0)))

	case code.OpI32Eq, code.OpI64Eq:
		t.icmp(ir.CmpEq)
	case code.OpI32Ne, code.OpI64Ne:
		t.icmp(ir.CmpNe)
	case code.OpI32LtS, code.OpI64LtS:
		t.icmp(ir.CmpLtS)
	case code.OpI32LtU, code.OpI64LtU:
		t.icmp(ir.CmpLtU)
	case code.OpI32GtS, code.OpI64GtS:
		t.icmp(ir.CmpGtS)
	case code.OpI32GtU, code.OpI64GtU:
		t.icmp(ir.CmpGtU)
	case code.OpI32LeS, code.OpI64LeS:
		t.icmp(ir.CmpLeS)
	case code.OpI32LeU, code.OpI64LeU:
		t.icmp(ir.CmpLeU)
	case code.OpI32GeS, code.OpI64GeS:
		t.icmp(ir.CmpGeS)
	case code.OpI32GeU, code.OpI64GeU:
		t.icmp(ir.CmpGeU)

	case code.OpF32Add, code.OpF64Add:
		t.binop(t.b.Fadd)
	case code.OpF32Sub, code.OpF64Sub:
		t.binop(t.b.Fsub)
	case code.OpF32Mul, code.OpF64Mul:
		t.binop(t.b.Fmul)
	case code.OpF32Div, code.OpF64Div:
		t.binop(t.b.Fdiv)
	case code.OpF32Min, code.OpF64Min:
		t.binop(t.b.Fmin)
	case code.OpF32Max, code.OpF64Max:
		t.binop(t.b.Fmax)
	case code.OpF32Copysign, code.OpF64Copysign:
		t.binop(t.b.Fcopysign)
	case code.OpF32Neg, code.OpF64Neg:
		t.push(t.b.Fneg(t.pop()))
	case code.OpF32Abs, code.OpF64Abs:
		t.push(t.b.Fabs(t.pop()))
	case code.OpF32Ceil:
		t.roundIntrinsic(IntrinsicF32Ceil, ir.TypeF32)
	case code.OpF64Ceil:
		t.roundIntrinsic(IntrinsicF64Ceil, ir.TypeF64)
	case code.OpF32Floor:
		t.roundIntrinsic(IntrinsicF32Floor, ir.TypeF32)
	case code.OpF64Floor:
		t.roundIntrinsic(IntrinsicF64Floor, ir.TypeF64)
	case code.OpF32Trunc:
		t.roundIntrinsic(IntrinsicF32Trunc, ir.TypeF32)
	case code.OpF64Trunc:
		t.roundIntrinsic(IntrinsicF64Trunc, ir.TypeF64)
	case code.OpF32Nearest:
		t.roundIntrinsic(IntrinsicF32Nearest, ir.TypeF32)
	case code.OpF64Nearest:
		t.roundIntrinsic(IntrinsicF64Nearest, ir.TypeF64)
	case code.OpF32Sqrt, code.OpF64Sqrt:
		t.push(t.b.Sqrt(t.pop()))
	case code.OpF32Eq, code.OpF64Eq:
		t.fcmp(ir.FcmpEq)
	case code.OpF32Ne, code.OpF64Ne:
		t.fcmp(ir.FcmpNe)
	case code.OpF32Lt, code.OpF64Lt:
		t.fcmp(ir.FcmpLt)
	case code.OpF32Gt, code.OpF64Gt:
		t.fcmp(ir.FcmpGt)
	case code.OpF32Le, code.OpF64Le:
		t.fcmp(ir.FcmpLe)
	case code.OpF32Ge, code.OpF64Ge:
		t.fcmp(ir.FcmpGe)

	case code.OpI32WrapI64:
		t.push(t.b.Itrunc(t.pop(), ir.TypeI32))
	case code.OpI64ExtendI32S:
		t.push(t.b.Iextend(t.pop(), ir.TypeI64, true))
	case code.OpI64ExtendI32U:
		t.push(t.b.Iextend(t.pop(), ir.TypeI64, false))
	case code.OpI32Extend8S, code.OpI32Extend16S, code.OpI64Extend8S, code.OpI64Extend16S, code.OpI64Extend32S:
		return t.stepSignExtend(instr)

	case code.OpI32TruncF32S, code.OpI32TruncF64S:
		return t.checkedTrunc(ir.TypeI32, true)
	case code.OpI32TruncF32U, code.OpI32TruncF64U:
		return t.checkedTrunc(ir.TypeI32, false)
	case code.OpI64TruncF32S, code.OpI64TruncF64S:
		return t.checkedTrunc(ir.TypeI64, true)
	case code.OpI64TruncF32U, code.OpI64TruncF64U:
		return t.checkedTrunc(ir.TypeI64, false)

	case code.OpF32ConvertI32S, code.OpF32ConvertI64S:
		t.push(t.b.IntToFp(t.pop(), ir.TypeF32, true))
	case code.OpF32ConvertI32U, code.OpF32ConvertI64U:
		t.push(t.b.IntToFp(t.pop(), ir.TypeF32, false))
	case code.OpF64ConvertI32S, code.OpF64ConvertI64S:
		t.push(t.b.IntToFp(t.pop(), ir.TypeF64, true))
	case code.OpF64ConvertI32U, code.OpF64ConvertI64U:
		t.push(t.b.IntToFp(t.pop(), ir.TypeF64, false))

	case code.OpF32DemoteF64:
		t.push(t.b.Fdemote(t.pop()))
	case code.OpF64PromoteF32:
		t.push(t.b.Fpromote(t.pop()))

	case code.OpI32ReinterpretF32:
		t.push(t.b.Bitcast(t.pop(), ir.TypeI32))
	case code.OpI64ReinterpretF64:
		t.push(t.b.Bitcast(t.pop(), ir.TypeI64))
	case code.OpF32ReinterpretI32:
		t.push(t.b.Bitcast(t.pop(), ir.TypeF32))
	case code.OpF64ReinterpretI64:
		t.push(t.b.Bitcast(t.pop(), ir.TypeF64))

	default:
		return fmt.Errorf("unsupported opcode 0x%x", instr.Opcode)
	}
	return nil
}

func (t *translator) roundIntrinsic(name string, typ ir.Type) {
	v := t.pop()
	t.push(t.b.CallIntrinsic(name, []*ir.Value{v}, []ir.Type{typ})[0])
}

func (t *translator) binop(f func(x, y *ir.Value) *ir.Value) {
	y := t.pop()
	x := t.pop()
	t.push(f(x, y))
}

// shift masks the count to the operand's bit width minus one before
// emitting the backend shift, giving WebAssembly's modulo-bitwidth
// shift semantics.
func (t *translator) shift(f func(x, y *ir.Value) *ir.Value) {
	y := t.pop()
	x := t.pop()
	t.push(f(x, t.maskShiftCount(y)))
}

func (t *translator) maskShiftCount(y *ir.Value) *ir.Value {
	if y.Type() == ir.TypeI64 {
		return t.b.Band(y, t.b.Iconst64(63))
	}
	return t.b.Band(y, t.b.Iconst32(31))
}

func (t *translator) icmp(pred ir.IntCmp) {
	y := t.pop()
	x := t.pop()
	t.pushBool(t.b.Icmp(pred, x, y))
}

func (t *translator) fcmp(pred ir.FloatCmp) {
	y := t.pop()
	x := t.pop()
	t.pushBool(t.b.Fcmp(pred, x, y))
}

// pushBool zero-extends an i1 comparison result to i32 before putting
// it on the operand stack, matching every other WebAssembly value's
// width; the i1 form stays internal to condition checks (trapIf, if,
// br_if) that never round-trip through the stack.
func (t *translator) pushBool(v *ir.Value) {
	t.push(t.b.Iextend(v, ir.TypeI32, false))
}

// intDiv guards against the two traps integer division and remainder
// share: division by zero, and (for signed division only) INT_MIN /
// -1 overflowing the result type. Signed remainder shares the same
// overflow condition but must not trap on it: INT_MIN % -1 is defined
// to be 0, so that arm is guarded into a phi instead of a trapIf.
func (t *translator) intDiv(signed, rem bool) error {
	y := t.pop()
	x := t.pop()

	zero := t.zeroOf(y.Type())
	isZero := t.b.Icmp(ir.CmpEq, y, zero)
	t.trapIf(isZero, TrapIntegerDivideByZero)

	if !signed {
		if rem {
			t.push(t.b.Urem(x, y))
		} else {
			t.push(t.b.Udiv(x, y))
		}
		return nil
	}

	minVal := t.minIntOf(y.Type())
	negOne := t.negOneOf(y.Type())
	overflow := t.b.Band(t.b.Icmp(ir.CmpEq, x, minVal), t.b.Icmp(ir.CmpEq, y, negOne))

	if !rem {
		t.trapIf(overflow, TrapIntegerOverflow)
		t.push(t.b.Sdiv(x, y))
		return nil
	}

	t.push(t.overflowGuardedSrem(overflow, x, y))
	return nil
}

// overflowGuardedSrem yields the typed zero on the INT_MIN/-1 overflow
// arm and the backend's signed remainder otherwise, merged through a
// phi so the non-trapping WebAssembly semantics hold regardless of
// what the (out-of-scope) backend's raw srem does on that input.
func (t *translator) overflowGuardedSrem(overflow, x, y *ir.Value) *ir.Value {
	overflowBB := t.fn.AllocateBasicBlock()
	normalBB := t.fn.AllocateBasicBlock()
	mergeBB := t.fn.AllocateBasicBlock()
	mergeBB.AddParam(t.fn, y.Type())

	t.b.Branch(overflow, overflowBB, normalBB, nil)

	t.fn.Append(overflowBB)
	t.b.SetInsertionPoint(overflowBB)
	t.b.Jump(mergeBB, []*ir.Value{t.zeroOf(y.Type())})

	t.fn.Append(normalBB)
	t.b.SetInsertionPoint(normalBB)
	t.b.Jump(mergeBB, []*ir.Value{t.b.Srem(x, y)})

	t.fn.Append(mergeBB)
	t.b.SetInsertionPoint(mergeBB)
	return mergeBB.Params[0]
}

func (t *translator) zeroOf(typ ir.Type) *ir.Value {
	if typ == ir.TypeI64 {
		return t.b.Iconst64(0)
	}
	return t.b.Iconst32(0)
}

func (t *translator) minIntOf(typ ir.Type) *ir.Value {
	if typ == ir.TypeI64 {
		return t.b.Iconst64(int64(-1) << 63)
	}
	return t.b.Iconst32(int32(-1) << 31)
}

func (t *translator) negOneOf(typ ir.Type) *ir.Value {
	if typ == ir.TypeI64 {
		return t.b.Iconst64(-1)
	}
	return t.b.Iconst32(-1)
}

// rotate has no dedicated IR opcode: x rotl/rotr y lowers to the usual
// shift-and-or pair, with the complementary shift amount computed mod
// the type's bit width.
func (t *translator) rotate(left bool) {
	y := t.maskShiftCount(t.pop())
	x := t.pop()
	width := int64(32)
	if x.Type() == ir.TypeI64 {
		width = 64
	}
	widthV := t.b.Iconst64(width)
	if x.Type() == ir.TypeI32 {
		widthV = t.b.Iconst32(int32(width))
	}
	comp := t.maskShiftCount(t.b.Isub(widthV, y))

	if left {
		t.push(t.b.Bor(t.b.Shl(x, y), t.b.Lshr(x, comp)))
	} else {
		t.push(t.b.Bor(t.b.Lshr(x, y), t.b.Shl(x, comp)))
	}
}

// stepSignExtend lowers the N-bit sign-extend operators as the usual
// shift-left-then-arithmetic-shift-right-by-(width-N) trick, since the
// backend IR has no narrower integer types to trunc through.
func (t *translator) stepSignExtend(instr code.Instruction) error {
	v := t.pop()
	width := int64(32)
	if v.Type() == ir.TypeI64 {
		width = 64
	}

	var n int64
	switch instr.Opcode {
	case code.OpI32Extend8S, code.OpI64Extend8S:
		n = 8
	case code.OpI32Extend16S, code.OpI64Extend16S:
		n = 16
	case code.OpI64Extend32S:
		n = 32
	}

	shift := width - n
	shiftV := t.b.Iconst32(int32(shift))
	if v.Type() == ir.TypeI64 {
		shiftV = t.b.Iconst64(shift)
	}
	t.push(t.b.Ashr(t.b.Shl(v, shiftV), shiftV))
	return nil
}

// checkedTrunc lowers the non-saturating float-to-int conversions,
// which trap instead of clamping when the source is NaN or out of the
// destination type's representable range. The actual range test is
// the runtime intrinsic's job; this just arranges the trap.
func (t *translator) checkedTrunc(to ir.Type, signed bool) error {
	v := t.pop()
	inRange := t.b.CallIntrinsic(IntrinsicFpToIntRangeCheck, []*ir.Value{
		v,
		t.b.Iconst32(boolToInt32(to == ir.TypeI64)),
		t.b.Iconst32(boolToInt32(signed)),
	}, []ir.Type{ir.TypeI1})[0]
	t.trapIf(t.b.Icmp(ir.CmpEq, inRange, t.b.Iconst32(0)), TrapInvalidConversionToInteger)
	t.push(t.b.FpToInt(v, to, signed))
	return nil
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (t *translator) stepSaturatingTrunc(instr code.Instruction) error {
	v := t.pop()
	switch instr.Immediate {
	case code.OpI32TruncSatF32S, code.OpI32TruncSatF64S:
		t.push(t.b.FpToIntSat(v, ir.TypeI32, true))
	case code.OpI32TruncSatF32U, code.OpI32TruncSatF64U:
		t.push(t.b.FpToIntSat(v, ir.TypeI32, false))
	case code.OpI64TruncSatF32S, code.OpI64TruncSatF64S:
		t.push(t.b.FpToIntSat(v, ir.TypeI64, true))
	case code.OpI64TruncSatF32U, code.OpI64TruncSatF64U:
		t.push(t.b.FpToIntSat(v, ir.TypeI64, false))
	default:
		return fmt.Errorf("unsupported saturating-truncation sub-opcode %d", instr.Immediate)
	}
	return nil
}
