package ir

// Builder emits Instructions into a Function at a movable insertion
// point, mirroring the AllocateInstruction/insert style of a real
// backend IR builder (e.g. wazero's ssa.Builder).
type Builder struct {
	fn *Function
	bb *BasicBlock

	line int
}

func NewBuilder(fn *Function) *Builder {
	return &Builder{fn: fn}
}

func (b *Builder) Function() *Function { return b.fn }

// SetInsertionPoint moves the builder's cursor to the end of bb.
func (b *Builder) SetInsertionPoint(bb *BasicBlock) { b.bb = bb }

func (b *Builder) InsertionBlock() *BasicBlock { return b.bb }

// SetLine attaches a debug location (the operator index) to every
// instruction emitted after this call.
func (b *Builder) SetLine(line int) { b.line = line }

func (b *Builder) emit(i *Instruction) *Instruction {
	i.SourceLine = b.line
	b.bb.addInstruction(i)
	return i
}

func (b *Builder) define(typ Type, i *Instruction) *Value {
	v := b.fn.newValue(typ, i)
	i.Result = v
	b.emit(i)
	return v
}

// Iconst32 / Iconst64 emit typed integer constants.
func (b *Builder) Iconst32(v int32) *Value {
	return b.define(TypeI32, &Instruction{Opcode: OpIconst, Type: TypeI32, ConstI: int64(v)})
}

func (b *Builder) Iconst64(v int64) *Value {
	return b.define(TypeI64, &Instruction{Opcode: OpIconst, Type: TypeI64, ConstI: v})
}

func (b *Builder) Fconst32(v float32) *Value {
	return b.define(TypeF32, &Instruction{Opcode: OpFconst, Type: TypeF32, ConstF: float64(v)})
}

func (b *Builder) Fconst64(v float64) *Value {
	return b.define(TypeF64, &Instruction{Opcode: OpFconst, Type: TypeF64, ConstF: v})
}

// Vconst emits a 128-bit vector constant from its little-endian bytes.
func (b *Builder) Vconst(bytes [16]byte) *Value {
	return b.define(TypeV128, &Instruction{Opcode: OpVconst, Type: TypeV128, ConstV: bytes})
}

// ZeroValue returns the typed zero constant for t, used for local
// initialization and phi fallbacks.
func (b *Builder) ZeroValue(t Type) *Value {
	switch t {
	case TypeI32:
		return b.Iconst32(0)
	case TypeI64:
		return b.Iconst64(0)
	case TypeF32:
		return b.Fconst32(0)
	case TypeF64:
		return b.Fconst64(0)
	case TypeV128:
		return b.Vconst([16]byte{})
	default:
		panic("ir: no zero value for " + t.String())
	}
}

func (b *Builder) binop(op Opcode, typ Type, x, y *Value) *Value {
	return b.define(typ, &Instruction{Opcode: op, Type: typ, Args: []*Value{x, y}})
}

func (b *Builder) unop(op Opcode, typ Type, x *Value) *Value {
	return b.define(typ, &Instruction{Opcode: op, Type: typ, Args: []*Value{x}})
}

func (b *Builder) Iadd(x, y *Value) *Value { return b.binop(OpIadd, x.Type(), x, y) }
func (b *Builder) Isub(x, y *Value) *Value { return b.binop(OpIsub, x.Type(), x, y) }
func (b *Builder) Imul(x, y *Value) *Value { return b.binop(OpImul, x.Type(), x, y) }
func (b *Builder) Udiv(x, y *Value) *Value { return b.binop(OpUdiv, x.Type(), x, y) }
func (b *Builder) Sdiv(x, y *Value) *Value { return b.binop(OpSdiv, x.Type(), x, y) }
func (b *Builder) Urem(x, y *Value) *Value { return b.binop(OpUrem, x.Type(), x, y) }
func (b *Builder) Srem(x, y *Value) *Value { return b.binop(OpSrem, x.Type(), x, y) }
func (b *Builder) Band(x, y *Value) *Value { return b.binop(OpBand, x.Type(), x, y) }
func (b *Builder) Bor(x, y *Value) *Value  { return b.binop(OpBor, x.Type(), x, y) }
func (b *Builder) Bxor(x, y *Value) *Value { return b.binop(OpBxor, x.Type(), x, y) }
func (b *Builder) Shl(x, y *Value) *Value  { return b.binop(OpShl, x.Type(), x, y) }
func (b *Builder) Lshr(x, y *Value) *Value { return b.binop(OpLshr, x.Type(), x, y) }
func (b *Builder) Ashr(x, y *Value) *Value { return b.binop(OpAshr, x.Type(), x, y) }

func (b *Builder) Fadd(x, y *Value) *Value      { return b.binop(OpFadd, x.Type(), x, y) }
func (b *Builder) Fsub(x, y *Value) *Value      { return b.binop(OpFsub, x.Type(), x, y) }
func (b *Builder) Fmul(x, y *Value) *Value      { return b.binop(OpFmul, x.Type(), x, y) }
func (b *Builder) Fdiv(x, y *Value) *Value      { return b.binop(OpFdiv, x.Type(), x, y) }
func (b *Builder) Fmin(x, y *Value) *Value      { return b.binop(OpFmin, x.Type(), x, y) }
func (b *Builder) Fmax(x, y *Value) *Value      { return b.binop(OpFmax, x.Type(), x, y) }
func (b *Builder) Fcopysign(x, y *Value) *Value { return b.binop(OpFcopysign, x.Type(), x, y) }
func (b *Builder) Fneg(x *Value) *Value         { return b.unop(OpFneg, x.Type(), x) }
func (b *Builder) Fabs(x *Value) *Value         { return b.unop(OpFabs, x.Type(), x) }

func (b *Builder) Clz(x *Value) *Value     { return b.unop(OpClz, x.Type(), x) }
func (b *Builder) Ctz(x *Value) *Value     { return b.unop(OpCtz, x.Type(), x) }
func (b *Builder) Popcnt(x *Value) *Value  { return b.unop(OpPopcnt, x.Type(), x) }

// Sqrt is emitted as a bare unop. Ceil/Floor/Trunc/Nearest have no
// builder method here: they lower to runtime helper calls through
// CallIntrinsic, per the WebAssembly NaN/signed-zero rules.
func (b *Builder) Sqrt(x *Value) *Value { return b.unop(OpSqrt, x.Type(), x) }

// Icmp compares two integers, producing an i1.
func (b *Builder) Icmp(pred IntCmp, x, y *Value) *Value {
	return b.define(TypeI1, &Instruction{Opcode: OpIcmp, Type: TypeI1, Args: []*Value{x, y}, IntPredicate: pred})
}

// Fcmp compares two floats, producing an i1.
func (b *Builder) Fcmp(pred FloatCmp, x, y *Value) *Value {
	return b.define(TypeI1, &Instruction{Opcode: OpFcmp, Type: TypeI1, Args: []*Value{x, y}, FloatPredicate: pred})
}

// Iextend zero- or sign-extends x to the wider integer type to.
func (b *Builder) Iextend(x *Value, to Type, signed bool) *Value {
	v := int64(0)
	if signed {
		v = 1
	}
	return b.define(to, &Instruction{Opcode: OpIextend, Type: to, Args: []*Value{x}, ConstI: v})
}

// Itrunc wraps x down to a narrower integer type.
func (b *Builder) Itrunc(x *Value, to Type) *Value {
	return b.define(to, &Instruction{Opcode: OpItrunc, Type: to, Args: []*Value{x}})
}

// FpToInt converts a float to an integer, trapping on the caller's
// behalf is NOT performed here; the translator emits the range check
// around this instruction (see compiler/codegen's trap helper).
func (b *Builder) FpToInt(x *Value, to Type, signed bool) *Value {
	v := int64(0)
	if signed {
		v = 1
	}
	return b.define(to, &Instruction{Opcode: OpFpToInt, Type: to, Args: []*Value{x}, ConstI: v})
}

// FpToIntSat performs a saturating float-to-integer conversion: NaN maps
// to 0, out-of-range values clamp to the destination bounds.
func (b *Builder) FpToIntSat(x *Value, to Type, signed bool) *Value {
	v := int64(0)
	if signed {
		v = 1
	}
	return b.define(to, &Instruction{Opcode: OpFpToIntSat, Type: to, Args: []*Value{x}, ConstI: v})
}

func (b *Builder) IntToFp(x *Value, to Type, signed bool) *Value {
	v := int64(0)
	if signed {
		v = 1
	}
	return b.define(to, &Instruction{Opcode: OpIntToFp, Type: to, Args: []*Value{x}, ConstI: v})
}

func (b *Builder) Fpromote(x *Value) *Value { return b.unop(OpFpromote, TypeF64, x) }
func (b *Builder) Fdemote(x *Value) *Value  { return b.unop(OpFdemote, TypeF32, x) }

// Bitcast reinterprets x's bits as the target type without conversion.
func (b *Builder) Bitcast(x *Value, to Type) *Value {
	return b.define(to, &Instruction{Opcode: OpBitcast, Type: to, Args: []*Value{x}})
}

// Vsplat broadcasts a scalar into every lane of a v128.
func (b *Builder) Vsplat(x *Value) *Value {
	return b.define(TypeV128, &Instruction{Opcode: OpVsplat, Type: TypeV128, Args: []*Value{x}})
}

// Vbinop applies a named lane-wise binary op (e.g. "i32x4.add") to two
// v128 operands. The lane shape is carried in Intrinsic because the
// opcode space here intentionally stays flat.
func (b *Builder) Vbinop(name string, x, y *Value) *Value {
	return b.define(TypeV128, &Instruction{Opcode: OpVbinop, Type: TypeV128, Args: []*Value{x, y}, Intrinsic: name})
}

func (b *Builder) Vunop(name string, x *Value) *Value {
	return b.define(TypeV128, &Instruction{Opcode: OpVunop, Type: TypeV128, Args: []*Value{x}, Intrinsic: name})
}

func (b *Builder) Vbitselect(a, c, mask *Value) *Value {
	return b.define(TypeV128, &Instruction{Opcode: OpVbitselect, Type: TypeV128, Args: []*Value{a, c, mask}})
}

// LocalAlloca reserves one addressable storage cell for a WebAssembly
// local. The returned handle is opaque: LocalLoad/LocalStore address it
// by identity, not by a computed address, since this IR has no
// independent notion of a stack slot's address distinct from its
// declared type.
func (b *Builder) LocalAlloca(typ Type) *Value {
	return b.define(typ, &Instruction{Opcode: OpLocalAlloca, Type: typ})
}

func (b *Builder) LocalLoad(slot *Value) *Value {
	return b.define(slot.Type(), &Instruction{Opcode: OpLocalLoad, Type: slot.Type(), Args: []*Value{slot}})
}

func (b *Builder) LocalStore(slot, val *Value) {
	b.emit(&Instruction{Opcode: OpLocalStore, Args: []*Value{slot, val}})
}

// Load/Store address memory through a raw 64-bit effective address; the
// translator is responsible for the zero-extend-then-add-offset
// computation described by the trap discipline.
func (b *Builder) Load(addr *Value, typ Type) *Value {
	return b.define(typ, &Instruction{Opcode: OpLoad, Type: typ, Args: []*Value{addr}})
}

func (b *Builder) Store(addr, val *Value) {
	b.emit(&Instruction{Opcode: OpStore, Args: []*Value{addr, val}})
}

func (b *Builder) AtomicLoad(addr *Value, typ Type) *Value {
	return b.define(typ, &Instruction{Opcode: OpAtomicLoad, Type: typ, Args: []*Value{addr}})
}

func (b *Builder) AtomicStore(addr, val *Value) {
	b.emit(&Instruction{Opcode: OpAtomicStore, Args: []*Value{addr, val}})
}

// AtomicRmw performs a sequentially-consistent read-modify-write; op
// names the arithmetic/bitwise operation ("add", "sub", "and", "or",
// "xor", "xchg").
func (b *Builder) AtomicRmw(op string, addr, val *Value) *Value {
	return b.define(val.Type(), &Instruction{Opcode: OpAtomicRmw, Type: val.Type(), Args: []*Value{addr, val}, Intrinsic: op})
}

func (b *Builder) AtomicCmpxchg(addr, expected, replacement *Value) *Value {
	return b.define(expected.Type(), &Instruction{Opcode: OpAtomicCmpxchg, Type: expected.Type(), Args: []*Value{addr, expected, replacement}})
}

func (b *Builder) GlobalLoad(offset int64, typ Type) *Value {
	return b.define(typ, &Instruction{Opcode: OpGlobalLoad, Type: typ, ConstI: offset})
}

func (b *Builder) GlobalStore(offset int64, val *Value) {
	b.emit(&Instruction{Opcode: OpGlobalStore, Args: []*Value{val}, ConstI: offset})
}

// Select emits a three-operand select (cond ? x : y).
func (b *Builder) Select(cond, x, y *Value) *Value {
	return b.define(x.Type(), &Instruction{Opcode: OpSelect, Type: x.Type(), Args: []*Value{cond, x, y}})
}

// Call emits a direct call and returns its results (0, 1, or many
// values; a multi-result call's Result field is unused and callers
// use the returned slice).
func (b *Builder) Call(target *Function, args []*Value, results []Type) []*Value {
	i := &Instruction{Opcode: OpCall, Args: args, Intrinsic: target.Name}
	return b.defineMulti(results, i)
}

// CallIndirect emits an indirect call through a raw function pointer
// value under the module calling convention.
func (b *Builder) CallIndirect(fnPtr *Value, args []*Value, results []Type) []*Value {
	i := &Instruction{Opcode: OpCallIndirect, Args: append([]*Value{fnPtr}, args...)}
	return b.defineMulti(results, i)
}

// Invoke is Call's try-region counterpart on the landing-pad model: it
// carries an explicit unwind destination.
func (b *Builder) Invoke(target *Function, args []*Value, results []Type, unwind *BasicBlock) []*Value {
	i := &Instruction{Opcode: OpInvoke, Args: args, Intrinsic: target.Name, Targets: []*BasicBlock{unwind}}
	return b.defineMulti(results, i)
}

// CallIntrinsic calls a named runtime intrinsic (see the list in
// compiler/codegen/intrinsics.go).
func (b *Builder) CallIntrinsic(name string, args []*Value, results []Type) []*Value {
	i := &Instruction{Opcode: OpIntrinsicCall, Args: args, Intrinsic: name}
	return b.defineMulti(results, i)
}

func (b *Builder) defineMulti(results []Type, i *Instruction) []*Value {
	switch len(results) {
	case 0:
		b.emit(i)
		return nil
	case 1:
		return []*Value{b.define(results[0], i)}
	default:
		// Represent the call once, then materialize one projection
		// value per result; the instruction's own Type and Result stay
		// unset.
		b.emit(i)
		vs := make([]*Value, len(results))
		for idx, t := range results {
			vs[idx] = b.fn.newValue(t, i)
		}
		return vs
	}
}

// LocalEscape registers slots so a SEH filter function can recover them
// from the parent frame via local-recover.
func (b *Builder) LocalEscape(slots []*Value) {
	b.emit(&Instruction{Opcode: OpLocalEscape, Args: slots})
}

// Jump emits an unconditional branch to target, feeding its phis.
func (b *Builder) Jump(target *BasicBlock, args []*Value) {
	for idx, a := range args {
		target.AddIncoming(idx, b.bb, a)
	}
	b.emit(&Instruction{Opcode: OpJump, Targets: []*BasicBlock{target}})
}

// Branch emits a conditional branch, feeding both targets' phis with
// the same argument tuple (the caller passes distinct tuples for
// br_if-style divergent feeding by calling AddIncoming directly instead).
func (b *Builder) Branch(cond *Value, thenBB, elseBB *BasicBlock, args []*Value) {
	for idx, a := range args {
		thenBB.AddIncoming(idx, b.bb, a)
		elseBB.AddIncoming(idx, b.bb, a)
	}
	b.emit(&Instruction{Opcode: OpBranch, Args: []*Value{cond}, Targets: []*BasicBlock{thenBB, elseBB}})
}

// Switch emits an integer switch: index selects cases[index] if in
// range, otherwise def. The caller wires phi incoming edges itself
// (br_table's targets may repeat, so a single helper can't both feed
// and de-duplicate predecessor edges correctly).
func (b *Builder) Switch(index *Value, def *BasicBlock, cases []*BasicBlock) {
	b.emit(&Instruction{Opcode: OpSwitch, Args: []*Value{index}, Default: def, Targets: cases})
}

// Return emits the function's return terminator.
func (b *Builder) Return(results []*Value) {
	b.emit(&Instruction{Opcode: OpReturn, Args: results})
}

// TrapUnreachable emits the unreachable terminator. Callers arrange for
// a preceding runtime intrinsic call (see the trap-fabrication helper in
// compiler/codegen).
func (b *Builder) TrapUnreachable() {
	b.emit(&Instruction{Opcode: OpUnreachable})
}

// CatchSwitch emits the funclet model's catch-switch terminator: "none"
// parent, one handler per catchpad clause as passed in handlers, and
// no default unwind target (matching the source's "unset default").
func (b *Builder) CatchSwitch(handlers []*BasicBlock) {
	b.emit(&Instruction{Opcode: OpCatchSwitch, Targets: handlers})
}

// CatchRet returns from a catchpad body into target, feeding its phis.
func (b *Builder) CatchRet(target *BasicBlock, args []*Value) {
	for idx, a := range args {
		target.AddIncoming(idx, b.bb, a)
	}
	b.emit(&Instruction{Opcode: OpCatchRet, Targets: []*BasicBlock{target}})
}

// LandingPad marks bb as a landing pad accepting the given clause type
// (the platform's user-exception type info symbol name) and returns the
// caught value, which the Itanium path passes to __cxa_begin_catch.
func (b *Builder) LandingPad(clauseTypeInfo string, typ Type) *Value {
	return b.define(typ, &Instruction{Opcode: OpLandingPad, Type: typ, Intrinsic: clauseTypeInfo})
}

// Resume re-raises the in-flight exception after no catch on this try
// matched, per the Itanium model's "end of catch without a match" path.
func (b *Builder) Resume(exn *Value) {
	b.emit(&Instruction{Opcode: OpResume, Args: []*Value{exn}})
}
