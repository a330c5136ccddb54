package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpFeedsPhiIncoming(t *testing.T) {
	fn := NewFunction("f", Signature{Results: []Type{TypeI32}}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)

	end := fn.AllocateBasicBlock()
	p := end.AddParam(fn, TypeI32)
	fn.Append(end)

	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)
	c := b.Iconst32(42)
	b.Jump(end, []*Value{c})

	require.True(t, end.HasIncoming(0))
	assert.Equal(t, TypeI32, p.Type())
}

func TestBranchFeedsBothTargets(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)

	thenBB := fn.AllocateBasicBlock()
	thenBB.AddParam(fn, TypeI32)
	fn.Append(thenBB)

	elseBB := fn.AllocateBasicBlock()
	elseBB.AddParam(fn, TypeI32)
	fn.Append(elseBB)

	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)
	cond := b.Iconst32(1)
	arg := b.Iconst32(7)
	b.Branch(cond, thenBB, elseBB, []*Value{arg})

	assert.True(t, thenBB.HasIncoming(0))
	assert.True(t, elseBB.HasIncoming(0))
}

func TestPhiWithNoIncomingReportsEmpty(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	bb := fn.AllocateBasicBlock()
	bb.AddParam(fn, TypeI32)
	assert.False(t, bb.HasIncoming(0))
}

func TestZeroValuePerType(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)
	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)

	cases := []Type{TypeI32, TypeI64, TypeF32, TypeF64, TypeV128}
	for _, typ := range cases {
		v := b.ZeroValue(typ)
		assert.Equal(t, typ, v.Type())
	}
}

func TestZeroValuePanicsOnUnknownType(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)
	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)

	assert.Panics(t, func() { b.ZeroValue(TypeI1) })
}

func TestSwitchRecordsTargetsAndDefault(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)

	def := fn.AllocateBasicBlock()
	case0 := fn.AllocateBasicBlock()
	case1 := fn.AllocateBasicBlock()
	fn.Append(def)
	fn.Append(case0)
	fn.Append(case1)

	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)
	idx := b.Iconst32(0)
	b.Switch(idx, def, []*BasicBlock{case0, case1})

	term := entry.Terminator()
	require.NotNil(t, term)
	assert.Equal(t, OpSwitch, term.Opcode)
	assert.Equal(t, def, term.Default)
	assert.Equal(t, []*BasicBlock{case0, case1}, term.Targets)
}

func TestCallIntrinsicMultiResult(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)
	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)

	vs := b.CallIntrinsic("rt.pair", nil, []Type{TypeI32, TypeI64})
	require.Len(t, vs, 2)
	assert.Equal(t, TypeI32, vs[0].Type())
	assert.Equal(t, TypeI64, vs[1].Type())
}

func TestCallIntrinsicNoResult(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)
	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)

	vs := b.CallIntrinsic("rt.trap", []*Value{b.Iconst32(0)}, nil)
	assert.Nil(t, vs)
	require.Len(t, entry.Instructions, 2)
	assert.Equal(t, OpIntrinsicCall, entry.Instructions[1].Opcode)
}

func TestTerminatorNilUntilClosed(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	fn.Append(entry)
	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)
	b.Iconst32(1)

	assert.Nil(t, entry.Terminator())
	b.Return(nil)
	require.NotNil(t, entry.Terminator())
	assert.Equal(t, OpReturn, entry.Terminator().Opcode)
}

func TestFprintProducesReadableOutput(t *testing.T) {
	fn := NewFunction("add", Signature{Params: []Type{TypeI64, TypeI32, TypeI32}, Results: []Type{TypeI32}}, nil, CallingConventionModule)
	entry := fn.AllocateBasicBlock()
	entry.AddParam(fn, TypeI64)
	p0 := entry.AddParam(fn, TypeI32)
	p1 := entry.AddParam(fn, TypeI32)
	fn.Append(entry)

	b := NewBuilder(fn)
	b.SetInsertionPoint(entry)
	sum := b.Iadd(p0, p1)
	b.Return([]*Value{sum})

	m := NewModule("test", PersonalitySEH)
	m.DeclareFunction(fn)
	m.FinalizeDebugInfo()

	var out bytes.Buffer
	require.NoError(t, Fprint(&out, m))
	s := out.String()
	assert.Contains(t, s, "module test personality __C_specific_handler")
	assert.Contains(t, s, "func add(i64, i32, i32) (i32):")
	assert.Contains(t, s, "iadd")
	assert.Contains(t, s, "return")
}

func TestAddIncomingTracksDistinctPredecessorsOnce(t *testing.T) {
	fn := NewFunction("f", Signature{}, nil, CallingConventionModule)
	pred1 := fn.AllocateBasicBlock()
	pred2 := fn.AllocateBasicBlock()
	target := fn.AllocateBasicBlock()
	target.AddParam(fn, TypeI32)

	target.AddIncoming(0, pred1, &Value{typ: TypeI32})
	target.AddIncoming(0, pred1, &Value{typ: TypeI32})
	target.AddIncoming(0, pred2, &Value{typ: TypeI32})

	assert.Len(t, target.preds, 2)
	assert.Len(t, target.incoming[0], 3)
}
