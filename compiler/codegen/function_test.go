package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm"
	"github.com/wasmjit-go/wazm/wast"
)

func mustParseModule(t *testing.T, source string) *wasm.Module {
	syntax, err := wast.ParseModule(wast.NewScanner(strings.NewReader(source)))
	require.NoError(t, err)
	m, err := syntax.Decode()
	require.NoError(t, err)
	return m
}

func compile(t *testing.T, source string) *ir.Module {
	m := mustParseModule(t, source)
	out, err := NewModuleEmitter(m, PersonalitySEH).Compile()
	require.NoError(t, err)
	return out
}

func printed(t *testing.T, m *ir.Module) string {
	var buf bytes.Buffer
	require.NoError(t, ir.Fprint(&buf, m))
	return buf.String()
}

// returnBlock is the function-level end block: the translator appends it
// last, and its phis collect the results that its Return passes back.
func returnBlock(fn *ir.Function) *ir.BasicBlock {
	return fn.Blocks[len(fn.Blocks)-1]
}

func findOp(b *ir.BasicBlock, op ir.Opcode) *ir.Instruction {
	for _, i := range b.Instructions {
		if i.Opcode == op {
			return i
		}
	}
	return nil
}

func TestModuleEmitterDeclaresPersonality(t *testing.T) {
	out := compile(t, `(module (func (export "f") (result i32) i32.const 1))`)
	assert.Equal(t, "__C_specific_handler", out.Personality.Name)
	assert.True(t, out.DebugFinalized)
	require.Len(t, out.Functions, 1)
	for _, fn := range out.Functions {
		assert.Same(t, out.Personality, fn.Personality)
	}
}

func TestConstAddReturnsSingleValue(t *testing.T) {
	out := compile(t, `(module (func (export "f") (result i32)
		i32.const 7
		i32.const 5
		i32.add))`)

	fn := out.Functions[0]
	entry := fn.Blocks[0]
	require.NotEmpty(t, entry.Instructions)
	require.NotNil(t, findOp(entry, ir.OpIadd))
	term := returnBlock(fn).Terminator()
	require.NotNil(t, term)
	assert.Equal(t, ir.OpReturn, term.Opcode)
	require.Len(t, term.Args, 1)
	assert.Equal(t, ir.TypeI32, term.Args[0].Type())
}

func TestComparisonIsZeroExtendedOntoStack(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32 i32) (result i32)
		local.get 0
		local.get 1
		i32.eq))`)

	fn := out.Functions[0]
	term := returnBlock(fn).Terminator()
	require.NotNil(t, term)
	require.Len(t, term.Args, 1)
	assert.Equal(t, ir.TypeI32, term.Args[0].Type())
	ext := findOp(fn.Blocks[0], ir.OpIextend)
	require.NotNil(t, ext)
	assert.Equal(t, ir.TypeI32, ext.Result.Type(), "i32.eq's result must be i32 on the operand stack, not i1")

	var sawIextend bool
	for _, i := range fn.Blocks[0].Instructions {
		if i.Opcode == ir.OpIextend {
			sawIextend = true
		}
	}
	assert.True(t, sawIextend, "comparison result should be widened via an explicit extend")
}

func TestDivSGuardsDivideByZeroAndOverflow(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32 i32) (result i32)
		local.get 0
		local.get 1
		i32.div_s))`)

	s := printed(t, out)
	assert.Equal(t, 2, strings.Count(s, "call_intrinsic \"rt.trap\""),
		"div_s traps on both divide-by-zero and INT_MIN/-1 overflow")
}

func TestDivUGuardsOnlyDivideByZero(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32 i32) (result i32)
		local.get 0
		local.get 1
		i32.div_u))`)

	s := printed(t, out)
	assert.Equal(t, 1, strings.Count(s, "call_intrinsic \"rt.trap\""))
}

func TestRemSDoesNotTrapOnOverflowArm(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32 i32) (result i32)
		local.get 0
		local.get 1
		i32.rem_s))`)

	s := printed(t, out)
	// rem_s only traps on divide-by-zero; INT_MIN/-1 merges through a
	// phi that yields zero instead of trapping.
	assert.Equal(t, 1, strings.Count(s, "call_intrinsic \"rt.trap\""))
	assert.Contains(t, s, "srem")
}

func TestShiftCountIsMaskedToBitWidth(t *testing.T) {
	// WebAssembly shifts take the count modulo the bit width, so the
	// translator masks it with width-1 before emitting the backend shift.
	out := compile(t, `(module (func (export "f") (param i32 i32) (result i32)
		local.get 0
		local.get 1
		i32.shl))`)
	s := printed(t, out)
	assert.Contains(t, s, "shl")
	assert.Contains(t, s, "band")
}

func TestBlockBranchSkipsDeadCode(t *testing.T) {
	out := compile(t, `(module (func (export "f") (result i32)
		block (result i32)
			i32.const 1
			br 0
			i32.const 2
		end))`)

	fn := out.Functions[0]
	term := fn.Blocks[0].Terminator()
	require.NotNil(t, term)
	require.Equal(t, ir.OpJump, term.Opcode)
	require.Len(t, term.Targets, 1)
	assert.Equal(t, 1, term.Targets[0].IncomingCount(0), "only br 0 feeds the block's end phi")
	c := findOp(fn.Blocks[0], ir.OpIconst)
	require.NotNil(t, c)
	assert.Equal(t, int64(1), c.ConstI, "br 0 should feed the block's end phi with 1")
	for _, b := range fn.Blocks {
		for _, instr := range b.Instructions {
			if instr.Opcode == ir.OpIconst {
				assert.NotEqual(t, int64(2), instr.ConstI, "dead 'i32.const 2' must never be emitted")
			}
		}
	}

	for _, b := range fn.Blocks {
		for idx, instr := range b.Instructions {
			if instr.Opcode.IsTerminator() {
				assert.Equal(t, len(b.Instructions)-1, idx, "no instruction may follow a terminator in block %s", b)
			}
		}
	}
}

func TestIfElseMergesBothArms(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32) (result i32)
		local.get 0
		(if (result i32)
			(then i32.const 9)
			(else i32.const 5))))`)

	fn := out.Functions[0]
	require.Len(t, fn.Blocks, 5) // entry, then, else, end, return
	end := fn.Blocks[3]
	require.Len(t, end.Params, 1)
	assert.True(t, end.HasIncoming(0))
	assert.Equal(t, 2, end.IncomingCount(0), "both if and else arms must feed the end phi")
}

func TestLoopBackedgeFeedsHeaderNotEnd(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32) (result i32)
		local.get 0
		(loop (param i32) (result i32)
			i32.const 1
			i32.sub
			br 0)))`)

	fn := out.Functions[0]
	// entry -> header(param), ... -> header (backedge)
	var header *ir.BasicBlock
	for _, b := range fn.Blocks {
		if len(b.Params) == 1 && b != fn.Blocks[0] {
			header = b
			break
		}
	}
	require.NotNil(t, header)
	assert.True(t, header.HasIncoming(0))
	assert.GreaterOrEqual(t, header.IncomingCount(0), 2, "loop header phi needs the entry edge and the back-edge")
}

func TestSelectPicksFirstOperandOnTrue(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32 i32 i32) (result i32)
		local.get 0
		local.get 1
		local.get 2
		select))`)

	fn := out.Functions[0]
	var loads []*ir.Value
	for _, i := range fn.Blocks[0].Instructions {
		if i.Opcode == ir.OpLocalLoad {
			loads = append(loads, i.Result)
		}
	}
	require.Len(t, loads, 3)
	sel := findOp(fn.Blocks[0], ir.OpSelect)
	require.NotNil(t, sel)
	require.Len(t, sel.Args, 3)
	assert.Same(t, loads[2], sel.Args[0], "the condition is the last operand pushed")
	assert.Same(t, loads[0], sel.Args[1], "a true condition picks the first operand")
	assert.Same(t, loads[1], sel.Args[2])
}

func TestLocalTeeKeepsValueOnStack(t *testing.T) {
	out := compile(t, `(module (func (export "f") (param i32) (result i32 i32)
		local.get 0
		local.tee 0))`)

	fn := out.Functions[0]
	term := returnBlock(fn).Terminator()
	require.NotNil(t, term)
	require.Len(t, term.Args, 2)
}

func TestCallWiresCalleeAndContextArg(t *testing.T) {
	out := compile(t, `(module
		(func $callee (param i32) (result i32) local.get 0)
		(func (export "f") (param i32) (result i32)
			local.get 0
			call $callee))`)

	caller := out.Functions[1]
	call := findOp(caller.Blocks[0], ir.OpCall)
	require.NotNil(t, call)
	require.Len(t, call.Args, 2) // context pointer + the one wasm param
	assert.Same(t, caller.Blocks[0].Params[0], call.Args[0])
}

func TestCallToImportUsesHostCallingConvention(t *testing.T) {
	out := compile(t, `(module
		(import "wasi_snapshot_preview1" "fd_write" (func $fd_write (param i32) (result i32)))
		(func (export "f") (param i32) (result i32)
			local.get 0
			call $fd_write))`)

	imp := out.Functions[0]
	assert.Equal(t, "wasi_snapshot_preview1.fd_write", imp.Name)
	assert.Equal(t, ir.CallingConventionHost, imp.CC)
	assert.Empty(t, imp.Blocks, "an import has no translated body")

	caller := out.Functions[1]
	call := findOp(caller.Blocks[0], ir.OpCall)
	require.NotNil(t, call)
	assert.Equal(t, "wasi_snapshot_preview1.fd_write", call.Intrinsic)
}

func TestCallIndirectChecksSignatureBeforeCalling(t *testing.T) {
	out := compile(t, `(module
		(type $t (func (param i32) (result i32)))
		(table 1 funcref)
		(func (export "f") (param i32 i32) (result i32)
			local.get 0
			local.get 1
			call_indirect (type $t)))`)

	s := printed(t, out)
	assert.Contains(t, s, "rt.table.check_signature")
}

func TestI32StoreEmitsBackendStore(t *testing.T) {
	out := compile(t, `(module (memory 1)
		(func (export "f") (param i32 i32)
			local.get 0
			local.get 1
			i32.store))`)

	s := printed(t, out)
	assert.Contains(t, s, "store")
	var sawStore bool
	for _, b := range out.Functions[0].Blocks {
		if findOp(b, ir.OpStore) != nil {
			sawStore = true
		}
	}
	assert.True(t, sawStore, "i32.store must lower to a backend store, not only local stores")
}

func TestUnreachableTrapsImmediately(t *testing.T) {
	out := compile(t, `(module (func (export "f") unreachable))`)
	s := printed(t, out)
	assert.Contains(t, s, "rt.trap")
	assert.Contains(t, s, "unreachable")
}
