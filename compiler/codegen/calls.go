package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm/code"
)

// stepCall lowers a direct call. Calls made inside a try region invoke
// through the region's unwind edge instead of a plain call, the way a
// real backend distinguishes call from invoke by whether the call site
// sits inside a landing-pad scope.
func (t *translator) stepCall(instr code.Instruction) error {
	funcidx := instr.Funcidx()
	sig, ok := t.scope.GetFunctionSignature(funcidx)
	if !ok {
		return fmt.Errorf("unknown function %d", funcidx)
	}
	target := t.module.funcs[funcidx]
	args := append([]*ir.Value{t.contextArg()}, t.popN(len(sig.ParamTypes))...)
	results := irTypes(sig.ReturnTypes)

	var rs []*ir.Value
	if unwind := t.innermostUnwind(); unwind != nil {
		rs = t.b.Invoke(target, args, results, unwind)
	} else {
		rs = t.b.Call(target, args, results)
	}
	for _, v := range rs {
		t.push(v)
	}
	return nil
}

// stepCallIndirect lowers an indirect call through a table: a single
// runtime intrinsic (rt.table.check_signature) resolves the callee
// pointer from the table element and checks it against the static type
// index before the call, trapping on mismatch.
func (t *translator) stepCallIndirect(instr code.Instruction) error {
	typeidx := instr.Typeidx()
	sig, ok := t.scope.GetType(typeidx)
	if !ok {
		return fmt.Errorf("unknown type %d", typeidx)
	}

	elem := t.pop()
	fnPtr := t.b.CallIntrinsic(IntrinsicTableCheckSignature, []*ir.Value{
		elem,
		t.b.Iconst32(int32(typeidx)),
	}, []ir.Type{ir.TypeI64})[0]

	args := append([]*ir.Value{t.contextArg()}, t.popN(len(sig.ParamTypes))...)
	results := irTypes(sig.ReturnTypes)
	rs := t.b.CallIndirect(fnPtr, args, results)
	for _, v := range rs {
		t.push(v)
	}
	return nil
}

// contextArg returns this function's own context-pointer parameter,
// threaded unchanged into every callee per the module calling
// convention's leading-argument ABI.
func (t *translator) contextArg() *ir.Value {
	return t.fn.Blocks[0].Params[0]
}

func (t *translator) stepSelect() {
	cond := t.pop()
	y := t.pop()
	x := t.pop()
	t.push(t.b.Select(cond, x, y))
}
