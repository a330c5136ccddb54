package codegen

import (
	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm"
)

// irType maps a WebAssembly value type onto its backend IR counterpart.
// ValueTypeT, the decoder's polymorphic placeholder for unreachable code,
// has no backend representation and is never passed here.
func irType(t wasm.ValueType) ir.Type {
	switch t {
	case wasm.ValueTypeI32:
		return ir.TypeI32
	case wasm.ValueTypeI64:
		return ir.TypeI64
	case wasm.ValueTypeF32:
		return ir.TypeF32
	case wasm.ValueTypeF64:
		return ir.TypeF64
	case wasm.ValueTypeV128:
		return ir.TypeV128
	default:
		panic("codegen: no backend type for " + t.String())
	}
}

func irTypes(ts []wasm.ValueType) []ir.Type {
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		out[i] = irType(t)
	}
	return out
}

// irSignature lowers a WebAssembly function signature, prepending the
// module calling convention's leading context-pointer argument. The
// context pointer carries the running instance's memory base, table
// base, and global base, the way the source's interpreter.Machine
// carries them as receiver fields instead.
func irSignature(sig wasm.FunctionSig) ir.Signature {
	params := make([]ir.Type, 0, len(sig.ParamTypes)+1)
	params = append(params, ir.TypeI64) // context pointer
	params = append(params, irTypes(sig.ParamTypes)...)
	return ir.Signature{Params: params, Results: irTypes(sig.ReturnTypes)}
}
