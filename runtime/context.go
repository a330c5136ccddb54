package runtime

import "github.com/wasmjit-go/wazm/wasm"

// Context is the per-invocation structure passed as the first argument
// to every emitted WebAssembly function, the concrete realization of
// §3's "compartment pointer whose wavmIntrinsics export exposes runtime
// trap/grow/atomic routines" and of the GLOSSARY's "Context pointer"
// entry. The module calling convention (codegen.irSignature) prepends a
// parameter of this pointer's width to every function signature;
// contextArg threads the same value unchanged into every outgoing call.
type Context struct {
	Instance *Instance
}

// Instance is a module instance: the resolved runtime state the module
// emitter's inputs name in §3 ("Module instance (input)").
type Instance struct {
	Memory  *Memory
	Table   *Table
	Globals []*Global

	// ExceptionTypes maps an exception-type index to the parameter
	// types used to size argument buffers at throw sites and catch
	// clauses.
	ExceptionTypes []wasm.FunctionSig

	// Functions holds this module's own callable entries, indexed by
	// global function index (imports first), the same space
	// compiler/codegen.ModuleEmitter.funcs uses.
	Functions []interface{}
}

// MemorySize is the rt.memory.size intrinsic.
func (c *Context) MemorySize() uint32 { return c.Instance.Memory.Size() }

// MemoryGrow is the rt.memory.grow intrinsic. It returns the memory's
// previous size in pages, or -1 if growing would exceed its declared
// maximum, per the WebAssembly memory.grow contract.
func (c *Context) MemoryGrow(delta uint32) int32 {
	prev, err := c.Instance.Memory.Grow(delta)
	if err != nil {
		return -1
	}
	return int32(prev)
}

// GlobalLoad/GlobalStore back the translator's global-access lowering
// (§4.3 "Globals, memory ops, constants"); offset is the flat byte
// offset codegen.translator.globalOffset computes, here divided back
// down to a slice index since Instance.Globals is a Go slice rather
// than raw bytes.
func (c *Context) GlobalLoad(offset int64) uint64 {
	return c.Instance.Globals[offset/8].Get()
}

func (c *Context) GlobalStore(offset int64, v uint64) {
	c.Instance.Globals[offset/8].Set(v)
}

// TableCheckSignature is the rt.table.check_signature intrinsic.
func (c *Context) TableCheckSignature(elem uint32, typeToken uint64) interface{} {
	return c.Instance.Table.CheckSignature(elem, typeToken)
}
