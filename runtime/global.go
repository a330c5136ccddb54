package runtime

import (
	"math"

	"github.com/wasmjit-go/wazm/wasm"
)

// Global is a mutable or immutable module-level storage cell. Values are
// stored untyped, as a raw 64-bit pattern, the same representation the
// teacher's exec.Global uses, since it is the natural shape for the
// translator's context.globalData + offset load/store addressing (§4.3
// "Globals, memory ops, constants").
type Global struct {
	Type      wasm.ValueType
	Immutable bool
	value     uint64
}

func NewGlobal(typ wasm.ValueType, immutable bool, bits uint64) *Global {
	return &Global{Type: typ, Immutable: immutable, value: bits}
}

func (g *Global) Get() uint64  { return g.value }
func (g *Global) Set(v uint64) { g.value = v }

func (g *Global) GetF32() float32 { return math.Float32frombits(uint32(g.value)) }
func (g *Global) GetF64() float64 { return math.Float64frombits(g.value) }

func (g *Global) SetF32(v float32) { g.value = uint64(math.Float32bits(v)) }
func (g *Global) SetF64(v float64) { g.value = math.Float64bits(v) }
