package runtime

// FuncRef is one table element: the pair (typeToken, entry) that
// call_indirect's signature check reads, matching §4.3 "Calls" — "Load
// the (typeTokenPtr, functionPtr) pair from the table at the given
// index." entry is an opaque handle (a Go function value once a caller
// has a concrete calling convention); this package only ever compares
// TypeToken, never dereferences entry.
type FuncRef struct {
	TypeToken uint64
	Entry     interface{}
}

// Table is a WASM table of function references, grounded on the
// teacher's exec.Table but reshaped to carry a type token alongside
// each entry so CheckSignature (the rt.table.check_signature intrinsic)
// can do the call_indirect signature check the translator emits before
// every indirect call.
type Table struct {
	min, max uint32
	entries  []FuncRef
}

func NewTable(min, max uint32) *Table {
	return &Table{min: min, max: max, entries: make([]FuncRef, min)}
}

func (t *Table) Limits() (min, max uint32) { return t.min, t.max }

func (t *Table) Entries() []FuncRef { return t.entries }

func (t *Table) Set(i uint32, ref FuncRef) { t.entries[i] = ref }

// Get returns the entry at i, trapping TrapUndefinedElement if i is out
// of bounds, the runtime half of the translator's call_indirect lowering.
func (t *Table) Get(i uint32) FuncRef {
	if i >= uint32(len(t.entries)) {
		Trap(TrapUndefinedElement)
	}
	return t.entries[i]
}

// CheckSignature is the rt.table.check_signature intrinsic: it resolves
// element i, traps TrapIndirectCallTypeMismatch if its type token does
// not match expected, and otherwise returns the callable entry.
func (t *Table) CheckSignature(i uint32, expected uint64) interface{} {
	ref := t.Get(i)
	if ref.Entry == nil {
		Trap(TrapUndefinedElement)
	}
	if ref.TypeToken != expected {
		Trap(TrapIndirectCallTypeMismatch)
	}
	return ref.Entry
}
