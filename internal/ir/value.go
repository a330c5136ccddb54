package ir

import "strconv"

// Value is a handle to an SSA value: either the result of an Instruction
// or a basic block parameter (a phi).
type Value struct {
	id   int
	typ  Type
	name string

	// def is the instruction that produced this value, nil for block
	// parameters.
	def *Instruction
}

func (v *Value) Type() Type {
	if v == nil {
		return TypeI32
	}
	return v.typ
}

// Def returns the instruction that produced v, or nil for a block
// parameter (a phi has no defining instruction of its own).
func (v *Value) Def() *Instruction { return v.def }

func (v *Value) String() string {
	if v.name != "" {
		return v.name
	}
	return "%" + strconv.Itoa(v.id)
}
