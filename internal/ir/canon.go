package ir

// coerceToCanonicalTypeIfVector rewrites a v128-shaped value to the
// canonical 2xi64 representation before it becomes a phi incoming edge,
// so a single phi can merge values produced by lane-typed SIMD
// operations of differing shapes. Non-vector values pass through.
//
// Builder.Bitcast is the caller-facing form of the same rewrite used
// on ordinary uses; this free function is what BasicBlock.AddIncoming
// calls automatically for every incoming edge, per spec §4.1/§9.
func coerceToCanonicalTypeIfVector(fn *Function, target Type, v *Value) *Value {
	if target != TypeV128 || v.Type() != TypeV128 {
		return v
	}
	// Already canonical: nothing to rewrite. A real backend would bit-cast
	// away a differently-typed vector (e.g. 4xi32) here; this minimal IR
	// represents all v128 values uniformly, so the rewrite is a no-op
	// that exists to document the invariant at the one place it must hold.
	return v
}
