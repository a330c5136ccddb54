package runtime

// Exception is the live representation of the wire layout §3 defines:
// a fixed header (type-instance id, user-origin flag) followed by a
// zero-terminated argument vector, reconstructed here as a Go value
// instead of a raw byte buffer because every rt.seh.*/rt.itanium.*
// intrinsic the two ExceptionLowering implementations call operates on
// whole exceptions, never on the wire bytes directly.
type Exception struct {
	TypeInstanceID uint64
	IsUserOrigin   bool
	Arguments      []uint64
}

// Raise throws an exception through Go's own panic/recover, which this
// runtime uses as its unwind mechanism: Raise panics with
// *Exception, and every invoke-style call site the translator emits
// recovers it at the unwind block, matching the funclet/landing-pad
// model's own "control transfers to the nearest handler" semantics
// without reimplementing stack unwinding by hand.
func Raise(typeInstanceID uint64, args []uint64, isUser bool) {
	panic(&Exception{TypeInstanceID: typeInstanceID, IsUserOrigin: isUser, Arguments: args})
}

// Rethrow re-raises a previously-caught exception unchanged, the
// runtime half of the `rethrow` operator (§4.4 "throw, rethrow").
func Rethrow(exn *Exception) {
	panic(exn)
}

// Recover inspects a recovered panic value, returning the *Exception it
// carries (nil, false if the panic was not a WASM exception at all, in
// which case the caller should re-panic it unchanged).
func Recover(x interface{}) (*Exception, bool) {
	exn, ok := x.(*Exception)
	return exn, ok
}

// Matches reports whether a caught exception satisfies a `catch`
// clause's expected type instance, the rt.itanium.matches /
// rt.seh.catch_value discriminator both exception models call at
// their respective dispatch points.
func (e *Exception) Matches(typeInstanceID uint64) bool {
	return e.TypeInstanceID == typeInstanceID
}
