package codegen

// Intrinsic names a runtime helper the emitted IR calls by name rather
// than inlining, matching the source interpreter's split between
// decoded bytecode and the small set of helpers in exec/ that back
// memory growth, floating point rounding, and trap delivery.
const (
	IntrinsicTrap = "rt.trap"

	IntrinsicF32Ceil    = "rt.f32.ceil"
	IntrinsicF32Floor   = "rt.f32.floor"
	IntrinsicF32Trunc   = "rt.f32.trunc"
	IntrinsicF32Nearest = "rt.f32.nearest"
	IntrinsicF64Ceil    = "rt.f64.ceil"
	IntrinsicF64Floor   = "rt.f64.floor"
	IntrinsicF64Trunc   = "rt.f64.trunc"
	IntrinsicF64Nearest = "rt.f64.nearest"

	IntrinsicMemorySize = "rt.memory.size"
	IntrinsicMemoryGrow = "rt.memory.grow"

	IntrinsicTableCheckSignature = "rt.table.check_signature"
	IntrinsicTableFunc           = "rt.table.func"

	IntrinsicAtomicNotify = "rt.atomic.notify"
	IntrinsicAtomicWait   = "rt.atomic.wait"

	// IntrinsicFpToIntRangeCheck reports whether a float-to-int
	// conversion's source value is in the destination type's
	// representable range, ahead of the non-saturating trunc
	// operators' trap check.
	IntrinsicFpToIntRangeCheck = "rt.fp_to_int.range_check"

	// The backend IR has no sub-word integer types, so narrower-than-
	// natural loads/stores go through these byte-addressed helpers
	// instead of the Load/Store builder methods.
	IntrinsicMemLoad8S  = "rt.mem.load8_s"
	IntrinsicMemLoad8U  = "rt.mem.load8_u"
	IntrinsicMemLoad16S = "rt.mem.load16_s"
	IntrinsicMemLoad16U = "rt.mem.load16_u"
	IntrinsicMemLoad32S = "rt.mem.load32_s"
	IntrinsicMemLoad32U = "rt.mem.load32_u"
	IntrinsicMemStore8  = "rt.mem.store8"
	IntrinsicMemStore16 = "rt.mem.store16"
	IntrinsicMemStore32 = "rt.mem.store32"
)

// TrapCode identifies why a trap fired, passed as the first argument to
// the rt.trap intrinsic so a single runtime entry point can report a
// precise cause.
type TrapCode int32

const (
	TrapUnreachable TrapCode = iota
	TrapIntegerDivideByZero
	TrapIntegerOverflow
	TrapInvalidConversionToInteger
	TrapOutOfBoundsMemoryAccess
	TrapUnalignedAtomicAccess
	TrapIndirectCallTypeMismatch
	TrapUndefinedElement
	TrapUncaughtException
)
