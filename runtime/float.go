package runtime

import "math"

// The rounding and min/max helpers below back the rt.f32.*/rt.f64.*
// intrinsics the translator calls instead of a backend round op, because
// (per §4.3 "Numeric lowering") WebAssembly's NaN and signed-zero rules
// for ceil/floor/trunc/nearest/min/max don't match a generic backend
// intrinsic exactly. Grounded directly on the teacher's exec.Fmin/Fmax;
// the rounding family has no teacher analog (the interpreter dispatches
// straight to math.Ceil etc. per opcode) so it is added here in the same
// style.

func F32Min(a, b float32) float32 { return float32(Fmin(float64(a), float64(b))) }
func F32Max(a, b float32) float32 { return float32(Fmax(float64(a), float64(b))) }

func Fmin(z1, z2 float64) float64 {
	if math.IsNaN(z1) {
		return z1
	}
	if math.IsNaN(z2) {
		return z2
	}
	if z1 == 0 && z2 == 0 {
		// WebAssembly min(-0, +0) == -0; math.Min already agrees, kept
		// explicit because it's the detail a generic backend min misses.
		if math.Signbit(z1) {
			return z1
		}
		return z2
	}
	return math.Min(z1, z2)
}

func Fmax(z1, z2 float64) float64 {
	if math.IsNaN(z1) {
		return z1
	}
	if math.IsNaN(z2) {
		return z2
	}
	if z1 == 0 && z2 == 0 {
		if math.Signbit(z1) {
			return z2
		}
		return z1
	}
	return math.Max(z1, z2)
}

func F32Ceil(v float32) float32    { return float32(math.Ceil(float64(v))) }
func F32Floor(v float32) float32   { return float32(math.Floor(float64(v))) }
func F32Trunc(v float32) float32   { return float32(math.Trunc(float64(v))) }
func F32Nearest(v float32) float32 { return float32(math.RoundToEven(float64(v))) }

func F64Ceil(v float64) float64    { return math.Ceil(v) }
func F64Floor(v float64) float64   { return math.Floor(v) }
func F64Trunc(v float64) float64   { return math.Trunc(v) }
func F64Nearest(v float64) float64 { return math.RoundToEven(v) }

// FpToIntRangeCheck backs rt.fp_to_int.range_check, the trap-site guard
// ahead of every non-saturating truncating conversion. to64 selects the
// 64- vs 32-bit destination width; signed selects the signed vs unsigned
// range. The bounds match §4.3's "widest float values that do not round
// into range" rule, including the asymmetric unsigned upper bound
// (>= 2^N, not > 2^N-1, since the float representation of 2^N-1 already
// rounds up to 2^N for the 32-bit widths).
func FpToIntRangeCheck(z float64, to64, signed bool) bool {
	if math.IsNaN(z) {
		return false
	}
	switch {
	case to64 && signed:
		return z >= math.MinInt64 && z < math.MaxInt64
	case to64 && !signed:
		return z > -1 && z < math.MaxUint64
	case !to64 && signed:
		return z > math.MinInt32-1 && z < math.MaxInt32+1
	default: // !to64 && !signed
		return z > -1 && z < math.MaxUint32+1
	}
}

func I32TruncSatS(z float64) int32 {
	switch {
	case math.IsNaN(z):
		return 0
	case z <= math.MinInt32:
		return math.MinInt32
	case z >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(z)
	}
}

func I32TruncSatU(z float64) uint32 {
	switch {
	case math.IsNaN(z) || z < 0:
		return 0
	case z >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(z)
	}
}

func I64TruncSatS(z float64) int64 {
	switch {
	case math.IsNaN(z):
		return 0
	case z <= math.MinInt64:
		return math.MinInt64
	case z >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(z)
	}
}

func I64TruncSatU(z float64) uint64 {
	switch {
	case math.IsNaN(z) || z < 0:
		return 0
	case z >= math.MaxUint64:
		return math.MaxUint64
	default:
		return uint64(z)
	}
}
