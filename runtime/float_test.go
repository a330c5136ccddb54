package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFminFmaxNaN(t *testing.T) {
	nan := math.NaN()
	assert.True(t, math.IsNaN(Fmin(nan, 1)))
	assert.True(t, math.IsNaN(Fmax(1, nan)))
}

func TestFminFmaxSignedZero(t *testing.T) {
	assert.True(t, math.Signbit(Fmin(0, math.Copysign(0, -1))))
	assert.False(t, math.Signbit(Fmax(0, math.Copysign(0, -1))))
}

func TestNearestRoundsToEven(t *testing.T) {
	assert.Equal(t, float32(2), F32Nearest(2.5))
	assert.Equal(t, float32(-2), F32Nearest(-2.5))
}

func TestTruncSatClampsInfAndNaN(t *testing.T) {
	assert.EqualValues(t, 0, I32TruncSatS(math.NaN()))
	assert.EqualValues(t, math.MinInt32, I32TruncSatS(math.Inf(-1)))
	assert.EqualValues(t, math.MaxInt32, I32TruncSatS(math.Inf(1)))
	assert.EqualValues(t, 0, I32TruncSatU(-5))
	assert.EqualValues(t, math.MaxUint32, I32TruncSatU(math.Inf(1)))
}

func TestFpToIntRangeCheck(t *testing.T) {
	assert.False(t, FpToIntRangeCheck(math.NaN(), false, true))
	assert.True(t, FpToIntRangeCheck(0, false, true))
	assert.False(t, FpToIntRangeCheck(2147483648.0, false, true))
	assert.True(t, FpToIntRangeCheck(4294967295.0, false, false))
	assert.False(t, FpToIntRangeCheck(-1, false, false))
}
