package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrapPanicsWithCode(t *testing.T) {
	defer func() {
		r := recover()
		trap, ok := r.(*TrapError)
		assert.True(t, ok)
		assert.Equal(t, TrapIntegerDivideByZero, trap.Code)
	}()
	Trap(TrapIntegerDivideByZero)
}

func TestTrapCodeString(t *testing.T) {
	assert.Equal(t, "integer divide by zero", TrapIntegerDivideByZero.String())
	assert.Equal(t, "uncaught exception", TrapUncaughtException.String())
}
