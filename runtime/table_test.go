package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableCheckSignatureMismatch(t *testing.T) {
	tbl := NewTable(1, 1)
	tbl.Set(0, FuncRef{TypeToken: 1, Entry: func() {}})

	defer func() {
		trap, ok := recover().(*TrapError)
		assert.True(t, ok)
		assert.Equal(t, TrapIndirectCallTypeMismatch, trap.Code)
	}()
	tbl.CheckSignature(0, 2)
}

func TestTableCheckSignatureUndefinedElement(t *testing.T) {
	tbl := NewTable(1, 1)

	defer func() {
		trap, ok := recover().(*TrapError)
		assert.True(t, ok)
		assert.Equal(t, TrapUndefinedElement, trap.Code)
	}()
	tbl.CheckSignature(5, 2)
}

func TestTableCheckSignatureMatch(t *testing.T) {
	tbl := NewTable(1, 1)
	entry := func() {}
	tbl.Set(0, FuncRef{TypeToken: 7, Entry: entry})

	got := tbl.CheckSignature(0, 7)
	assert.NotNil(t, got)
}
