// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import (
	"fmt"
	"io"

	"github.com/wasmjit-go/wazm/wasm/leb128"
)

// ValueType is one of the value types recognized by the WASM core spec plus
// the vector type added by the SIMD proposal.
type ValueType byte

const (
	ValueTypeI32  ValueType = 0x7f
	ValueTypeI64  ValueType = 0x7e
	ValueTypeF32  ValueType = 0x7d
	ValueTypeF64  ValueType = 0x7c
	ValueTypeV128 ValueType = 0x7b

	// ValueTypeT is a placeholder used by the decoder for polymorphic stack
	// slots inside unreachable code.
	ValueTypeT ValueType = 0x00
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeV128:
		return "v128"
	case ValueTypeT:
		return "<unknown>"
	default:
		return fmt.Sprintf("<invalid value type %#x>", byte(t))
	}
}

func (t *ValueType) UnmarshalWASM(r io.Reader) error {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	*t = ValueType(b[0])
	return nil
}

func (t ValueType) MarshalWASM(w io.Writer) error {
	_, err := w.Write([]byte{byte(t)})
	return err
}

// Marshaler is implemented by every WASM structure that can be serialized
// back into the binary format.
type Marshaler interface {
	MarshalWASM(w io.Writer) error
}

// External identifies the kind of entity referenced by an import or export
// entry.
type External uint8

const (
	ExternalFunction External = 0
	ExternalTable    External = 1
	ExternalMemory   External = 2
	ExternalGlobal   External = 3
	ExternalTag      External = 4
)

func (k *External) UnmarshalWASM(r io.Reader) error {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return err
	}
	if b[0] > byte(ExternalTag) {
		return InvalidExternalError(b[0])
	}
	*k = External(b[0])
	return nil
}

func (k External) MarshalWASM(w io.Writer) error {
	_, err := w.Write([]byte{byte(k)})
	return err
}

// FunctionSig is the signature of a function type: an ordered tuple of
// parameter types and an ordered tuple of result types.
type FunctionSig struct {
	Form        byte
	ParamTypes  []ValueType
	ReturnTypes []ValueType
}

// Equals reports whether two function signatures have elementwise-identical
// parameter and result tuples.
func (f FunctionSig) Equals(o FunctionSig) bool {
	if len(f.ParamTypes) != len(o.ParamTypes) || len(f.ReturnTypes) != len(o.ReturnTypes) {
		return false
	}
	for i, t := range f.ParamTypes {
		if o.ParamTypes[i] != t {
			return false
		}
	}
	for i, t := range f.ReturnTypes {
		if o.ReturnTypes[i] != t {
			return false
		}
	}
	return true
}

// Key returns a canonical, comparable encoding of the signature, used as the
// type-identity token for indirect-call signature checks.
func (f FunctionSig) Key() string {
	buf := make([]byte, 0, len(f.ParamTypes)+len(f.ReturnTypes)+1)
	for _, t := range f.ParamTypes {
		buf = append(buf, byte(t))
	}
	buf = append(buf, '>')
	for _, t := range f.ReturnTypes {
		buf = append(buf, byte(t))
	}
	return string(buf)
}

func (f *FunctionSig) UnmarshalWASM(r io.Reader) error {
	form, err := readByte(r)
	if err != nil {
		return err
	}
	f.Form = form

	paramCount, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}
	f.ParamTypes = make([]ValueType, 0, getInitialCap(paramCount))
	for i := uint32(0); i < paramCount; i++ {
		var t ValueType
		if err := t.UnmarshalWASM(r); err != nil {
			return err
		}
		f.ParamTypes = append(f.ParamTypes, t)
	}

	returnCount, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}
	f.ReturnTypes = make([]ValueType, 0, getInitialCap(returnCount))
	for i := uint32(0); i < returnCount; i++ {
		var t ValueType
		if err := t.UnmarshalWASM(r); err != nil {
			return err
		}
		f.ReturnTypes = append(f.ReturnTypes, t)
	}

	return nil
}

func (f FunctionSig) MarshalWASM(w io.Writer) error {
	form := f.Form
	if form == 0 {
		form = 0x60
	}
	if _, err := w.Write([]byte{form}); err != nil {
		return err
	}
	if _, err := leb128.WriteVarUint32(w, uint32(len(f.ParamTypes))); err != nil {
		return err
	}
	for _, t := range f.ParamTypes {
		if err := t.MarshalWASM(w); err != nil {
			return err
		}
	}
	if _, err := leb128.WriteVarUint32(w, uint32(len(f.ReturnTypes))); err != nil {
		return err
	}
	for _, t := range f.ReturnTypes {
		if err := t.MarshalWASM(w); err != nil {
			return err
		}
	}
	return nil
}

// GlobalVar describes the type and mutability of a global variable.
type GlobalVar struct {
	Type    ValueType
	Mutable bool
}

func (g *GlobalVar) UnmarshalWASM(r io.Reader) error {
	if err := g.Type.UnmarshalWASM(r); err != nil {
		return err
	}
	b, err := readByte(r)
	if err != nil {
		return err
	}
	g.Mutable = b != 0
	return nil
}

func (g GlobalVar) MarshalWASM(w io.Writer) error {
	if err := g.Type.MarshalWASM(w); err != nil {
		return err
	}
	mut := byte(0)
	if g.Mutable {
		mut = 1
	}
	_, err := w.Write([]byte{mut})
	return err
}

// ResizableLimits describes the minimum and, if present, maximum size of a
// table or memory.
type ResizableLimits struct {
	Flags   uint8
	Initial uint32
	Maximum uint32
}

func (l *ResizableLimits) UnmarshalWASM(r io.Reader) error {
	flags, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}
	l.Flags = uint8(flags)

	l.Initial, err = leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}

	if l.Flags&0x1 != 0 {
		l.Maximum, err = leb128.ReadVarUint32(r)
		if err != nil {
			return err
		}
	}
	return nil
}

func (l ResizableLimits) MarshalWASM(w io.Writer) error {
	if _, err := leb128.WriteVarUint32(w, uint32(l.Flags)); err != nil {
		return err
	}
	if _, err := leb128.WriteVarUint32(w, l.Initial); err != nil {
		return err
	}
	if l.Flags&0x1 != 0 {
		if _, err := leb128.WriteVarUint32(w, l.Maximum); err != nil {
			return err
		}
	}
	return nil
}

// ElemType is the element type of a table. The MVP supports only function
// references.
type ElemType byte

const ElemTypeAnyFunc ElemType = 0x70

// Table describes a table of opaque references.
type Table struct {
	ElementType ElemType
	Limits      ResizableLimits
}

func (t *Table) UnmarshalWASM(r io.Reader) error {
	b, err := readByte(r)
	if err != nil {
		return err
	}
	t.ElementType = ElemType(b)
	return t.Limits.UnmarshalWASM(r)
}

func (t Table) MarshalWASM(w io.Writer) error {
	if _, err := w.Write([]byte{byte(t.ElementType)}); err != nil {
		return err
	}
	return t.Limits.MarshalWASM(w)
}

// Memory describes a linear memory.
type Memory struct {
	Limits ResizableLimits
}

func (m *Memory) UnmarshalWASM(r io.Reader) error {
	return m.Limits.UnmarshalWASM(r)
}

func (m Memory) MarshalWASM(w io.Writer) error {
	return m.Limits.MarshalWASM(w)
}

// ExceptionType describes the parameter list carried by a thrown exception,
// following the exception-handling proposal's tag section.
type ExceptionType struct {
	// Type is the index into the type section of a function type whose
	// parameter list is the exception's argument list (its result list is
	// always empty).
	Type uint32
}

func (e *ExceptionType) UnmarshalWASM(r io.Reader) error {
	attr, err := readByte(r)
	if err != nil {
		return err
	}
	if attr != 0 {
		return ValidationError("unsupported tag attribute")
	}
	e.Type, err = leb128.ReadVarUint32(r)
	return err
}

func (e ExceptionType) MarshalWASM(w io.Writer) error {
	if _, err := w.Write([]byte{0}); err != nil {
		return err
	}
	_, err := leb128.WriteVarUint32(w, e.Type)
	return err
}

// ValidationError is a fatal, unrecoverable error produced when a module
// fails to satisfy the core invariants the decoder assumes hold.
type ValidationError string

func (e ValidationError) Error() string {
	return "wasm: " + string(e)
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], err
}
