// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import (
	"encoding/binary"
	"io"
	"log"
	"os"

	"github.com/wasmjit-go/wazm/wasm/leb128"
)

// logger is silent by default; set WASM_TRACE=1 to see section-level decode
// tracing while debugging a malformed module.
var logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("WASM_TRACE") != "" {
		logger = log.New(os.Stderr, "wasm: ", log.Lshortfile)
	}
}

// getInitialCap bounds a slice pre-allocation by a declared element count,
// so a malformed length field can't force an enormous allocation.
func getInitialCap(count uint32) uint32 {
	const max = 1 << 16
	if count > max {
		return max
	}
	return count
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readBytes(r io.Reader, n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readInitExpr reads a constant initializer expression, which is delimited
// by an "end" (0x0b) opcode that is included in the returned bytes.
func readInitExpr(r io.Reader) ([]byte, error) {
	var buf []byte
	for {
		b, err := readByte(r)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b)
		if b == 0x0b {
			return buf, nil
		}
	}
}

func readUTF8StringUint(r io.Reader) (string, error) {
	n, err := leb128.ReadVarUint32(r)
	if err != nil {
		return "", err
	}
	b, err := readBytes(r, n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeStringUint(w io.Writer, s string) error {
	if _, err := leb128.WriteVarUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeBytesUint(w io.Writer, b []byte) error {
	if _, err := leb128.WriteVarUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
