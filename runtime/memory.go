package runtime

import (
	stdruntime "runtime"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

const pageSize = 65536

// maxAddressSpace reserves 8GiB of address space per memory so that any
// 32-bit index plus a 32-bit static offset, zero-extended to 64 bits per
// the translator's memory-access contract, lands inside guarded pages
// rather than wrapping into an unrelated mapping.
const maxAddressSpace = 1 << 33

// Memory is a WASM linear memory backed by a single large anonymous
// mapping, reserved once at creation and grown in place with mprotect,
// the same scheme the teacher's exec.Memory uses via raw mmap syscalls —
// this repository routes the same calls through golang.org/x/sys/unix
// instead of a go:linkname into the Go runtime's private mmap.
type Memory struct {
	min, max uint32
	region   []byte // the full reservation; region[:size] is accessible
	size     uint32 // current size in bytes
}

// NewMemory reserves a guarded region and grows it to min pages.
func NewMemory(min, max uint32) (*Memory, error) {
	region, err := unix.Mmap(-1, 0, maxAddressSpace, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}

	m := &Memory{min: min, max: max, region: region}
	if _, err := m.Grow(min); err != nil {
		unix.Munmap(region)
		return nil, err
	}
	return m, nil
}

// Limits returns the minimum and maximum size of the memory in pages.
func (m *Memory) Limits() (min, max uint32) { return m.min, m.max }

// Size returns the current size of the memory in pages.
func (m *Memory) Size() uint32 { return m.size / pageSize }

// Grow grows the memory by the given number of pages, returning the
// memory's size in pages before the grow.
func (m *Memory) Grow(delta uint32) (uint32, error) {
	current := m.Size()
	newPages := current + delta
	if delta > 0 && (newPages < current || newPages > m.max || newPages > 65536) {
		return current, ErrGrowLimitExceeded
	}

	newSize := newPages * pageSize
	if newSize > m.size {
		if err := unix.Mprotect(m.region[m.size:newSize], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return current, err
		}
	}
	m.size = newSize
	return current, nil
}

// ErrGrowLimitExceeded is returned when a memory.grow would exceed the
// memory's declared maximum or the hard 4GiB address-space ceiling.
var ErrGrowLimitExceeded = errGrowLimitExceeded{}

type errGrowLimitExceeded struct{}

func (errGrowLimitExceeded) Error() string { return "memory limit exceeded" }

// Bytes returns the accessible portion of the memory.
func (m *Memory) Bytes() []byte { return m.region[:m.size] }

// Base returns a pointer to the start of the memory, the value seeded
// into a function's memory-base storage cell at entry (§4.3 "Entry
// prologue").
func (m *Memory) Base() uintptr {
	if len(m.region) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&m.region[0]))
}

func effectiveAddr(base uintptr, addr, offset uint32) unsafe.Pointer {
	// addr is zero-extended, never sign-extended, matching the §4.3
	// trap-discipline requirement that a 32-bit index plus offset never
	// produces a negative displacement.
	return unsafe.Pointer(base + uintptr(addr) + uintptr(offset))
}

// Load8/Load16/Load32/Load64 and their Store counterparts read and write
// linear memory at addr+offset with no bounds check in Go: the guarded
// reservation around m.region makes an out-of-range access fault, which
// RecoverTrap below turns into TrapOutOfBoundsMemoryAccess, the same
// division of labor the distilled spec's §4.3 "Memory access" paragraph
// assigns to the runtime rather than the translator.

func (m *Memory) Load8(addr, offset uint32) uint8 {
	return *(*uint8)(effectiveAddr(m.Base(), addr, offset))
}

func (m *Memory) Load16(addr, offset uint32) uint16 {
	return *(*uint16)(effectiveAddr(m.Base(), addr, offset))
}

func (m *Memory) Load32(addr, offset uint32) uint32 {
	return *(*uint32)(effectiveAddr(m.Base(), addr, offset))
}

func (m *Memory) Load64(addr, offset uint32) uint64 {
	return *(*uint64)(effectiveAddr(m.Base(), addr, offset))
}

func (m *Memory) Store8(addr, offset uint32, v uint8) {
	*(*uint8)(effectiveAddr(m.Base(), addr, offset)) = v
}

func (m *Memory) Store16(addr, offset uint32, v uint16) {
	*(*uint16)(effectiveAddr(m.Base(), addr, offset)) = v
}

func (m *Memory) Store32(addr, offset uint32, v uint32) {
	*(*uint32)(effectiveAddr(m.Base(), addr, offset)) = v
}

func (m *Memory) Store64(addr, offset uint32, v uint64) {
	*(*uint64)(effectiveAddr(m.Base(), addr, offset)) = v
}

// RecoverTrap converts a Go runtime fault arising from an out-of-range
// Load/Store above into the WASM-defined trap, mirroring the teacher's
// exec.TranslateRuntimeError/TranslateRecover pair.
func RecoverTrap(x interface{}) {
	if x == nil {
		return
	}
	if err, ok := x.(stdruntime.Error); ok && strings.Contains(err.Error(), "invalid memory address") {
		Trap(TrapOutOfBoundsMemoryAccess)
	}
	panic(x)
}
