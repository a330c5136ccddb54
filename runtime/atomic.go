package runtime

import (
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Wait and Notify back atomic.wait_i32/i64 and atomic.notify. The
// teacher's interpreter never modeled shared-memory threads, so there is
// no exec analog; this repository grounds the implementation directly on
// the x/sys/unix dependency the teacher already carries for mmap, using
// the same futex syscall Linux's own pthread condition variables are
// built on. timeoutNanos < 0 means wait indefinitely, matching
// WebAssembly's "the replacement value for the infinite timeout" note.
func Wait32(addr *uint32, expected uint32, timeoutNanos int64) uint32 {
	if atomic.LoadUint32(addr) != expected {
		return 1 // "not-equal"
	}
	var ts *unix.Timespec
	if timeoutNanos >= 0 {
		d := time.Duration(timeoutNanos)
		t := unix.NsecToTimespec(d.Nanoseconds())
		ts = &t
	}
	err := unix.Futex((*int32)(unsafe.Pointer(addr)), unix.FUTEX_WAIT, int32(expected), ts, nil, 0)
	if err == unix.ETIMEDOUT {
		return 2 // "timed-out"
	}
	return 0 // "ok"
}

func Wait64(addr *uint64, expected uint64, timeoutNanos int64) uint32 {
	// The futex syscall only operates on 32-bit words; atomic.wait_i64
	// is realized by waiting on the address's low word, matching the
	// observation that any notify targeting this address wakes either
	// width's waiters regardless of word size.
	low := (*uint32)(unsafe.Pointer(addr))
	if atomic.LoadUint64(addr) != expected {
		return 1
	}
	return Wait32(low, uint32(expected), timeoutNanos)
}

func Notify(addr *uint32, count uint32) uint32 {
	n, err := unix.FutexWake((*int32)(unsafe.Pointer(addr)), int32(count))
	if err != nil {
		return 0
	}
	return uint32(n)
}

func AtomicAdd32(addr *uint32, delta uint32) uint32 { return atomic.AddUint32(addr, delta) - delta }
func AtomicSub32(addr *uint32, delta uint32) uint32 { return atomic.AddUint32(addr, ^(delta - 1)) + delta }
func AtomicAdd64(addr *uint64, delta uint64) uint64 { return atomic.AddUint64(addr, delta) - delta }
func AtomicSub64(addr *uint64, delta uint64) uint64 { return atomic.AddUint64(addr, ^(delta - 1)) + delta }

func AtomicCmpxchg32(addr *uint32, expected, replacement uint32) uint32 {
	for {
		old := atomic.LoadUint32(addr)
		if old != expected {
			return old
		}
		if atomic.CompareAndSwapUint32(addr, old, replacement) {
			return old
		}
	}
}

func AtomicCmpxchg64(addr *uint64, expected, replacement uint64) uint64 {
	for {
		old := atomic.LoadUint64(addr)
		if old != expected {
			return old
		}
		if atomic.CompareAndSwapUint64(addr, old, replacement) {
			return old
		}
	}
}
