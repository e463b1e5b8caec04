//go:build darwin

package mmap

import (
	"os"
	"syscall"
	"unsafe"
)

// madvSequential is MADV_SEQUENTIAL, which package syscall does not export
// on darwin.
const madvSequential = 2

// mmap wraps the mmap system call
func mmap(f *os.File, length int) ([]byte, error) {
	return syscall.Mmap(int(f.Fd()), 0, length, syscall.PROT_READ, syscall.MAP_SHARED)
}

// munmap wraps the munmap system call
func munmap(b []byte) error {
	return syscall.Munmap(b)
}

// adviseSequential hints that the mapping will be read front to back.
func adviseSequential(b []byte) error {
	_, _, err := syscall.Syscall(syscall.SYS_MADVISE, uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), madvSequential)
	if err != 0 {
		return err
	}
	return nil
}
