// Package shmpool allocates Wayland wl_shm-backed shared memory buffers:
// a file in $XDG_RUNTIME_DIR, ftruncate'd and mmap'd, handed to the
// compositor as a shm pool, then unlinked and closed (the mapping and
// the pool keep the memory alive after that).
package shmpool

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrNoRuntimeDir is returned when $XDG_RUNTIME_DIR is unset.
var ErrNoRuntimeDir = errors.New("shmpool: XDG_RUNTIME_DIR is not set")

// Mapping is a live shared-memory allocation: the mmap'd bytes. Close
// unmaps the memory; the backing file is unlinked and its original fd
// closed by Allocate itself. The fd Allocate returns alongside the
// Mapping is a separate duplicate and is not part of it.
type Mapping struct {
	Data []byte
}

// Close unmaps the shared memory.
func (m *Mapping) Close() error {
	if m.Data == nil {
		return nil
	}
	err := unix.Munmap(m.Data)
	m.Data = nil
	return err
}

// Allocate creates an anonymous-but-named temp file under
// $XDG_RUNTIME_DIR, truncates it to size, maps it PROT_READ|PROT_WRITE,
// and returns both the mapping and an fd to hand to wl_shm.create_pool.
// Allocate unlinks the file and closes its own fd before returning; the
// returned fd is a dup() of it that Allocate does not close, so it stays
// open until the caller closes it.
func Allocate(size int) (*Mapping, int, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return nil, -1, ErrNoRuntimeDir
	}

	f, err := os.CreateTemp(dir, "wsbg-*")
	if err != nil {
		return nil, -1, fmt.Errorf("shmpool: create temp file: %w", err)
	}
	name := f.Name()
	fd := int(f.Fd())

	cleanup := func() {
		f.Close()
		os.Remove(name)
	}

	for {
		err = unix.Ftruncate(fd, int64(size))
		if err == nil {
			break
		}
		if err == unix.EINTR {
			continue
		}
		cleanup()
		return nil, -1, fmt.Errorf("shmpool: ftruncate: %w", err)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		cleanup()
		return nil, -1, fmt.Errorf("shmpool: mmap: %w", err)
	}

	// The fd itself is only needed by the caller to pass to
	// wl_shm.create_pool; the kernel keeps the mapping (and the pool,
	// compositor-side) alive once the compositor has dup'd it, so it is
	// safe - and required by contract - to unlink and close here on every
	// path, success included.
	dupFd, err := unix.Dup(fd)
	if err != nil {
		unix.Munmap(data)
		cleanup()
		return nil, -1, fmt.Errorf("shmpool: dup: %w", err)
	}
	cleanup()

	return &Mapping{Data: data}, dupFd, nil
}
