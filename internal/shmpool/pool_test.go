package shmpool

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestAllocate(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	m, fd, err := Allocate(4096)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	defer unix.Close(fd)
	defer m.Close()

	if len(m.Data) != 4096 {
		t.Fatalf("mapping length = %d, want 4096", len(m.Data))
	}

	m.Data[0] = 0xAB
	if m.Data[0] != 0xAB {
		t.Fatal("mapping is not writable")
	}

	entries, err := os.ReadDir(os.Getenv("XDG_RUNTIME_DIR"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("backing file was not unlinked: %v", entries)
	}
}

func TestAllocateNoRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	if _, _, err := Allocate(4096); err != ErrNoRuntimeDir {
		t.Fatalf("err = %v, want ErrNoRuntimeDir", err)
	}
}
