package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func withLockDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "locks")
	orig := LockDir
	LockDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { LockDir = orig })
	return dir
}

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestTryLock_HeldElsewhere(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	first := NewFileLock(lockPath)
	if err := first.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer first.Unlock()

	ok, err := NewFileLock(lockPath).TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if ok {
		t.Error("TryLock() = true while another handle holds the lock")
	}
}

func TestLockPathFor(t *testing.T) {
	a := LockPathFor("/locks", "/home/user/code")
	if a != LockPathFor("/locks", "/home/user/code/") {
		t.Error("trailing slash should map to the same lock")
	}
	if a == LockPathFor("/locks", "/home/user/other") {
		t.Error("different roots must not share a lock")
	}
	if filepath.Dir(a) != "/locks" {
		t.Errorf("lock dir = %q, want /locks", filepath.Dir(a))
	}
}

func TestRunLock(t *testing.T) {
	dir := withLockDir(t)

	lock, err := RunLock("/home/user/code")
	if err != nil {
		t.Fatalf("RunLock() error = %v", err)
	}
	if filepath.Dir(lock.Path()) != dir {
		t.Errorf("lock path = %q, want under %q", lock.Path(), dir)
	}

	_, err = RunLock("/home/user/code")
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second RunLock() error = %v, want ErrLocked", err)
	}

	other, err := RunLock("/home/user/other")
	if err != nil {
		t.Fatalf("RunLock(other) error = %v", err)
	}
	other.Unlock()

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	again, err := RunLock("/home/user/code")
	if err != nil {
		t.Fatalf("RunLock() after unlock error = %v", err)
	}
	again.Unlock()
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	if err := AtomicWrite(path, []byte("first")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if err := AtomicWrite(path, []byte("second")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (no temp files left)", len(entries))
	}
}

func TestLockAndWrite_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := LockAndWrite(path, []byte("payload")); err != nil {
				t.Errorf("LockAndWrite() error = %v", err)
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want payload", data)
	}
}

func TestLockAndWrite_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nmclean", "nested", "config.yaml")

	if err := LockAndWrite(path, []byte("mode: unused\n")); err != nil {
		t.Fatalf("LockAndWrite() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "mode: unused\n" {
		t.Errorf("content = %q, want %q", data, "mode: unused\n")
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Errorf("lock file not created next to target: %v", err)
	}
}
