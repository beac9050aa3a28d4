package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSamePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	other := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(other, []byte("y"), 0o600); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(file, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical strings", file, file, true},
		{"symlink alias", file, link, true},
		{"different files", file, other, false},
		{"missing path", file, filepath.Join(dir, "missing"), false},
		{"both missing", filepath.Join(dir, "nope"), filepath.Join(dir, "nor"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := SamePath(tc.a, tc.b); got != tc.want {
				t.Errorf("SamePath(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestTempContextCleanup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := filepath.Join(dir, "src.txt")
	if err := os.WriteFile(src, []byte("data"), 0o700); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.txt")

	tc, err := NewTempContext(src, out)
	if err != nil {
		t.Fatalf("NewTempContext() error = %v", err)
	}

	if !tc.IsExec {
		t.Error("expected IsExec for a 0700 source")
	}

	if _, err := os.Stat(tc.TmpName); err != nil {
		t.Fatalf("temp file missing: %v", err)
	}

	failed := errors.New("write failed")
	tc.CleanupOnError(&failed)

	if _, err := os.Stat(tc.TmpName); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temp file not removed after error: %v", err)
	}

	tc, err = NewTempContext(src, out)
	if err != nil {
		t.Fatalf("NewTempContext() error = %v", err)
	}

	var ok error

	tc.CleanupOnError(&ok)

	if _, err := os.Stat(tc.TmpName); err != nil {
		t.Fatalf("temp file removed despite success: %v", err)
	}
}

func TestFinalizeOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	out := filepath.Join(dir, "out.bin")
	if err := os.WriteFile(out, []byte("12345"), 0o600); err != nil {
		t.Fatal(err)
	}

	stamp := time.Date(2021, time.March, 14, 15, 9, 26, 0, time.UTC)

	size, err := FinalizeOutput(out, true, stamp)
	if err != nil {
		t.Fatalf("FinalizeOutput() error = %v", err)
	}

	if size != 5 {
		t.Errorf("size = %d, want 5", size)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}

	if !info.ModTime().Equal(stamp) {
		t.Errorf("ModTime = %v, want %v", info.ModTime(), stamp)
	}
}
