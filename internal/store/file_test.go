package store

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// Both variants must satisfy the Store interface
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*DBStore)(nil)
)

func TestFileStoreAppendReadAll(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "totp.txt"))
	defer s.Close()

	var want []string
	for i := 0; i < 5; i++ {
		token := fmt.Sprintf("token-%d", i)
		if err := s.Append(token); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		want = append(want, token)
	}

	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadAll = %v, want %v (insertion order)", got, want)
	}

	// ReadAll must be repeatable
	again, err := s.ReadAll()
	if err != nil {
		t.Fatalf("second ReadAll failed: %v", err)
	}
	if !reflect.DeepEqual(again, want) {
		t.Errorf("second ReadAll = %v, want %v", again, want)
	}
}

func TestFileStoreAppendIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totp.txt")
	s := NewFileStore(path)

	if err := s.Append("first"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append("second"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("file contents = %q, want one token per line", string(data))
	}
}

func TestFileStoreReadAllMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.txt"))

	if _, err := s.ReadAll(); err == nil {
		t.Error("ReadAll on a missing store file succeeded, want error")
	}
}

func TestFileStoreSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totp.txt")
	if err := os.WriteFile(path, []byte("one\n\ntwo\n"), 0o600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}

	got, err := NewFileStore(path).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("ReadAll = %v, want [one two]", got)
	}
}
