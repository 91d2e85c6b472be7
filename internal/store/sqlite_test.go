package store

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestDBStore(t *testing.T) *DBStore {
	t.Helper()
	s, err := NewDBStore(filepath.Join(t.TempDir(), "otp.s3db"))
	if err != nil {
		t.Fatalf("NewDBStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDBStoreAppendReadAll(t *testing.T) {
	s := newTestDBStore(t)

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

func TestDBStoreEmpty(t *testing.T) {
	s := newTestDBStore(t)

	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadAll on empty store = %v, want no tokens", got)
	}
}

func TestDBStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otp.s3db")

	s, err := NewDBStore(path)
	if err != nil {
		t.Fatalf("NewDBStore failed: %v", err)
	}
	if err := s.Append("persisted"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening must find the table and the row; the schema setup is
	// idempotent.
	s, err = NewDBStore(path)
	if err != nil {
		t.Fatalf("NewDBStore reopen failed: %v", err)
	}
	defer s.Close()

	got, err := s.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"persisted"}) {
		t.Errorf("ReadAll = %v, want [persisted]", got)
	}
}
