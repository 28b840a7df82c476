package badger

import (
	"context"
	"testing"

	"github.com/MrSnakeDoc/confessio/internal/store/storetest"
)

func TestStoreInMemory(t *testing.T) {
	s, err := Open("", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	storetest.Run(t, s, nil)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Set(ctx, "confessio:notebook", []byte("[]"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(dir, nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.Get(ctx, "confessio:notebook")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Get() = %q, want %q", got, "[]")
	}
}
