package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func TestMemoryGetSetRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0)

	if _, err := kv.Get(ctx, "todo-items"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := kv.Set(ctx, "todo-items", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "todo-items")
	if err != nil || got != "[]" {
		t.Fatalf("expected %q, got %q (%v)", "[]", got, err)
	}
	if err := kv.Remove(ctx, "todo-items"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := kv.Remove(ctx, "todo-items"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if _, err := kv.Get(ctx, "todo-items"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestMemoryQuota(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(8)

	if err := kv.Set(ctx, "a", "12345678"); err != nil {
		t.Fatalf("set within quota: %v", err)
	}
	if err := kv.Set(ctx, "b", "1"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	// Overwriting a slot frees its previous size.
	if err := kv.Set(ctx, "a", "1234"); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if err := kv.Set(ctx, "b", "1234"); err != nil {
		t.Fatalf("set after shrink: %v", err)
	}
	got, _ := kv.Get(ctx, "a")
	if got != "1234" {
		t.Fatalf("expected a=1234, got %q", got)
	}
}

func TestNamespaceIsolatesKeys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0)
	alice := Namespace(kv, "alice")
	bob := Namespace(kv, "bob")

	if err := alice.Set(ctx, "todo-items", "A"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := bob.Get(ctx, "todo-items"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected bob to see nothing, got %v", err)
	}
	raw, err := kv.Get(ctx, "alice/todo-items")
	if err != nil || raw != "A" {
		t.Fatalf("expected prefixed key in backend, got %q (%v)", raw, err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "slots.db")

	kv, err := OpenSQL(ctx, zerolog.Nop(), SQLite, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if _, err := kv.Get(ctx, "todo-items"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, v := range []string{"first", "second"} {
		if err := kv.Set(ctx, "todo-items", v); err != nil {
			t.Fatalf("set %q: %v", v, err)
		}
	}
	got, err := kv.Get(ctx, "todo-items")
	if err != nil || got != "second" {
		t.Fatalf("expected last write to win, got %q (%v)", got, err)
	}
	if err := kv.Remove(ctx, "todo-items"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := kv.Get(ctx, "todo-items"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestPostgresQuotaErrors(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{pgerrcode.DiskFull, true},
		{pgerrcode.ProgramLimitExceeded, true},
		{pgerrcode.UniqueViolation, false},
	}
	for _, tt := range tests {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tt.code})
		if got := isQuotaError(err); got != tt.want {
			t.Errorf("isQuotaError(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
	if isQuotaError(errors.New("plain")) {
		t.Error("expected non-pg error not to be a quota error")
	}
}
