package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnvReaderDefaults(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("SESSION_SIGNING_KEY", "secret")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.Storage.Driver != StorageMemory || cfg.Storage.Key != "todo-items" {
		t.Fatalf("unexpected storage defaults %+v", cfg.Storage)
	}
	if cfg.HTTP.Port != "8080" || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected http defaults %+v", cfg.HTTP)
	}
	if cfg.Widget.IDFormat != "uuid" {
		t.Fatalf("unexpected id format %q", cfg.Widget.IDFormat)
	}
}

func TestEnvReaderRequiresSigningKey(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("SESSION_SIGNING_KEY", "")
	os.Unsetenv("SESSION_SIGNING_KEY")

	if _, err := NewEnvReader().Read(); err == nil {
		t.Fatal("expected error without SESSION_SIGNING_KEY")
	}
}

func TestFileReader(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", "secret")
	t.Setenv("STORAGE_DRIVER", StorageSQLite)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "env: dev\nstorage:\n  driver: postgres\n  key: tasks\nsqlite:\n  path: /tmp/x.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := NewFileReader(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.Env != EnvDev || cfg.Storage.Key != "tasks" || cfg.SQLite.Path != "/tmp/x.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Storage.Driver != StorageSQLite {
		t.Fatalf("expected env to override file, got %q", cfg.Storage.Driver)
	}
}
