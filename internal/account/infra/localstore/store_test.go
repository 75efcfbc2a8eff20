package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dwikikusuma/shopfront/internal/account/domain"
)

func TestSaveLoadClear(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("Load on empty dir = ok %v, err %v; want absent, nil", ok, err)
	}

	user := domain.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		Phone:        "13800138000",
		Role:         domain.RoleUser,
		RegisterTime: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := store.Save(user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load after Save = ok %v, err %v", ok, err)
	}
	if got != user {
		t.Fatalf("Load = %+v, want %+v", got, user)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatal("Load after Clear reports a user")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, userFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, _, err := store.Load(); err == nil {
		t.Fatal("Load on corrupt file did not report an error")
	}
}

func TestSyncLegacy(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	updated := domain.User{ID: "u1", Username: "alice-renamed", Email: "alice@example.com", Role: domain.RoleUser}

	t.Run("missing list is a no-op", func(t *testing.T) {
		if err := store.SyncLegacy(updated); err != nil {
			t.Fatalf("SyncLegacy: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, legacyFile)); !os.IsNotExist(err) {
			t.Fatal("SyncLegacy created a legacy list")
		}
	})

	t.Run("patches matching record only", func(t *testing.T) {
		seed := []storedUser{
			{ID: "u1", Username: "alice"},
			{ID: "u2", Username: "bob"},
		}
		raw, _ := json.Marshal(seed)
		if err := os.WriteFile(filepath.Join(dir, legacyFile), raw, 0o600); err != nil {
			t.Fatalf("seed legacy list: %v", err)
		}

		if err := store.SyncLegacy(updated); err != nil {
			t.Fatalf("SyncLegacy: %v", err)
		}

		raw, err := os.ReadFile(filepath.Join(dir, legacyFile))
		if err != nil {
			t.Fatalf("read legacy list: %v", err)
		}
		var users []storedUser
		if err := json.Unmarshal(raw, &users); err != nil {
			t.Fatalf("decode legacy list: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("legacy list has %d entries, want 2", len(users))
		}
		if users[0].Username != "alice-renamed" {
			t.Fatalf("u1 username = %q, want alice-renamed", users[0].Username)
		}
		if users[1].Username != "bob" {
			t.Fatalf("u2 username = %q, want untouched bob", users[1].Username)
		}
	})
}
