// Package localstore persists session state as JSON files under a
// config directory: the client-side analog of browser local storage.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dwikikusuma/shopfront/internal/account/domain"
)

const (
	userFile = "user.json"
	// legacyFile is an older multi-user record kept in sync on profile
	// update. It is never read as authoritative.
	legacyFile = "users.json"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

type storedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `json:"role"`
	RegisterTime time.Time `json:"register_time"`
}

func toStored(u domain.User) storedUser {
	return storedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		Avatar:       u.Avatar,
		Role:         string(u.Role),
		RegisterTime: u.RegisterTime,
	}
}

func (s storedUser) toDomain() domain.User {
	return domain.User{
		ID:           s.ID,
		Username:     s.Username,
		Email:        s.Email,
		Phone:        s.Phone,
		Avatar:       s.Avatar,
		Role:         domain.Role(s.Role),
		RegisterTime: s.RegisterTime,
	}
}

func (s *Store) Load() (domain.User, bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}

	var stored storedUser
	if err := json.Unmarshal(raw, &stored); err != nil {
		return domain.User{}, false, fmt.Errorf("corrupt session file: %w", err)
	}
	return stored.toDomain(), true, nil
}

func (s *Store) Save(user domain.User) error {
	return s.writeJSON(userFile, toStored(user))
}

func (s *Store) Clear() error {
	err := os.Remove(filepath.Join(s.dir, userFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// SyncLegacy patches the matching record in the legacy user list, when
// that list exists. A missing list is not an error.
func (s *Store) SyncLegacy(user domain.User) error {
	path := filepath.Join(s.dir, legacyFile)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var users []storedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return fmt.Errorf("corrupt legacy user list: %w", err)
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = toStored(user)
		}
	}
	return s.writeJSON(legacyFile, users)
}

// writeJSON writes via a temp file and rename so a crash can't leave a
// half-written session behind.
func (s *Store) writeJSON(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}
