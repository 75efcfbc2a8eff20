package app

import (
	"context"
	"io"

	"github.com/dwikikusuma/shopfront/internal/account/domain"
)

type UserAPI interface {
	Login(ctx context.Context, identifier, password string) (domain.User, error)
	AdminLogin(ctx context.Context, identifier, password string) (domain.User, error)
	Register(ctx context.Context, username, email, password, phone string) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	ResetPassword(ctx context.Context, username, email, newPassword string) error
	UploadAvatar(ctx context.Context, userID, filename string, file io.Reader) (domain.User, error)
}

// Store persists the session across restarts: the signed-in user under
// a fixed key, plus a legacy user list that is kept in sync on profile
// update but is never read as authoritative.
type Store interface {
	Load() (domain.User, bool, error)
	Save(user domain.User) error
	Clear() error
	SyncLegacy(user domain.User) error
}
