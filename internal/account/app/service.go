package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dwikikusuma/shopfront/internal/account/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotSignedIn  = errors.New("not signed in")
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

type Service struct {
	api     UserAPI
	session *Session
	store   Store
	notify  notice.Notifier
	log     *slog.Logger
}

func NewService(api UserAPI, session *Session, store Store, notify notice.Notifier, log *slog.Logger) *Service {
	return &Service{
		api:     api,
		session: session,
		store:   store,
		notify:  notify,
		log:     log,
	}
}

func (s *Service) Session() *Session {
	return s.session
}

func (s *Service) Login(ctx context.Context, identifier, password string) (domain.User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		s.notify.Error("Enter your email or phone and password")
		return domain.User{}, ErrInvalidInput
	}

	user, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		s.surface(err, "Login failed")
		return domain.User{}, err
	}

	s.session.set(user)
	s.notify.Success(fmt.Sprintf("Welcome back, %s!", user.Username))
	return user, nil
}

// AdminLogin authenticates against the admin endpoint. The returned
// identity routes to the admin dashboard.
func (s *Service) AdminLogin(ctx context.Context, identifier, password string) (domain.User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		s.notify.Error("Enter admin credentials")
		return domain.User{}, ErrInvalidInput
	}

	user, err := s.api.AdminLogin(ctx, identifier, password)
	if err != nil {
		s.surface(err, "Admin login failed")
		return domain.User{}, err
	}
	if user.Role == "" {
		user.Role = domain.RoleAdmin
	}

	s.session.set(user)
	s.notify.Success(fmt.Sprintf("Welcome back, %s!", user.Username))
	return user, nil
}

func (s *Service) Register(ctx context.Context, username, email, password, confirm, phone string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "" || email == "":
		s.notify.Error("Username and email are required")
		return domain.User{}, ErrInvalidInput
	case len(password) < 6:
		s.notify.Error("Password must be at least 6 characters")
		return domain.User{}, ErrInvalidInput
	case password != confirm:
		s.notify.Error("Passwords do not match")
		return domain.User{}, ErrInvalidInput
	case phone != "" && !phonePattern.MatchString(phone):
		s.notify.Error("Enter a valid phone number")
		return domain.User{}, ErrInvalidInput
	}

	user, err := s.api.Register(ctx, username, email, password, phone)
	if err != nil {
		s.surface(err, "Registration failed")
		return domain.User{}, err
	}

	s.session.set(user)
	s.notify.Success(fmt.Sprintf("Welcome, %s!", user.Username))
	return user, nil
}

// UpdateProfile updates the signed-in user. Email is immutable after
// registration: whatever the caller passes, the current email wins.
func (s *Service) UpdateProfile(ctx context.Context, updated domain.User) (domain.User, error) {
	current, ok := s.session.Current()
	if !ok {
		return domain.User{}, ErrNotSignedIn
	}
	if updated.Phone != "" && !phonePattern.MatchString(updated.Phone) {
		s.notify.Error("Enter a valid phone number")
		return domain.User{}, ErrInvalidInput
	}

	updated.ID = current.ID
	updated.Email = current.Email
	updated.Role = current.Role

	user, err := s.api.Update(ctx, updated)
	if err != nil {
		s.surface(err, "Profile update failed")
		return domain.User{}, err
	}

	s.session.set(user)
	if err := s.store.SyncLegacy(user); err != nil {
		s.log.Warn("sync legacy user list", slog.Any("err", err))
	}
	s.notify.Success("Profile updated")
	return user, nil
}

// ResetPassword submits the reset to the backend and awaits its
// verdict; no credential check happens client-side.
func (s *Service) ResetPassword(ctx context.Context, username, email, newPassword, confirm string) error {
	switch {
	case strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "":
		s.notify.Error("Username and email are required")
		return ErrInvalidInput
	case len(newPassword) < 6:
		s.notify.Error("Password must be at least 6 characters")
		return ErrInvalidInput
	case newPassword != confirm:
		s.notify.Error("Passwords do not match")
		return ErrInvalidInput
	}

	if err := s.api.ResetPassword(ctx, username, email, newPassword); err != nil {
		s.surface(err, "Password reset failed")
		return err
	}
	s.notify.Success("Password reset, please sign in")
	return nil
}

func (s *Service) UploadAvatar(ctx context.Context, filename string, file io.Reader) (domain.User, error) {
	current, ok := s.session.Current()
	if !ok {
		return domain.User{}, ErrNotSignedIn
	}

	user, err := s.api.UploadAvatar(ctx, current.ID, filename, file)
	if err != nil {
		s.surface(err, "Avatar upload failed")
		return domain.User{}, err
	}

	s.session.set(user)
	s.notify.Success("Avatar updated")
	return user, nil
}

func (s *Service) Logout() {
	s.session.clear()
	s.notify.Info("Signed out")
}

func (s *Service) surface(err error, fallback string) {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		s.notify.Error(apiErr.Detail)
		return
	}
	s.log.Error("account operation", slog.Any("err", err))
	s.notify.Error(fallback)
}
