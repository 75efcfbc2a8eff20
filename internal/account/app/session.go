package app

import (
	"log/slog"
	"sync"

	"github.com/dwikikusuma/shopfront/internal/account/domain"
)

// Session is the explicit session context: the one place the signed-in
// user lives. It is injected into the other services rather than read
// from ambient globals, and it satisfies their CurrentUserID ports.
type Session struct {
	store Store
	log   *slog.Logger

	mu       sync.RWMutex
	user     *domain.User
	onChange []func(user *domain.User)
}

func NewSession(store Store, log *slog.Logger) *Session {
	return &Session{store: store, log: log}
}

// Init restores a persisted identity. It resolves identity only; the
// dependent collection fetches are the caller's responsibility and must
// run after this returns.
func (s *Session) Init() {
	user, ok, err := s.store.Load()
	if err != nil {
		s.log.Warn("restore session", slog.Any("err", err))
		return
	}
	if !ok {
		return
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// OnChange registers a hook fired after every identity change. The
// argument is nil on logout.
func (s *Session) OnChange(fn func(user *domain.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Session) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Session) CurrentUserID() (string, bool) {
	u, ok := s.Current()
	return u.ID, ok
}

func (s *Session) IsAdmin() bool {
	u, ok := s.Current()
	return ok && u.IsAdmin()
}

func (s *Session) set(user domain.User) {
	s.mu.Lock()
	s.user = &user
	hooks := append(([]func(*domain.User))(nil), s.onChange...)
	s.mu.Unlock()

	if err := s.store.Save(user); err != nil {
		s.log.Warn("persist session", slog.Any("err", err))
	}
	for _, fn := range hooks {
		u := user
		fn(&u)
	}
}

func (s *Session) clear() {
	s.mu.Lock()
	s.user = nil
	hooks := append(([]func(*domain.User))(nil), s.onChange...)
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.log.Warn("clear persisted session", slog.Any("err", err))
	}
	for _, fn := range hooks {
		fn(nil)
	}
}
