package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/favorite/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
	"github.com/dwikikusuma/shopfront/pkg/rest"
	"golang.org/x/sync/singleflight"
)

var ErrNotSignedIn = errors.New("not signed in")

// Service keeps the favorites set in sync with the backend. Toggles are
// mutate-then-refetch pairs serialized under the mutex; the membership
// copy held here is replaced wholesale by each refetch.
type Service struct {
	api     FavoriteAPI
	session Session
	gate    Gate
	sink    Sink
	notify  notice.Notifier
	log     *slog.Logger

	mu      sync.Mutex
	members map[string]bool
	flight  singleflight.Group
}

func NewService(api FavoriteAPI, session Session, gate Gate, sink Sink, notify notice.Notifier, log *slog.Logger) *Service {
	return &Service{
		api:     api,
		session: session,
		gate:    gate,
		sink:    sink,
		notify:  notify,
		log:     log,
		members: map[string]bool{},
	}
}

// Has reports current membership for a product.
func (s *Service) Has(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[productID]
}

// Toggle flips membership for the product. Signed-out users are refused
// locally with a login prompt and no network call.
func (s *Service) Toggle(ctx context.Context, p catalog.Product) error {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		s.notify.Error("Please sign in to favorite items")
		s.gate.RequestLogin()
		return ErrNotSignedIn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removing := s.members[p.ID]
	var err error
	if removing {
		err = s.api.Remove(ctx, uid, p.ID)
	} else {
		err = s.api.Add(ctx, uid, p.ID)
	}
	if err != nil {
		s.surface(err)
		return err
	}

	if err := s.refetchLocked(ctx, uid); err != nil {
		return err
	}

	if removing {
		s.notify.Info(fmt.Sprintf("Removed %s from favorites", p.Name))
	} else {
		s.notify.Success(fmt.Sprintf("Added %s to favorites", p.Name))
	}
	return nil
}

// Refresh rebuilds the set for the current user, clearing it when
// signed out. Concurrent refreshes share a single fetch.
func (s *Service) Refresh(ctx context.Context) error {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		s.mu.Lock()
		s.members = map[string]bool{}
		s.mu.Unlock()
		s.sink.ReplaceFavorites(nil)
		return nil
	}

	_, err, _ := s.flight.Do(uid, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return nil, s.refetchLocked(ctx, uid)
	})
	return err
}

func (s *Service) refetchLocked(ctx context.Context, uid string) error {
	favorites, err := s.api.List(ctx, uid)
	if err != nil {
		s.log.Error("fetch favorites", slog.Any("err", err))
		return err
	}
	s.members = domain.IDSet(favorites)
	s.sink.ReplaceFavorites(favorites)
	return nil
}

func (s *Service) surface(err error) {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		s.notify.Error(apiErr.Detail)
		return
	}
	s.log.Error("favorite mutation", slog.Any("err", err))
	s.notify.Error("Favorite update failed, please try again")
}
