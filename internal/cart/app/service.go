package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
	"github.com/dwikikusuma/shopfront/pkg/rest"
	"golang.org/x/sync/singleflight"
)

var ErrNotSignedIn = errors.New("not signed in")

// Service synchronizes the cart with the backend. Every mutation runs a
// mutate-then-refetch pair under the service mutex, so two rapid
// mutations cannot interleave and an earlier refetch can never overwrite
// a later one. Plain refreshes are collapsed through a single-flight
// group instead.
type Service struct {
	api     CartAPI
	session Session
	gate    Gate
	sink    Sink
	notify  notice.Notifier
	log     *slog.Logger

	mu     sync.Mutex
	flight singleflight.Group
}

func NewService(api CartAPI, session Session, gate Gate, sink Sink, notify notice.Notifier, log *slog.Logger) *Service {
	return &Service{
		api:     api,
		session: session,
		gate:    gate,
		sink:    sink,
		notify:  notify,
		log:     log,
	}
}

// Add puts one unit of the product into the cart. Signed-out users are
// refused locally: no request is issued and the login prompt is raised.
func (s *Service) Add(ctx context.Context, p catalog.Product, specs map[string]string) error {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		s.notify.Error("Please sign in to add items to your cart")
		s.gate.RequestLogin()
		return ErrNotSignedIn
	}

	return s.mutate(ctx, uid, func() error {
		return s.api.Add(ctx, uid, p.ID, 1, specs)
	}, fmt.Sprintf("%s added to cart", p.Name))
}

// UpdateQuantity sets the line quantity for a product. A quantity of
// zero or less is equivalent to removing the line.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		return ErrNotSignedIn
	}

	if quantity <= 0 {
		return s.remove(ctx, uid, productID, "")
	}

	return s.mutate(ctx, uid, func() error {
		return s.api.SetQuantity(ctx, uid, productID, quantity)
	}, "")
}

// Remove deletes a product's line from the cart. name is used for the
// removal notice and may be empty.
func (s *Service) Remove(ctx context.Context, productID, name string) error {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		return ErrNotSignedIn
	}
	return s.remove(ctx, uid, productID, name)
}

func (s *Service) remove(ctx context.Context, uid, productID, name string) error {
	err := s.mutate(ctx, uid, func() error {
		return s.api.Remove(ctx, uid, productID)
	}, "")
	if err == nil && name != "" {
		s.notify.Info(fmt.Sprintf("Removed %s", name))
	}
	return err
}

// mutate runs one mutation followed by the authoritative refetch. The
// pair holds the mutex so concurrent mutations serialize, each applying
// its own refetch result in order.
func (s *Service) mutate(ctx context.Context, uid string, op func() error, successMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := op(); err != nil {
		s.surface(err)
		return err
	}

	items, err := s.api.List(ctx, uid)
	if err != nil {
		s.log.Error("refetch cart", slog.Any("err", err))
		s.notify.Error("Could not refresh your cart")
		return err
	}
	s.sink.ReplaceCart(items)

	if successMsg != "" {
		s.notify.Success(successMsg)
	}
	return nil
}

// Refresh pulls the authoritative cart for the current user, or clears
// it when signed out. Concurrent refreshes for the same user share one
// fetch.
func (s *Service) Refresh(ctx context.Context) error {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		s.sink.ReplaceCart(nil)
		return nil
	}

	_, err, _ := s.flight.Do(uid, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		items, err := s.api.List(ctx, uid)
		if err != nil {
			s.log.Error("fetch cart", slog.Any("err", err))
			return nil, err
		}
		// Applied before the mutex drops so a mutate+refetch pair that
		// slipped in behind this fetch cannot be overwritten by it.
		s.sink.ReplaceCart(items)
		return nil, nil
	})
	return err
}

func (s *Service) surface(err error) {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		s.notify.Error(apiErr.Detail)
		return
	}
	s.log.Error("cart mutation", slog.Any("err", err))
	s.notify.Error("Cart update failed, please try again")
}
