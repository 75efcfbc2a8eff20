package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/shopfront/internal/order/domain"
	"github.com/dwikikusuma/shopfront/pkg/notice"
	"github.com/dwikikusuma/shopfront/pkg/rest"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNoCurrentOrder = errors.New("no current order")
	ErrNotPayable     = errors.New("order is not payable")
)

// Service runs checkout and payment. Unlike cart and favorites, order
// mutations patch local state directly: creation returns the full
// order, and checkout is assumed to have emptied the cart server-side,
// so no refetch follows.
type Service struct {
	api      OrderAPI
	session  Session
	gate     Gate
	cart     Cart
	state    State
	notify   notice.Notifier
	log      *slog.Logger
	payDelay time.Duration

	mu     sync.Mutex
	flight singleflight.Group
}

func NewService(api OrderAPI, session Session, gate Gate, cart Cart, state State, notify notice.Notifier, log *slog.Logger, payDelay time.Duration) *Service {
	return &Service{
		api:      api,
		session:  session,
		gate:     gate,
		cart:     cart,
		state:    state,
		notify:   notify,
		log:      log,
		payDelay: payDelay,
	}
}

// Checkout creates a pending order from the current cart with the
// default address. On success the order becomes the current one, is
// prepended to the order list, and the cart is cleared locally.
func (s *Service) Checkout(ctx context.Context) (domain.Order, error) {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		s.notify.Error("Please sign in to check out")
		s.gate.RequestLogin()
		return domain.Order{}, ErrNotSignedIn
	}
	if s.cart.TotalItems() == 0 {
		s.notify.Error("Your cart is empty, add something first")
		return domain.Order{}, ErrEmptyCart
	}

	address, _ := domain.PickDefault(domain.DefaultAddresses())

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.api.Create(ctx, uid, "wechat", address)
	if err != nil {
		s.surface(err, "Could not create the order")
		return domain.Order{}, err
	}
	if order.Address == nil {
		// Backend may omit the snapshot; fall back to what we sent.
		addr := address
		order.Address = &addr
	}

	s.state.SetCurrentOrder(order)
	s.state.PrependOrder(order)
	s.cart.ClearCart()
	s.notify.Success("Order created, please pay")
	return order, nil
}

// Pay settles the current order. The server acknowledgment is held for
// the configured delay before local state flips to paid, so every
// confirmation observes at least that much processing time.
func (s *Service) Pay(ctx context.Context, paymentMethod string) (domain.Order, error) {
	order, ok := s.state.CurrentOrder()
	if !ok {
		return domain.Order{}, ErrNoCurrentOrder
	}
	if !order.Status.Payable() {
		s.notify.Error("This order has already been paid")
		return domain.Order{}, ErrNotPayable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.Pay(ctx, order.ID, paymentMethod); err != nil {
		s.surface(err, "Payment failed, please try again")
		return domain.Order{}, err
	}

	select {
	case <-time.After(s.payDelay):
	case <-ctx.Done():
		return domain.Order{}, ctx.Err()
	}

	order.Status = domain.StatusPaid
	order.PaymentMethod = paymentMethod
	s.state.SetCurrentOrder(order)
	s.state.PatchOrder(order)
	s.notify.Success("Payment successful")
	return order, nil
}

// Refresh replaces the order list for the current user, or clears it
// when signed out. Concurrent refreshes share one fetch. The fetch and
// its state write both happen under the mutex, so a refresh whose
// response is in flight when Pay patches locally can never apply its
// older snapshot on top of the payment.
func (s *Service) Refresh(ctx context.Context) error {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		s.state.ReplaceOrders(nil)
		return nil
	}

	_, err, _ := s.flight.Do(uid, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		orders, err := s.api.List(ctx, uid)
		if err != nil {
			s.log.Error("fetch orders", slog.Any("err", err))
			return nil, err
		}
		s.state.ReplaceOrders(orders)
		return nil, nil
	})
	return err
}

func (s *Service) surface(err error, fallback string) {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		s.notify.Error(apiErr.Detail)
		return
	}
	s.log.Error("order operation", slog.Any("err", err))
	s.notify.Error(fallback)
}
