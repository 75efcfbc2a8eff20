package app

import (
	"context"

	"github.com/dwikikusuma/shopfront/internal/cart/domain"
)

type CartAPI interface {
	List(ctx context.Context, userID string) ([]domain.Item, error)
	Add(ctx context.Context, userID, productID string, quantity int, specs map[string]string) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
}

type Session interface {
	CurrentUserID() (string, bool)
}

// Gate surfaces the login prompt when an identity-gated intent is
// refused locally.
type Gate interface {
	RequestLogin()
}

// Sink receives the authoritative cart after every refetch.
type Sink interface {
	ReplaceCart(items []domain.Item)
}
