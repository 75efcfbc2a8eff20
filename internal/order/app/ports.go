package app

import (
	"context"

	"github.com/dwikikusuma/shopfront/internal/order/domain"
)

type OrderAPI interface {
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Create(ctx context.Context, userID, paymentMethod string, address domain.Address) (domain.Order, error)
	Pay(ctx context.Context, orderID, paymentMethod string) error
}

type Session interface {
	CurrentUserID() (string, bool)
}

type Gate interface {
	RequestLogin()
}

// Cart exposes the slice of cart state checkout depends on: the empty
// precondition and the local clear once the server has consumed it.
type Cart interface {
	TotalItems() int
	ClearCart()
}

// State is the view-owned order state. Creation prepends locally and
// payment patches the single order; the full list is only replaced by
// an explicit refresh.
type State interface {
	CurrentOrder() (domain.Order, bool)
	SetCurrentOrder(domain.Order)
	PrependOrder(domain.Order)
	PatchOrder(domain.Order)
	ReplaceOrders(orders []domain.Order)
}
