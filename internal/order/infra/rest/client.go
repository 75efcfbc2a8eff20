package rest

import (
	"context"
	"net/url"

	"github.com/dwikikusuma/shopfront/internal/order/domain"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context, userID string) ([]domain.Order, error) {
	var wires []orderWire
	if err := c.api.Get(ctx, "/orders/"+url.PathEscape(userID), nil, &wires); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(wires))
	for _, w := range wires {
		orders = append(orders, w.toDomain())
	}
	return orders, nil
}

func (c *Client) Create(ctx context.Context, userID, paymentMethod string, address domain.Address) (domain.Order, error) {
	body := struct {
		PaymentMethod string      `json:"payment_method"`
		Address       addressWire `json:"address"`
	}{
		PaymentMethod: paymentMethod,
		Address:       addressToWire(address),
	}

	var w orderWire
	if err := c.api.Post(ctx, "/orders/"+url.PathEscape(userID), nil, body, &w); err != nil {
		return domain.Order{}, err
	}
	return w.toDomain(), nil
}

func (c *Client) Pay(ctx context.Context, orderID, paymentMethod string) error {
	q := url.Values{"payment_method": {paymentMethod}}
	return c.api.Post(ctx, "/orders/"+url.PathEscape(orderID)+"/pay", q, nil, nil)
}
