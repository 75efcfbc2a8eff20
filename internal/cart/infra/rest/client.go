package rest

import (
	"context"
	"net/url"

	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/cart/domain"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

type itemWire struct {
	ID            int               `json:"id"`
	ProductID     string            `json:"product_id"`
	Quantity      int               `json:"quantity"`
	SelectedSpecs map[string]string `json:"selected_specs,omitempty"`
	Product       productWire       `json:"product"`
}

type productWire struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Sales       int      `json:"sales"`
	Stock       int      `json:"stock"`
	Specs       []string `json:"specs,omitempty"`
}

func (w productWire) toDomain() catalog.Product {
	return catalog.Product{
		ID:          w.ID,
		Name:        w.Name,
		Price:       w.Price,
		Category:    w.Category,
		Image:       w.Image,
		Images:      w.Images,
		Description: w.Description,
		Rating:      w.Rating,
		Sales:       w.Sales,
		Stock:       w.Stock,
		Specs:       w.Specs,
	}
}

func (c *Client) List(ctx context.Context, userID string) ([]domain.Item, error) {
	var wires []itemWire
	if err := c.api.Get(ctx, "/cart/"+url.PathEscape(userID), nil, &wires); err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(wires))
	for _, w := range wires {
		items = append(items, domain.Item{
			Product:       w.Product.toDomain(),
			Quantity:      w.Quantity,
			SelectedSpecs: w.SelectedSpecs,
		})
	}
	return items, nil
}

func (c *Client) Add(ctx context.Context, userID, productID string, quantity int, specs map[string]string) error {
	body := struct {
		ProductID     string            `json:"product_id"`
		Quantity      int               `json:"quantity"`
		SelectedSpecs map[string]string `json:"selected_specs"`
	}{
		ProductID:     productID,
		Quantity:      quantity,
		SelectedSpecs: specs,
	}
	return c.api.Post(ctx, "/cart/"+url.PathEscape(userID), nil, body, nil)
}

func (c *Client) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.api.Put(ctx, "/cart/"+url.PathEscape(userID)+"/"+url.PathEscape(productID), body, nil)
}

func (c *Client) Remove(ctx context.Context, userID, productID string) error {
	return c.api.Delete(ctx, "/cart/"+url.PathEscape(userID)+"/"+url.PathEscape(productID))
}
