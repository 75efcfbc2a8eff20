package rest

import (
	"context"
	"net/url"

	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/favorite/domain"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

type favoriteWire struct {
	ID        int         `json:"id"`
	ProductID string      `json:"product_id"`
	Product   productWire `json:"product"`
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

func (c *Client) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	var wires []favoriteWire
	if err := c.api.Get(ctx, "/favorites/"+url.PathEscape(userID), nil, &wires); err != nil {
		return nil, err
	}

	favorites := make([]domain.Favorite, 0, len(wires))
	for _, w := range wires {
		favorites = append(favorites, domain.Favorite{
			ID:        w.ID,
			ProductID: w.ProductID,
			Product: catalog.Product{
				ID:          w.Product.ID,
				Name:        w.Product.Name,
				Price:       w.Product.Price,
				Category:    w.Product.Category,
				Image:       w.Product.Image,
				Images:      w.Product.Images,
				Description: w.Product.Description,
				Rating:      w.Product.Rating,
				Sales:       w.Product.Sales,
				Stock:       w.Product.Stock,
				Specs:       w.Product.Specs,
			},
		})
	}
	return favorites, nil
}

func (c *Client) Add(ctx context.Context, userID, productID string) error {
	body := struct {
		ProductID string `json:"product_id"`
	}{ProductID: productID}
	return c.api.Post(ctx, "/favorites/"+url.PathEscape(userID), nil, body, nil)
}

func (c *Client) Remove(ctx context.Context, userID, productID string) error {
	return c.api.Delete(ctx, "/favorites/"+url.PathEscape(userID)+"/"+url.PathEscape(productID))
}
