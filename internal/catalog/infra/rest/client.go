package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dwikikusuma/shopfront/internal/catalog/app"
	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
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

func (w productWire) toDomain() domain.Product {
	return domain.Product{
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

// List fetches one catalog page. The backend answers either a paginated
// {items, total} envelope or a bare array; both shapes are accepted.
func (c *Client) List(ctx context.Context, f domain.Filter) (domain.Page, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.UserID != "" {
		q.Set("user_id", f.UserID)
	}
	q.Set("skip", strconv.Itoa(f.Skip()))
	q.Set("limit", strconv.Itoa(f.Size))

	var raw json.RawMessage
	if err := c.api.Get(ctx, "/products/", q, &raw); err != nil {
		return domain.Page{}, err
	}

	var envelope struct {
		Items []productWire `json:"items"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Items != nil {
		return domain.Page{Items: mapProducts(envelope.Items), Total: envelope.Total}, nil
	}

	var bare []productWire
	if err := json.Unmarshal(raw, &bare); err != nil {
		return domain.Page{}, fmt.Errorf("unexpected products payload: %w", err)
	}
	return domain.Page{Items: mapProducts(bare), Total: len(bare)}, nil
}

func (c *Client) Get(ctx context.Context, id string) (domain.Product, error) {
	var w productWire
	if err := c.api.Get(ctx, "/products/"+url.PathEscape(id), nil, &w); err != nil {
		if apiErr, ok := err.(*rest.APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			return domain.Product{}, app.ErrNotFound
		}
		return domain.Product{}, err
	}
	return w.toDomain(), nil
}

func (c *Client) RecordSearch(ctx context.Context, userID, keyword string) error {
	q := url.Values{
		"keyword": {keyword},
		"user_id": {userID},
	}
	return c.api.Post(ctx, "/products/search-history", q, nil, nil)
}

type bannerWire struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url"`
	SortOrder   int    `json:"sort_order"`
}

func (c *Client) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	var wires []bannerWire
	if err := c.api.Get(ctx, "/banners/", nil, &wires); err != nil {
		return nil, err
	}
	banners := make([]domain.Banner, 0, len(wires))
	for _, w := range wires {
		banners = append(banners, domain.Banner{
			ID:          w.ID,
			Title:       w.Title,
			ImageURL:    w.ImageURL,
			Description: w.Description,
			LinkURL:     w.LinkURL,
			SortOrder:   w.SortOrder,
		})
	}
	return banners, nil
}

type categoryWire struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var wires []categoryWire
	if err := c.api.Get(ctx, "/categories/", nil, &wires); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, domain.Category{ID: w.ID, Name: w.Name, SortOrder: w.SortOrder})
	}
	return categories, nil
}

func mapProducts(wires []productWire) []domain.Product {
	items := make([]domain.Product, 0, len(wires))
	for _, w := range wires {
		items = append(items, w.toDomain())
	}
	return items
}
