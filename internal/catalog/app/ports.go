package app

import (
	"context"

	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
)

type ProductReader interface {
	List(ctx context.Context, f domain.Filter) (domain.Page, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	RecordSearch(ctx context.Context, userID, keyword string) error
}

type BannerReader interface {
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}

type CategoryReader interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// Session resolves the signed-in user, if any.
type Session interface {
	CurrentUserID() (string, bool)
}

// Sink receives the authoritative product page once a fetch wins.
type Sink interface {
	ReplaceProducts(items []domain.Product, total int)
}
