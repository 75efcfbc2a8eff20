package app

import (
	"context"

	"github.com/dwikikusuma/shopfront/internal/favorite/domain"
)

type FavoriteAPI interface {
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

type Session interface {
	CurrentUserID() (string, bool)
}

type Gate interface {
	RequestLogin()
}

type Sink interface {
	ReplaceFavorites(favorites []domain.Favorite)
}
