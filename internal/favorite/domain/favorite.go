package domain

import catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"

// Favorite is one membership entry in the user's favorites set. Only
// membership matters; the backend gives no ordering guarantee.
type Favorite struct {
	ID        int
	ProductID string
	Product   catalog.Product
}

func IDSet(favorites []Favorite) map[string]bool {
	set := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		set[f.ProductID] = true
	}
	return set
}
