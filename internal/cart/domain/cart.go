package domain

import catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"

// Item is one cart line. The backend owns the authoritative set; after
// any mutation the whole collection is re-fetched and replaced.
type Item struct {
	Product       catalog.Product
	Quantity      int
	SelectedSpecs map[string]string
}

func TotalItems(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func TotalAmount(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}
