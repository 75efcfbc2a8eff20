package domain

import "sort"

type Product struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	Image       string
	Images      []string
	Description string
	Rating      float64
	Sales       int
	Stock       int
	Specs       []string
}

type Banner struct {
	ID          string
	Title       string
	ImageURL    string
	Description string
	LinkURL     string
	SortOrder   int
}

type Category struct {
	ID        string
	Name      string
	SortOrder int
}

// Filter is the product listing query. Page is 1-based.
type Filter struct {
	Query    string
	Category string
	UserID   string
	Page     int
	Size     int
}

func (f Filter) Skip() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Size
}

// Page is one fetched slice of the catalog plus the backend's total count.
type Page struct {
	Items []Product
	Total int
}

type SortOption string

const (
	SortDefault   SortOption = "default"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortSales     SortOption = "sales"
	SortRating    SortOption = "rating"
)

// Sorted returns the products ordered by the given option. Sorting is a
// derived view over the fetched page; the input slice is not modified.
func Sorted(products []Product, opt SortOption) []Product {
	out := append([]Product(nil), products...)
	switch opt {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortSales:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Sales > out[j].Sales })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}
