package rest

import (
	"time"

	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/order/domain"
)

// The backend speaks snake_case; the domain model speaks Go. Mapping in
// both directions lives here and nowhere else, and round-tripping a
// payload must preserve every field value.

type orderWire struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	UserID        string          `json:"user_id,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	TotalAmount   float64         `json:"total_amount"`
	CreateTime    string          `json:"create_time"`
	Status        string          `json:"status"`
	Address       *addressWire    `json:"address,omitempty"`
	Items         []orderItemWire `json:"items"`
}

type orderItemWire struct {
	ID        int         `json:"id,omitempty"`
	ProductID string      `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Price     float64     `json:"price"`
	Product   productWire `json:"product"`
}

type addressWire struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
	District  string `json:"district"`
	Detail    string `json:"detail"`
	IsDefault bool   `json:"is_default"`
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

// createTimeLayouts: the backend emits naive ISO 8601 timestamps; tests
// and future backends may send RFC 3339.
var createTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseCreateTime(s string) time.Time {
	for _, layout := range createTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatCreateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func (w orderWire) toDomain() domain.Order {
	items := make([]domain.Item, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, domain.Item{
			Product:  it.Product.toDomain(),
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	var address *domain.Address
	if w.Address != nil {
		a := w.Address.toDomain()
		address = &a
	}

	return domain.Order{
		ID:            w.ID,
		OrderNumber:   w.OrderNumber,
		Items:         items,
		Address:       address,
		PaymentMethod: w.PaymentMethod,
		TotalAmount:   w.TotalAmount,
		CreateTime:    parseCreateTime(w.CreateTime),
		Status:        domain.Status(w.Status),
	}
}

func orderToWire(o domain.Order) orderWire {
	items := make([]orderItemWire, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemWire{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Product:   productToWire(it.Product),
		})
	}

	var address *addressWire
	if o.Address != nil {
		a := addressToWire(*o.Address)
		address = &a
	}

	return orderWire{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		PaymentMethod: o.PaymentMethod,
		TotalAmount:   o.TotalAmount,
		CreateTime:    formatCreateTime(o.CreateTime),
		Status:        string(o.Status),
		Address:       address,
		Items:         items,
	}
}

func (w addressWire) toDomain() domain.Address {
	return domain.Address{
		ID:        w.ID,
		Name:      w.Name,
		Phone:     w.Phone,
		Province:  w.Province,
		City:      w.City,
		District:  w.District,
		Detail:    w.Detail,
		IsDefault: w.IsDefault,
	}
}

func addressToWire(a domain.Address) addressWire {
	return addressWire{
		ID:        a.ID,
		Name:      a.Name,
		Phone:     a.Phone,
		Province:  a.Province,
		City:      a.City,
		District:  a.District,
		Detail:    a.Detail,
		IsDefault: a.IsDefault,
	}
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

func productToWire(p catalog.Product) productWire {
	return productWire{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Images:      p.Images,
		Description: p.Description,
		Rating:      p.Rating,
		Sales:       p.Sales,
		Stock:       p.Stock,
		Specs:       p.Specs,
	}
}
