package domain

import (
	"time"

	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
)

var statusRank = map[Status]int{
	StatusPending:   0,
	StatusPaid:      1,
	StatusShipped:   2,
	StatusCompleted: 3,
}

// CanBecome reports whether next is a forward transition. Order status
// only ever moves pending -> paid -> shipped -> completed.
func (s Status) CanBecome(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Payable reports whether the pay action applies.
func (s Status) Payable() bool {
	return s == StatusPending
}

type Item struct {
	Product  catalog.Product
	Quantity int
	Price    float64
}

type Address struct {
	ID        string
	Name      string
	Phone     string
	Province  string
	City      string
	District  string
	Detail    string
	IsDefault bool
}

// Order is a server-created purchase. Address is nil when the backend
// omitted the shipping snapshot; the presentation layer then shows the
// address section as unavailable rather than inventing one.
type Order struct {
	ID            string
	OrderNumber   string
	Items         []Item
	Address       *Address
	PaymentMethod string
	TotalAmount   float64
	CreateTime    time.Time
	Status        Status
}

// DefaultAddresses is the locally defined address book. It is not
// fetched from the backend; checkout snapshots one of these entries
// into the created order.
func DefaultAddresses() []Address {
	return []Address{
		{
			ID:        "1",
			Name:      "Zhang San",
			Phone:     "138****8888",
			Province:  "Guangdong",
			City:      "Shenzhen",
			District:  "Nanshan",
			Detail:    "Keyuan Road, Hi-Tech Park",
			IsDefault: true,
		},
		{
			ID:        "2",
			Name:      "Li Si",
			Phone:     "139****6666",
			Province:  "Beijing",
			City:      "Beijing",
			District:  "Chaoyang",
			Detail:    "Jianguo Road, Building 2",
			IsDefault: false,
		},
	}
}

// PickDefault returns the address flagged as default, falling back to
// the first entry.
func PickDefault(book []Address) (Address, bool) {
	if len(book) == 0 {
		return Address{}, false
	}
	for _, a := range book {
		if a.IsDefault {
			return a, true
		}
	}
	return book[0], true
}
