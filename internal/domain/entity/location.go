package entity

import "time"

// DefaultArea store area of a location nobody has filled in yet
const DefaultArea = 50

// Product catalog entry of a single location
type Product struct {
	Name          string  `json:"-"`
	Cost          float64 `json:"cost"`
	Price         float64 `json:"price"`
	Dimension     float64 `json:"dimension"` // m2 per unit
	ShelfLifeDays int     `json:"shelf_life_days"`
}

// Location simulated retail outlet
type Location struct {
	Name             string             `json:"name"`
	Area             float64            `json:"area"`
	RentalCost       float64            `json:"rental_cost"`
	OverflowFee      float64            `json:"overflow_fee"`
	Products         map[string]Product `json:"products"`
	CustomerSegments map[string]int     `json:"customer_segments"`
	Applied          bool               `json:"applied"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewLocation fresh location with the default area
func NewLocation(name string) Location {
	return Location{
		Name:             name,
		Area:             DefaultArea,
		Products:         make(map[string]Product),
		CustomerSegments: make(map[string]int),
	}
}

// Product returns the named catalog entry, zero valued when absent
func (l Location) Product(name string) Product {
	p, ok := l.Products[name]
	if !ok {
		return Product{Name: name}
	}
	p.Name = name
	return p
}

// Clone deep copy, so callers never share the catalog maps with the store
func (l Location) Clone() Location {
	out := l
	out.Products = make(map[string]Product, len(l.Products))
	for k, v := range l.Products {
		out.Products[k] = v
	}
	out.CustomerSegments = make(map[string]int, len(l.CustomerSegments))
	for k, v := range l.CustomerSegments {
		out.CustomerSegments[k] = v
	}
	return out
}
