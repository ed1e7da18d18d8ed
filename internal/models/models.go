package models

import "github.com/shopspring/decimal"

// Prices go out as JSON numbers, matching the catalog feed.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Image holds the responsive variants of a product picture.
type Image struct {
	Thumbnail string `json:"thumbnail"`
	Mobile    string `json:"mobile"`
	Tablet    string `json:"tablet"`
	Desktop   string `json:"desktop"`
}

// Product is a catalog record. It is never mutated after loading.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Image    Image           `json:"image"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity for the line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type SummaryLine struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartSummary is the derived read model of the cart.
type CartSummary struct {
	Lines []SummaryLine   `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
	Units int             `json:"units"`
}

type CartResponse struct {
	Cart      CartSummary `json:"cart"`
	OrderOpen bool        `json:"order_open"`
}
