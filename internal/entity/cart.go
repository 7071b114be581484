package domain

import "github.com/shopspring/decimal"

// CartItem holds the product as it looked when it was added. Totals are
// computed from this snapshot, so a later price change does not silently
// reprice a cart that is already filled.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (it CartItem) LineTotal() decimal.Decimal {
	return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// LineItem is a (product, quantity) pair proposed for purchase.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
