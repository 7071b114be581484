package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is an immutable line of a completed order. Product is a copy
// taken at purchase time, immune to later catalog changes.
type OrderLine struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Lines     []OrderLine     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}
