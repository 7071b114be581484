package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    Category        `json:"category"`
	InStock     bool            `json:"inStock"`
	Emoji       string          `json:"emoji,omitempty"`
	Description string          `json:"description,omitempty"`
}

// StoreInfo is the storefront header metadata shown to the UI.
type StoreInfo struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviewCount"`
	Address      string  `json:"address"`
	DeliveryTime string  `json:"deliveryTime"`
	MinimumOrder int     `json:"minimumOrder"`
}
