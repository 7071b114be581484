package catalog

import (
	"github.com/shopspring/decimal"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

var seedStore = domain.StoreInfo{
	ID:           "1",
	Name:         "Oki Mart",
	Rating:       4.6,
	ReviewCount:  1000,
	Address:      "16-7 Jungangsijang-ro",
	DeliveryTime: "2 Hours",
	MinimumOrder: 0,
}

var seedCategories = []domain.Category{
	{ID: "1", Name: "Produce"},
	{ID: "2", Name: "Meat"},
	{ID: "3", Name: "Daily Essentials"},
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProducts() []domain.Product {
	produce, meat, daily := seedCategories[0], seedCategories[1], seedCategories[2]
	return []domain.Product{
		{ID: "1", Name: "Avocado", Price: price("5.99"), Stock: 12, Category: produce, Emoji: "🥑"},
		{ID: "2", Name: "Lettuce", Price: price("1.99"), Stock: 30, Category: produce},
		{ID: "3", Name: "Bananas", Price: price("0.99"), Stock: 48, Category: produce},
		{ID: "9", Name: "Tomatoes", Price: price("2.49"), Stock: 25, Category: produce},
		{ID: "10", Name: "Cucumber", Price: price("1.29"), Stock: 20, Category: produce},
		{ID: "11", Name: "Onion", Price: price("0.79"), Stock: 40, Category: produce},
		{ID: "4", Name: "Chicken", Price: price("8.99"), Stock: 15, Category: meat},
		{ID: "5", Name: "Beef", Price: price("12.99"), Stock: 10, Category: meat},
		{ID: "6", Name: "Pork", Price: price("9.99"), Stock: 10, Category: meat},
		{ID: "12", Name: "Turkey", Price: price("10.49"), Stock: 8, Category: meat},
		{ID: "13", Name: "Lamb", Price: price("14.99"), Stock: 6, Category: meat},
		{ID: "7", Name: "Milk 1L", Price: price("3.50"), Stock: 36, Category: daily},
		{ID: "8", Name: "Bread", Price: price("2.80"), Stock: 24, Category: daily},
		{ID: "14", Name: "Eggs 12ct", Price: price("4.20"), Stock: 18, Category: daily},
		{ID: "15", Name: "Butter", Price: price("3.10"), Stock: 16, Category: daily},
	}
}

// NewSeeded builds the Oki Mart catalog with its stock levels.
func NewSeeded() *Catalog {
	return New(seedStore, seedCategories, seedProducts())
}
