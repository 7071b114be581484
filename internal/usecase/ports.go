package usecase

import (
	"context"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

// StateStore is the durable key-value surface the stores snapshot into.
// Writes are synchronous and best-effort; a failed write must not unwind
// the in-memory mutation that triggered it.
type StateStore interface {
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)
	Write(ctx context.Context, key string, data []byte) error
}

// ProductFinder is the read-only catalog view handed to the cart layer.
// It deliberately has no way to mutate stock.
type ProductFinder interface {
	FindByID(id string) (domain.Product, bool)
}

// StockCatalog adds the stock decrement. Only the checkout engine holds
// this interface; everything else clamps against reads.
type StockCatalog interface {
	ProductFinder
	DecrementStock(id string, qty int) (domain.Product, bool)
}

// OrderArchive is an optional durable copy of completed orders, written
// best-effort after checkout commits.
type OrderArchive interface {
	Archive(ctx context.Context, o *domain.Order) error
}

// OrderEvents publishes order lifecycle events to interested consumers.
type OrderEvents interface {
	PublishCreated(ctx context.Context, msg OrderCreatedMsg) error
}

type OrderCreatedMsg struct {
	OrderID   string `json:"orderId"`
	UserID    string `json:"userId"`
	Total     string `json:"total"`
	ItemCount int    `json:"itemCount"`
	CreatedAt string `json:"createdAt"`
}
