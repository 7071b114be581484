package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

const orderStateKey = "okimart:orders"

// CheckoutEngine turns a validated line-item batch into an immutable
// order. It is the only component allowed to decrement catalog stock.
type CheckoutEngine struct {
	mu      sync.Mutex
	catalog StockCatalog
	state   StateStore
	archive OrderArchive
	events  OrderEvents
	log     *slog.Logger
	orders  []domain.Order
}

type CheckoutOption func(*CheckoutEngine)

func WithArchive(a OrderArchive) CheckoutOption {
	return func(e *CheckoutEngine) { e.archive = a }
}

func WithEvents(ev OrderEvents) CheckoutOption {
	return func(e *CheckoutEngine) { e.events = ev }
}

type orderState struct {
	Orders []domain.Order `json:"orders"`
}

func NewCheckoutEngine(ctx context.Context, catalog StockCatalog, state StateStore, log *slog.Logger, opts ...CheckoutOption) *CheckoutEngine {
	e := &CheckoutEngine{catalog: catalog, state: state, log: log}
	for _, opt := range opts {
		opt(e)
	}
	raw, ok, err := state.Read(ctx, orderStateKey)
	if err != nil {
		log.Warn("order log read failed, starting empty", "err", err)
		return e
	}
	if !ok {
		return e
	}
	var snap orderState
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Warn("order log malformed, starting empty", "err", err)
		return e
	}
	e.orders = snap.Orders
	return e
}

// Checkout validates every line against live catalog stock, then commits:
// stock decremented, order appended, order returned. Validation is
// all-or-nothing; a failing line leaves stock and the order log
// untouched. The caller clears the cart on success.
//
// Cart quantities were already clamped at add time, but stock can shrink
// between cart mutation and checkout, so nothing cached is trusted here.
func (e *CheckoutEngine) Checkout(ctx context.Context, userID string, lines []domain.LineItem) (*domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	live := make([]domain.Product, len(lines))
	for i, line := range lines {
		p, ok := e.catalog.FindByID(line.Product.ID)
		if !ok || p.Stock == 0 {
			name := line.Product.Name
			if ok {
				name = p.Name
			}
			return nil, &domain.OutOfStockError{ProductID: line.Product.ID, Name: name}
		}
		if line.Quantity <= 0 {
			return nil, &domain.InvalidQuantityError{ProductID: line.Product.ID, Quantity: line.Quantity}
		}
		if line.Quantity > p.Stock {
			return nil, &domain.InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: line.Quantity,
				Available: p.Stock,
			}
		}
		live[i] = p
	}

	total := decimal.Zero
	orderLines := make([]domain.OrderLine, len(lines))
	for i, line := range lines {
		lineTotal := live[i].Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		orderLines[i] = domain.OrderLine{
			Product:   live[i],
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		}
		total = total.Add(lineTotal)
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Lines:     orderLines,
		Total:     total,
		CreatedAt: time.Now(),
	}

	for _, line := range orderLines {
		e.catalog.DecrementStock(line.Product.ID, line.Quantity)
	}

	e.orders = append(e.orders, order)
	e.persist(ctx)
	e.afterCommit(ctx, &order)
	return &order, nil
}

// Orders returns the full order log, oldest first.
func (e *CheckoutEngine) Orders() []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Order, len(e.orders))
	copy(out, e.orders)
	return out
}

func (e *CheckoutEngine) OrdersForUser(userID string) []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []domain.Order
	for _, o := range e.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// persist snapshots the order log. Callers hold e.mu.
func (e *CheckoutEngine) persist(ctx context.Context) {
	raw, err := json.Marshal(orderState{Orders: e.orders})
	if err != nil {
		e.log.Warn("order log marshal failed", "err", err)
		return
	}
	if err := e.state.Write(ctx, orderStateKey, raw); err != nil {
		e.log.Warn("order log write failed", "err", err)
	}
}

// afterCommit runs the best-effort side channels. The order is already
// committed; failures here are logged and never surfaced.
func (e *CheckoutEngine) afterCommit(ctx context.Context, o *domain.Order) {
	if e.archive != nil {
		if err := e.archive.Archive(ctx, o); err != nil {
			e.log.Warn("order archive failed", "order_id", o.ID, "err", err)
		}
	}
	if e.events != nil {
		msg := OrderCreatedMsg{
			OrderID:   o.ID,
			UserID:    o.UserID,
			Total:     o.Total.String(),
			ItemCount: len(o.Lines),
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := e.events.PublishCreated(ctx, msg); err != nil {
			e.log.Warn("order event publish failed", "order_id", o.ID, "err", err)
		}
	}
}
