package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

const cartStateKey = "okimart:cart"

// OwnerSource is the one thing the cart needs from the identity layer:
// whose cart is visible right now.
type OwnerSource interface {
	OwnerKey() domain.OwnerKey
}

// CartStore keeps one cart per owner. Switching the active identity
// switches which mapping is visible; the others stay in storage
// untouched. Quantities are clamped against live stock, never rejected.
type CartStore struct {
	mu       sync.Mutex
	state    StateStore
	owner    OwnerSource
	products ProductFinder
	log      *slog.Logger
	carts    map[domain.OwnerKey]map[string]domain.CartItem
}

type cartState struct {
	Carts map[domain.OwnerKey]map[string]domain.CartItem `json:"carts"`
}

func NewCartStore(ctx context.Context, state StateStore, owner OwnerSource, products ProductFinder, log *slog.Logger) *CartStore {
	s := &CartStore{
		state:    state,
		owner:    owner,
		products: products,
		log:      log,
		carts:    make(map[domain.OwnerKey]map[string]domain.CartItem),
	}
	raw, ok, err := state.Read(ctx, cartStateKey)
	if err != nil {
		log.Warn("cart state read failed, starting empty", "err", err)
		return s
	}
	if !ok {
		return s
	}
	var snap cartState
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Warn("cart state malformed, starting empty", "err", err)
		return s
	}
	for owner, items := range snap.Carts {
		cart := make(map[string]domain.CartItem, len(items))
		for id, it := range items {
			if it.Quantity > 0 {
				cart[id] = it
			}
		}
		if len(cart) > 0 {
			s.carts[owner] = cart
		}
	}
	return s
}

// active returns the visible cart, creating the mapping lazily.
// Callers hold s.mu.
func (s *CartStore) active() map[string]domain.CartItem {
	key := s.owner.OwnerKey()
	cart, ok := s.carts[key]
	if !ok {
		cart = make(map[string]domain.CartItem)
		s.carts[key] = cart
	}
	return cart
}

// Add puts qty more of product into the visible cart, clamped to the
// product's stock. Out-of-stock products are ignored. Never errors; the
// checkout engine gives the authoritative verdict later.
func (s *CartStore) Add(ctx context.Context, product domain.Product, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.Stock <= 0 {
		return
	}
	cart := s.active()
	desired := cart[product.ID].Quantity + qty
	if desired > product.Stock {
		desired = product.Stock
	}
	if desired <= 0 {
		delete(cart, product.ID)
	} else {
		cart[product.ID] = domain.CartItem{Product: product, Quantity: desired}
	}
	s.persist(ctx)
}

func (s *CartStore) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active(), productID)
	s.persist(ctx)
}

func (s *CartStore) Decrement(ctx context.Context, productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.active()
	it, ok := cart[productID]
	if !ok {
		return
	}
	it.Quantity -= qty
	if it.Quantity <= 0 {
		delete(cart, productID)
	} else {
		cart[productID] = it
	}
	s.persist(ctx)
}

// SetQuantity replaces the stored quantity, clamped to current catalog
// stock. It only adjusts lines that already exist; it will not
// materialize a cart line for an item that was never added.
func (s *CartStore) SetQuantity(ctx context.Context, productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.active()
	it, ok := cart[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		delete(cart, productID)
		s.persist(ctx)
		return
	}
	stock := it.Product.Stock
	if live, ok := s.products.FindByID(productID); ok {
		stock = live.Stock
	}
	if qty > stock {
		qty = stock
	}
	if qty <= 0 {
		delete(cart, productID)
	} else {
		it.Quantity = qty
		cart[productID] = it
	}
	s.persist(ctx)
}

func (s *CartStore) GetQuantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[s.owner.OwnerKey()][productID].Quantity
}

// Clear empties the visible cart only; other owners' carts are untouched.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, s.owner.OwnerKey())
	s.persist(ctx)
}

func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.carts[s.owner.OwnerKey()] {
		n += it.Quantity
	}
	return n
}

// Total sums price×quantity over the snapshots held at add time. It does
// not consult the catalog, so it reflects price-at-add-time until the
// cart is cleared or the line is re-added.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.carts[s.owner.OwnerKey()] {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Items returns the visible cart's lines sorted by product id.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.carts[s.owner.OwnerKey()]
	out := make([]domain.CartItem, 0, len(cart))
	for _, it := range cart {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.ID < out[j].Product.ID })
	return out
}

// persist snapshots every owner's cart. Callers hold s.mu.
func (s *CartStore) persist(ctx context.Context) {
	raw, err := json.Marshal(cartState{Carts: s.carts})
	if err != nil {
		s.log.Warn("cart state marshal failed", "err", err)
		return
	}
	if err := s.state.Write(ctx, cartStateKey, raw); err != nil {
		s.log.Warn("cart state write failed", "err", err)
	}
}
