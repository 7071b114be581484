package catalog

import (
	"sort"
	"strings"
	"sync"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

// Catalog is the in-memory product lookup service. Reads return copies so
// callers can never reach the live stock counters; stock is only mutated
// through DecrementStock.
type Catalog struct {
	mu       sync.Mutex
	byID     map[string]*domain.Product
	ordered  []string
	cats     []domain.Category
	metadata domain.StoreInfo
}

func New(info domain.StoreInfo, cats []domain.Category, products []domain.Product) *Catalog {
	c := &Catalog{
		byID:     make(map[string]*domain.Product, len(products)),
		cats:     cats,
		metadata: info,
	}
	for i := range products {
		p := products[i]
		p.InStock = p.Stock > 0
		c.byID[p.ID] = &p
		c.ordered = append(c.ordered, p.ID)
	}
	return c
}

func (c *Catalog) Store() domain.StoreInfo { return c.metadata }

func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.cats))
	copy(out, c.cats)
	return out
}

func (c *Catalog) FindByID(id string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

// Search matches a normalized query against name, category name and
// description. An empty query returns the full catalog.
func (c *Catalog) Search(query string) []domain.Product {
	q := normalize(query)
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.Product
	for _, id := range c.ordered {
		p := c.byID[id]
		if q == "" || matches(p, q) {
			out = append(out, *p)
		}
	}
	return out
}

func (c *Catalog) ListByCategory(categoryID, query string) []domain.Product {
	all := c.Search(query)
	out := all[:0]
	for _, p := range all {
		if p.Category.ID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// DecrementStock reduces a product's stock by qty, floored at zero, and
// recomputes the in-stock flag. Returns the updated product copy.
func (c *Catalog) DecrementStock(id string, qty int) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.InStock = p.Stock > 0
	return *p, true
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func matches(p *domain.Product, q string) bool {
	haystack := normalize(p.Name) + " " + normalize(p.Category.Name) + " " + normalize(p.Description)
	return strings.Contains(haystack, q)
}

// SortedByPrice is a convenience for the UI's price-sorted listing.
func SortedByPrice(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price.LessThan(out[j].Price)
	})
	return out
}
