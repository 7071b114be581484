package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minh2003vt/OkiMart/internal/adapter/http/middleware"
	"github.com/minh2003vt/OkiMart/internal/catalog"
	domain "github.com/minh2003vt/OkiMart/internal/entity"
	"github.com/minh2003vt/OkiMart/internal/usecase"
)

type StorefrontHandler struct {
	catalog  *catalog.Catalog
	ids      *usecase.IdentityStore
	cart     *usecase.CartStore
	checkout *usecase.CheckoutEngine
}

func NewStorefrontHandler(cat *catalog.Catalog, ids *usecase.IdentityStore, cart *usecase.CartStore, ce *usecase.CheckoutEngine) *StorefrontHandler {
	return &StorefrontHandler{catalog: cat, ids: ids, cart: cart, checkout: ce}
}

// --- catalog ---

func (h *StorefrontHandler) GetStore(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Store())
}

func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	q := c.Query("q")
	var products []domain.Product
	if categoryID := c.Query("category"); categoryID != "" {
		products = h.catalog.ListByCategory(categoryID, q)
	} else {
		products = h.catalog.Search(q)
	}
	if c.Query("sort") == "price" {
		products = catalog.SortedByPrice(products)
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.FindByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// --- cart ---

type addItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *StorefrontHandler) cartSummary() gin.H {
	return gin.H{
		"items":     h.cart.Items(),
		"itemCount": h.cart.ItemCount(),
		"total":     h.cart.Total(),
	}
}

func (h *StorefrontHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartSummary())
}

func (h *StorefrontHandler) AddCartItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, ok := h.catalog.FindByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	h.cart.Add(c.Request.Context(), p, req.Quantity)
	c.JSON(http.StatusOK, h.cartSummary())
}

func (h *StorefrontHandler) SetCartItemQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	h.cart.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, h.cartSummary())
}

func (h *StorefrontHandler) DecrementCartItem(c *gin.Context) {
	h.cart.Decrement(c.Request.Context(), c.Param("id"), 1)
	c.JSON(http.StatusOK, h.cartSummary())
}

func (h *StorefrontHandler) RemoveCartItem(c *gin.Context) {
	h.cart.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.cartSummary())
}

func (h *StorefrontHandler) ClearCart(c *gin.Context) {
	h.cart.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// --- checkout / orders ---

// Checkout proposes the current cart as line items. On success the cart
// is cleared here, per the engine's caller contract.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	items := h.cart.Items()
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart"})
		return
	}
	lines := make([]domain.LineItem, len(items))
	for i, it := range items {
		lines[i] = domain.LineItem{Product: it.Product, Quantity: it.Quantity}
	}

	userID := ""
	if u, ok := h.ids.Current(); ok {
		userID = u.ID
	}

	order, err := h.checkout.Checkout(c.Request.Context(), userID, lines)
	if err != nil {
		middleware.CheckoutOutcomes.WithLabelValues(outcomeLabel(err)).Inc()
		writeDomainError(c, err)
		return
	}
	middleware.CheckoutOutcomes.WithLabelValues("completed").Inc()
	h.cart.Clear(c.Request.Context())
	c.JSON(http.StatusCreated, order)
}

func outcomeLabel(err error) string {
	var (
		oos   *domain.OutOfStockError
		inq   *domain.InvalidQuantityError
		insuf *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &oos):
		return "out_of_stock"
	case errors.As(err, &inq):
		return "invalid_quantity"
	case errors.As(err, &insuf):
		return "insufficient_stock"
	default:
		return "error"
	}
}

func (h *StorefrontHandler) ListOrders(c *gin.Context) {
	u, ok := h.ids.Current()
	if !ok || u.ID != middleware.SessionUserID(c) {
		writeDomainError(c, &domain.AuthError{Reason: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": h.checkout.OrdersForUser(u.ID)})
}
