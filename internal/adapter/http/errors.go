package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

// writeDomainError maps the core error taxonomy onto HTTP statuses. All
// of these are user-correctable input conditions; the message is safe to
// render as-is.
func writeDomainError(c *gin.Context, err error) {
	var (
		vErr  *domain.ValidationError
		aErr  *domain.AuthError
		oos   *domain.OutOfStockError
		inq   *domain.InvalidQuantityError
		insuf *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": vErr.Error(), "field": vErr.Field})
	case errors.As(err, &aErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth_error", "message": aErr.Error()})
	case errors.As(err, &oos):
		c.JSON(http.StatusConflict, gin.H{"error": "out_of_stock", "message": oos.Error(), "productId": oos.ProductID})
	case errors.As(err, &inq):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quantity", "message": inq.Error(), "productId": inq.ProductID})
	case errors.As(err, &insuf):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient_stock", "message": insuf.Error(), "productId": insuf.ProductID, "available": insuf.Available})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
