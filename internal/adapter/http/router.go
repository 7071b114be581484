package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minh2003vt/OkiMart/internal/adapter/http/middleware"
)

func NewRouter(sf *StorefrontHandler, sh *SessionHandler, sess *middleware.Session, l *slog.Logger, rps float64, burst int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware(), middleware.RateLimit(rps, burst))

	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/store", sf.GetStore)
		v1.GET("/categories", sf.ListCategories)
		v1.GET("/products", sf.ListProducts)
		v1.GET("/products/:id", sf.GetProduct)

		v1.POST("/auth/register", sh.Register)
		v1.POST("/auth/login", sh.Login)
		v1.POST("/auth/logout", sh.Logout)

		v1.GET("/profile", sess.Require(), sh.GetProfile)
		v1.PATCH("/profile", sess.Require(), sh.UpdateProfile)

		// Guests keep a cart too; no session required here.
		v1.GET("/cart", sf.GetCart)
		v1.POST("/cart/items", sf.AddCartItem)
		v1.PATCH("/cart/items/:id", sf.SetCartItemQuantity)
		v1.POST("/cart/items/:id/decrement", sf.DecrementCartItem)
		v1.DELETE("/cart/items/:id", sf.RemoveCartItem)
		v1.DELETE("/cart", sf.ClearCart)

		v1.POST("/checkout", sf.Checkout)
		v1.GET("/orders", sess.Require(), sf.ListOrders)
	}

	return r
}
