package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	Products    *ProductHandler
	Checkout    *CheckoutHandler
	Webhooks    *WebhookHandler
	Lootboxes   *LootboxHandler
	Profiles    *ProfileHandler
	Trades      *TradeHandler
	Leaderboard *LeaderboardHandler
}

// NewRouter mounts the full API surface. The payment webhook is the only
// route outside the rate limiter; the provider's retries must always land.
func NewRouter(h Handlers, jwtSecret string, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/webhooks/payment", h.Webhooks.Payment)

	limited := api.Group("")
	limited.Use(limiter.Limit())
	{
		limited.POST("/auth/signup", h.Auth.Signup)
		limited.POST("/auth/login", h.Auth.Login)

		limited.GET("/products", h.Products.List)
		limited.GET("/products/:slug", h.Products.Get)
		limited.GET("/leaderboard", h.Leaderboard.Top)
		limited.GET("/profile/:id/inventory", h.Profiles.Inventory)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(jwtSecret), limiter.Limit())
	{
		authed.POST("/checkout", h.Checkout.Product)
		authed.POST("/lootboxes/checkout", h.Checkout.Lootboxes)
		authed.GET("/payments/:order_id", h.Webhooks.Status)

		authed.POST("/lootboxes/open", h.Lootboxes.Open)
		authed.GET("/lootboxes", h.Lootboxes.Counts)

		authed.POST("/profile", h.Profiles.Update)
		authed.POST("/purchases/:id/highlight", h.Profiles.ToggleHighlight)

		authed.POST("/trades", h.Trades.Create)
		authed.GET("/trades", h.Trades.List)
		authed.GET("/trades/:id", h.Trades.Get)
		authed.POST("/trades/:id/respond", h.Trades.Respond)
	}

	return r
}
