package handlers

import (
	"errors"
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/cart"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	Carts *cart.Registry
}

func NewCartHandler(carts *cart.Registry) *CartHandler {
	return &CartHandler{Carts: carts}
}

// userCart loads the caller's cart. When the stored cart cannot be loaded it
// answers 503 and reports false; callers must not touch the cart then.
func userCart(c *gin.Context, carts *cart.Registry) (*cart.Store, bool) {
	s, err := carts.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusServiceUnavailable, "cart temporarily unavailable", err)
		return nil, false
	}
	return s, true
}

func cartBody(items []models.CartItem, sync *cart.SyncResult) gin.H {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	body := gin.H{"items": items, "total": total}
	if sync != nil {
		body["sync"] = sync
	}
	return body
}

func logSync(c *gin.Context, sync cart.SyncResult) {
	if !sync.Persisted {
		getLogger(c).Warn("Cart change not persisted", zap.Int("attempts", sync.Attempts), zap.Error(sync.Err))
	}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	s, ok := userCart(c, h.Carts)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartBody(s.Items(), nil))
}

// AddOrUpdate handles POST /api/cart/items.
func (h *CartHandler) AddOrUpdate(c *gin.Context) {
	var patch models.CartItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if patch.PricingMode != nil && !patch.PricingMode.Valid() {
		fail(c, http.StatusBadRequest, "invalid pricing mode", nil)
		return
	}
	if patch.Quantity != nil && *patch.Quantity < 1 {
		fail(c, http.StatusBadRequest, "quantity must be at least 1", nil)
		return
	}

	s, ok := userCart(c, h.Carts)
	if !ok {
		return
	}
	item, sync, err := s.AddOrUpdate(c.Request.Context(), patch)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid cart item", err)
		return
	}
	logSync(c, sync)
	body := cartBody(s.Items(), &sync)
	body["item"] = item
	c.JSON(http.StatusOK, body)
}

// UpdateQuantity handles PATCH /api/cart/items/:id/quantity.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Quantity < 1 {
		fail(c, http.StatusBadRequest, "quantity must be at least 1", nil)
		return
	}

	s, ok := userCart(c, h.Carts)
	if !ok {
		return
	}
	sync, err := s.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	if errors.Is(err, cart.ErrItemNotFound) {
		fail(c, http.StatusNotFound, "cart item not found", err)
		return
	}
	logSync(c, sync)
	c.JSON(http.StatusOK, cartBody(s.Items(), &sync))
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	s, ok := userCart(c, h.Carts)
	if !ok {
		return
	}
	sync := s.Remove(c.Request.Context(), c.Param("id"))
	logSync(c, sync)
	c.JSON(http.StatusOK, cartBody(s.Items(), &sync))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	s, ok := userCart(c, h.Carts)
	if !ok {
		return
	}
	sync := s.Clear(c.Request.Context())
	logSync(c, sync)
	c.JSON(http.StatusOK, cartBody(s.Items(), &sync))
}
