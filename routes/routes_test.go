package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"servicehub/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes_MountsConfiguredHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Cart:    handlers.NewCartHandler(nil),
		Booking: handlers.NewBookingHandler(nil, nil),
	})

	mounted := map[string]bool{}
	for _, rt := range r.Routes() {
		mounted[rt.Method+" "+rt.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"GET /api/cart",
		"POST /api/cart/items",
		"PATCH /api/cart/items/:id/quantity",
		"POST /api/bookings/checkout",
		"POST /api/bookings/:id/:action",
	} {
		assert.True(t, mounted[want], want)
	}
	assert.False(t, mounted["POST /api/ai/chat"], "nil handlers stay unmounted")
}

func TestRegisterRoutes_ProtectedWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{Cart: handlers.NewCartHandler(nil)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
