package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"servicehub/database/repository"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/cart"
	"servicehub/services/scheduling"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Sync  *cart.SyncResult  `json:"sync"`
}

type staticCatalog map[string]models.ServiceItem

func (s staticCatalog) GetByID(id string) (models.ServiceItem, bool) {
	item, ok := s[id]
	return item, ok
}

// unreachableStorage fails every load and counts writes.
type unreachableStorage struct{ saves int }

func (u *unreachableStorage) Load(context.Context, string) ([]models.CartItem, error) {
	return nil, errors.New("connection refused")
}

func (u *unreachableStorage) Save(context.Context, string, []models.CartItem) error {
	u.saves++
	return nil
}

func newCartRouter(t *testing.T) (*gin.Engine, string) {
	return newCartRouterWith(t, repository.NewMemoryCartStorage())
}

func newCartRouterWith(t *testing.T, storage repository.CartStorage) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	carts := cart.NewRegistry(storage)
	h := NewCartHandler(carts)
	catalog := staticCatalog{"svc-1": {ID: "svc-1", Title: "Deep House Cleaning", OncePrice: 80, HourlyPrice: 25}}
	clock := func() time.Time { return time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC) }
	sh := NewScheduleHandler(scheduling.NewScheduler(catalog, 14, clock), carts)

	r := gin.New()
	api := r.Group("/api", middleware.JWTAuthMiddleware())
	api.GET("/cart", h.Get)
	api.POST("/cart/items", h.AddOrUpdate)
	api.PATCH("/cart/items/:id/quantity", h.UpdateQuantity)
	api.DELETE("/cart/items/:id", h.Remove)
	api.DELETE("/cart", h.Clear)
	api.POST("/schedule/confirm", sh.Confirm)

	token, err := utils.GenerateToken("user-1", "+15550100", time.Hour)
	require.NoError(t, err)
	return r, token
}

func call(t *testing.T, r *gin.Engine, token, method, path, body string) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out cartResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestCartHandler_Flow(t *testing.T) {
	r, token := newCartRouter(t)

	w, out := call(t, r, token, http.MethodPost, "/api/cart/items", `{"id":"a","title":"Plumbing","price":50}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.Items[0].Quantity)
	require.NotNil(t, out.Sync)
	assert.True(t, out.Sync.Persisted)

	_, out = call(t, r, token, http.MethodPost, "/api/cart/items", `{"id":"a","note":"gate code 12"}`)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Plumbing", out.Items[0].Title, "patch keeps untouched fields")
	assert.Equal(t, "gate code 12", out.Items[0].Note)

	_, out = call(t, r, token, http.MethodPatch, "/api/cart/items/a/quantity", `{"quantity":3}`)
	assert.Equal(t, 150.0, out.Total)

	w, _ = call(t, r, token, http.MethodPatch, "/api/cart/items/a/quantity", `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = call(t, r, token, http.MethodPatch, "/api/cart/items/missing/quantity", `{"quantity":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, out = call(t, r, token, http.MethodDelete, "/api/cart/items/a", "")
	assert.Empty(t, out.Items)
}

func TestCartHandler_AddRejectsNonPositiveQuantity(t *testing.T) {
	r, token := newCartRouter(t)

	for _, body := range []string{`{"id":"a","quantity":0}`, `{"id":"a","quantity":-3}`} {
		w, _ := call(t, r, token, http.MethodPost, "/api/cart/items", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	_, out := call(t, r, token, http.MethodGet, "/api/cart", "")
	assert.Empty(t, out.Items)

	w, out := call(t, r, token, http.MethodPost, "/api/cart/items", `{"id":"a","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, out.Items[0].Quantity)
}

func TestCartHandler_UnloadableCartIsUnavailable(t *testing.T) {
	storage := &unreachableStorage{}
	r, token := newCartRouterWith(t, storage)

	w, _ := call(t, r, token, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w, _ = call(t, r, token, http.MethodPost, "/api/cart/items", `{"id":"a"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w, _ = call(t, r, token, http.MethodDelete, "/api/cart", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w, _ = call(t, r, token, http.MethodPost, "/api/schedule/confirm",
		`{"serviceId":"svc-1","date":"2025-06-05","time":"10:00 AM"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	assert.Zero(t, storage.saves)
}

func TestCartHandler_RequiresAuth(t *testing.T) {
	r, _ := newCartRouter(t)
	w, _ := call(t, r, "", http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartHandler_PerUser(t *testing.T) {
	r, token := newCartRouter(t)
	other, err := utils.GenerateToken("user-2", "+15550101", time.Hour)
	require.NoError(t, err)

	call(t, r, token, http.MethodPost, "/api/cart/items", `{"id":"a","price":10}`)
	_, out := call(t, r, other, http.MethodGet, "/api/cart", "")
	assert.Empty(t, out.Items)
}

func TestScheduleConfirm_WritesCart(t *testing.T) {
	r, token := newCartRouter(t)

	w, _ := call(t, r, token, http.MethodPost, "/api/schedule/confirm",
		`{"serviceId":"svc-1","date":"2025-06-05","time":"10:00 AM","pricingMode":"hourly"}`)
	require.Equal(t, http.StatusOK, w.Code)

	_, out := call(t, r, token, http.MethodGet, "/api/cart", "")
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Jun 5, 2025", out.Items[0].Date)
	assert.Equal(t, 25.0, out.Items[0].Price)

	w, _ = call(t, r, token, http.MethodPost, "/api/schedule/confirm", `{"serviceId":"svc-1","date":"2025-06-05"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w, _ = call(t, r, token, http.MethodPost, "/api/schedule/confirm", `{"serviceId":"nope","date":"2025-06-05","time":"10:00 AM"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
