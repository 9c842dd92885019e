package handlers

import (
	"errors"
	"net/http"
	"strings"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	Svc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// categoryParams splits ?category=a,b (repeatable) into ids.
func categoryParams(c *gin.Context) []string {
	var out []string
	for _, raw := range c.QueryArray("category") {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.Categories())
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	cat, ok := h.Svc.GetCategoryByID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "category not found", nil)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CatalogHandler) ListSubcategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.GetSubcategoriesByCategory(c.Param("id")))
}

func (h *CatalogHandler) ListCategoryServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.GetServicesByCategory(c.Param("id")))
}

// ListServices handles GET /api/catalog/services?q=&category=.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.Filter(c.Query("q"), categoryParams(c)))
}

// Explore handles GET /api/catalog/explore?q=&category=, ranked by relevance.
func (h *CatalogHandler) Explore(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.Explore(c.Query("q"), categoryParams(c)))
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, ok := h.Svc.GetByID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "service not found", nil)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.Svc.Refresh(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, "failed to refresh catalog", err)
		return
	}
	getLogger(c).Info("Catalog refreshed", zap.String("userId", middleware.UserID(c)))
	c.JSON(http.StatusOK, gin.H{"services": len(h.Svc.Services()), "categories": len(h.Svc.Categories())})
}

// Publish handles POST /api/catalog/services. The caller becomes the provider.
func (h *CatalogHandler) Publish(c *gin.Context) {
	var req struct {
		catalog.PublishRequest
		Provider models.ProviderSummary `json:"provider"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	req.Provider.ID = middleware.UserID(c)

	item, err := h.Svc.Publish(c.Request.Context(), req.Provider, req.PublishRequest)
	var missing *catalog.MissingFieldError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "missing required field", "field": missing.Field, "message": err.Error()})
	case errors.Is(err, catalog.ErrUnknownCategory):
		fail(c, http.StatusUnprocessableEntity, "unknown category", err)
	case err != nil:
		fail(c, http.StatusInternalServerError, "failed to publish service", err)
	default:
		c.JSON(http.StatusCreated, item)
	}
}
