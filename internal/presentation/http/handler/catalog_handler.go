package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/response"
)

// CatalogHandler serves the product catalog for the POS grid
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns the catalog, optionally narrowed by search and category.
// The catalog is fetched from upstream on first use and cached in the
// session afterwards.
// @Summary List products
// @Tags catalog
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Param category query string false "Category filter, 'all' for everything"
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	if !h.catalogService.Loaded(sess) {
		if _, err := h.catalogService.Load(c.Request.Context(), sess); err != nil {
			response.Error(c, err)
			return
		}
	}

	search := c.Query("search")
	category := c.DefaultQuery("category", service.CategoryAll)

	products := h.catalogService.Filter(sess, search, category)
	response.OK(c, "Products retrieved", gin.H{
		"products":   products,
		"categories": h.catalogService.Categories(sess),
	})
}

// Refresh forces a fresh catalog fetch from upstream
// @Summary Refresh products
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /products/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	products, err := h.catalogService.Load(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog refreshed", gin.H{
		"products":   products,
		"categories": h.catalogService.Categories(sess),
	})
}
