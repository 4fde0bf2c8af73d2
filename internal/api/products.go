package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/openfoodfacts"
)

// ProductHandler proxies the external food database so the client never
// talks to it directly.
type ProductHandler struct {
	client *openfoodfacts.Client
}

func NewProductHandler(client *openfoodfacts.Client) *ProductHandler {
	return &ProductHandler{client: client}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("/search", h.SearchProducts)
		products.GET("/:barcode", h.GetProduct)
	}
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.client.LookupByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.client.Search(c.Request.Context(), query, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
