package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noft/catalog/pkg/catalog"
	"github.com/noft/catalog/pkg/models"
)

// ListProducts is the storefront read path: the collection priced
// against the current sale, with optional brand/category/q filters and
// a sort mode from the catalog package.
func (h *Handler) ListProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.Products.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	doc, err := h.Sales.Document(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	entries := catalog.Compose(products, doc, time.Now())
	entries = catalog.Filter(entries, catalog.Query{
		Brand:    c.Query("brand"),
		Category: c.Query("category"),
		Search:   c.Query("q"),
	})
	catalog.Sort(entries, c.Query("sort"), rand.New(rand.NewSource(time.Now().UnixNano())))

	c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.Products.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	doc, err := h.Sales.Document(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	entries := catalog.Compose([]models.Product{product}, doc, time.Now())
	c.JSON(http.StatusOK, entries[0])
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.Products.Create(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.Products.Update(ctx, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.Products.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted."})
}
