package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noft/catalog/pkg/models"
)

// GetSale returns the sale document: the configured campaign and the
// archive of past campaigns. The storefront decides display order.
func (h *Handler) GetSale(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	doc, err := h.Sales.Document(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SetSale replaces the current campaign. A JSON null (or empty) body
// clears it. The body is decoded directly: gin's binding cannot carry a
// bare nil pointer through its validator, and null-means-clear is part
// of the contract here.
func (h *Handler) SetSale(c *gin.Context) {
	var campaign *models.Campaign
	if err := json.NewDecoder(c.Request.Body).Decode(&campaign); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	doc, err := h.Sales.SetCurrent(ctx, campaign)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
