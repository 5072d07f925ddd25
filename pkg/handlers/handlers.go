// Package handlers wires the catalog's operations to HTTP. Handlers
// parse and validate the request, call into the repository or sale
// engine, and translate the error taxonomy to status codes; everything
// else lives below this layer.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noft/catalog/pkg/repository"
	"github.com/noft/catalog/pkg/sale"
	"github.com/noft/catalog/pkg/store"
)

// Handler bundles the core components behind the routes.
type Handler struct {
	Products *repository.ProductRepository
	Sales    *sale.Engine

	// StoreTimeout bounds each request's store I/O.
	StoreTimeout time.Duration
}

func New(products *repository.ProductRepository, sales *sale.Engine, storeTimeout time.Duration) *Handler {
	return &Handler{Products: products, Sales: sales, StoreTimeout: storeTimeout}
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := h.StoreTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

func respondError(c *gin.Context, err error) {
	var vErr *repository.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "The catalog changed while saving. Reload and try again."})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Catalog storage is unavailable. Try again later."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong."})
	}
}
