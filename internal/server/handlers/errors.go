package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mahameru/inventory/internal/repository"
	"github.com/mahameru/inventory/internal/service/auth"
	"github.com/mahameru/inventory/internal/service/inventory"
)

// writeError maps service and repository errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, repository.ErrDuplicateCode):
		c.JSON(http.StatusConflict, gin.H{"error": "material code already in use"})
	case errors.Is(err, repository.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient stock"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
