package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/services"
)

// respondError maps the service error taxonomy onto HTTP statuses. Every
// mutating action reports failure distinctly; the message is always
// human-readable.
func respondError(c *gin.Context, err error) {
	var validation *services.ValidationError
	var notFound *services.NotFoundError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
