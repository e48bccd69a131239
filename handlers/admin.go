package handlers

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/migration"
)

// AdminHandler exposes maintenance operations, gated by a shared secret
// header rather than a user token.
type AdminHandler struct {
	DB *sql.DB
}

func (h *AdminHandler) checkSecret(c *gin.Context) bool {
	expected := os.Getenv("ADMIN_SECRET")
	if expected == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ADMIN_SECRET not configured"})
		return false
	}
	if c.GetHeader("X-Admin-Secret") != expected {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin secret"})
		return false
	}
	return true
}

// BackfillBuildings repairs every building document: initializes missing
// nested arrays, recomputes electricity derived fields and re-encrypts
// plaintext blobs when an encryption key is configured.
// POST /api/v1/admin/backfill-buildings
func (h *AdminHandler) BackfillBuildings(c *gin.Context) {
	if !h.checkSecret(c) {
		return
	}

	result, err := migration.BackfillBuildings(c.Request.Context(), h.DB, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// BackfillBuilding repairs a single building document.
// POST /api/v1/admin/backfill-buildings/:id
func (h *AdminHandler) BackfillBuilding(c *gin.Context) {
	if !h.checkSecret(c) {
		return
	}

	buildingID := c.Param("id")
	if buildingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Building ID required"})
		return
	}

	result, err := migration.BackfillBuildings(c.Request.Context(), h.DB, buildingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
