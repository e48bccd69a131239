package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/services"
)

// DocumentHandler stores tenant documents (id proof, police verification,
// other) under the upload directory and hands back an opaque URL. Attaching
// the URL to the tenant record is a separate upsert; the two are decoupled.
type DocumentHandler struct {
	Buildings *services.BuildingService
}

var documentTypes = map[string]bool{
	"idProof":            true,
	"policeVerification": true,
	"otherDocuments":     true,
}

func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// UploadTenantDocument accepts a multipart file plus a "type" field and
// returns the URL it will be served from.
func (h *DocumentHandler) UploadTenantDocument(c *gin.Context) {
	userID := middleware.GetUserID(c)
	buildingID := c.Param("id")
	unitID := c.Param("unit_id")

	// The building must exist and belong to the caller.
	building, err := h.Buildings.GetByID(c.Request.Context(), buildingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if building.FindUnit(unitID) == -1 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unit %s not found", unitID)})
		return
	}

	docType := c.PostForm("type")
	if !documentTypes[docType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be idProof, policeVerification or otherDocuments"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	ext := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%s-%d%s", docType, time.Now().UnixMilli(), ext)
	relPath := filepath.Join("tenants", buildingID, unitID, fileName)
	fullPath := filepath.Join(UploadDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + filepath.ToSlash(relPath)})
}
