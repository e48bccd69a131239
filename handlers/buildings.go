package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/services"
	"github.com/rentroost/rentroost-api/utils"
)

type BuildingHandler struct {
	Buildings *services.BuildingService
	WS        *WSHandler
}

// CreateBuilding creates a building with unitsCount empty units.
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	building, err := h.Buildings.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogLedgerAction("create_building", building.ID, userID)
	h.WS.BroadcastUpdate(userID, "buildings_updated", userID)
	c.JSON(http.StatusCreated, building)
}

// GetBuildings lists every building owned by the caller.
func (h *BuildingHandler) GetBuildings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	buildings, err := h.Buildings.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildings)
}

func (h *BuildingHandler) GetBuilding(c *gin.Context) {
	userID := middleware.GetUserID(c)
	buildingID := c.Param("id")

	building, err := h.Buildings.GetByID(c.Request.Context(), buildingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, building)
}

// UpdateBuilding updates building metadata. Unit cardinality is fixed at
// creation and not editable here.
func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	userID := middleware.GetUserID(c)
	buildingID := c.Param("id")

	var req struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	building, err := h.Buildings.GetByID(c.Request.Context(), buildingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	building.Name = req.Name
	building.Address = req.Address
	if err := h.Buildings.Update(c.Request.Context(), building); err != nil {
		respondError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "buildings_updated", userID)
	c.JSON(http.StatusOK, building)
}

func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	userID := middleware.GetUserID(c)
	buildingID := c.Param("id")

	if err := h.Buildings.Delete(c.Request.Context(), buildingID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.LogLedgerAction("delete_building", buildingID, userID)
	h.WS.BroadcastUpdate(userID, "buildings_updated", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Building deleted"})
}
