package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/services"
	"github.com/rentroost/rentroost-api/utils"
)

// UnitHandler is the ledger write path. Every operation re-fetches the
// current building, applies a pure copy-on-write mutation, awaits the
// persist, then broadcasts. A stale snapshot is never held across the write.
type UnitHandler struct {
	Buildings *services.BuildingService
	WS        *WSHandler
}

// mutate runs one ledger operation end to end. On any failure the stored
// document is untouched and the draft is discarded.
func (h *UnitHandler) mutate(c *gin.Context, action string, op func(models.Building) (models.Building, error)) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	buildingID := c.Param("id")

	current, err := h.Buildings.GetByID(c.Request.Context(), buildingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	draft, err := op(*current)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Buildings.Update(c.Request.Context(), &draft); err != nil {
		respondError(c, err)
		return
	}

	utils.LogLedgerAction(action, buildingID, userID)
	h.WS.BroadcastUpdate(userID, "buildings_updated", userID)
	c.JSON(http.StatusOK, draft)
}

// UpsertTenant creates or edits the active tenant of a unit.
func (h *UnitHandler) UpsertTenant(c *gin.Context) {
	var req models.TenantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unitID := c.Param("unit_id")
	h.mutate(c, "upsert_tenant", func(b models.Building) (models.Building, error) {
		return services.UpsertTenant(b, unitID, req)
	})
}

// MoveTenantToPrevious archives the unit's active tenant. One-way.
func (h *UnitHandler) MoveTenantToPrevious(c *gin.Context) {
	unitID := c.Param("unit_id")
	h.mutate(c, "move_tenant_to_previous", func(b models.Building) (models.Building, error) {
		return services.MoveTenantToPrevious(b, unitID)
	})
}

func (h *UnitHandler) AddRentPayment(c *gin.Context) {
	var req models.RentPaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unitID := c.Param("unit_id")
	h.mutate(c, "add_rent_payment", func(b models.Building) (models.Building, error) {
		return services.AddRentPayment(b, unitID, req)
	})
}

func (h *UnitHandler) EditRentPayment(c *gin.Context) {
	var req models.RentPaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unitID := c.Param("unit_id")
	paymentID := c.Param("payment_id")
	h.mutate(c, "edit_rent_payment", func(b models.Building) (models.Building, error) {
		return services.EditRentPayment(b, unitID, paymentID, req)
	})
}

func (h *UnitHandler) AddElectricityRecord(c *gin.Context) {
	var req models.ElectricityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unitID := c.Param("unit_id")
	h.mutate(c, "add_electricity_record", func(b models.Building) (models.Building, error) {
		return services.AddElectricityRecord(b, unitID, req)
	})
}

func (h *UnitHandler) EditElectricityRecord(c *gin.Context) {
	var req models.ElectricityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unitID := c.Param("unit_id")
	recordID := c.Param("record_id")
	h.mutate(c, "edit_electricity_record", func(b models.Building) (models.Building, error) {
		return services.EditElectricityRecord(b, unitID, recordID, req)
	})
}
