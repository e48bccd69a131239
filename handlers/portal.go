package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/services"
	"github.com/rentroost/rentroost-api/utils"
)

// PortalHandler serves the tenant-facing portal: login by phone plus date of
// birth, and a read-only dashboard of the tenant's own unit and ledger.
type PortalHandler struct {
	Buildings *services.BuildingService
}

// normalizeDOB reduces a date-of-birth string to its yyyy-mm-dd prefix so a
// stored full timestamp still matches a date-only login value.
func normalizeDOB(dob string) string {
	dob = strings.TrimSpace(dob)
	if len(dob) > 10 {
		dob = dob[:10]
	}
	return dob
}

// Login authenticates a tenant by contact number and date of birth. Both
// failure modes return the same message so the endpoint cannot be used to
// probe which phone numbers exist.
func (h *PortalHandler) Login(c *gin.Context) {
	var req models.PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, _, err := h.Buildings.FindActiveTenantByPhone(c.Request.Context(), strings.TrimSpace(req.Phone))
	if err != nil {
		utils.LogAuthAction("portal_login", utils.MaskPhone(req.Phone), false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or date of birth"})
		return
	}

	if tenant.DateOfBirth == "" || normalizeDOB(tenant.DateOfBirth) != normalizeDOB(req.DOB) {
		utils.LogAuthAction("portal_login", utils.MaskPhone(req.Phone), false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or date of birth"})
		return
	}

	token, err := utils.GeneratePortalToken(tenant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	utils.LogAuthAction("portal_login", utils.MaskID(tenant.ID), true)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"tenant": gin.H{"id": tenant.ID, "name": tenant.Name},
	})
}

// Dashboard returns the logged-in tenant's unit context and ledger. A tenant
// moved out since the token was issued gets a 404, which the client treats as
// a forced logout.
func (h *PortalHandler) Dashboard(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	_, dashboard, err := h.Buildings.FindActiveTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
