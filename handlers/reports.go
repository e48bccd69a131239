package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/services"
)

type ReportHandler struct {
	Buildings *services.BuildingService
	Expenses  *services.ExpenseService
}

// parseRange reads the start/end query parameters. Both accept RFC3339 or a
// plain yyyy-mm-dd; a date-only end is widened to the end of that day so the
// range stays inclusive. Defaults cover the current month.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := c.Query("start"); raw != "" {
		t, _, err := parseRangeBound(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
			return time.Time{}, time.Time{}, false
		}
		start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, dateOnly, err := parseRangeBound(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
			return time.Time{}, time.Time{}, false
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		end = t
	}
	return start, end, true
}

func parseRangeBound(raw string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, false, err
}

func (h *ReportHandler) loadGraph(c *gin.Context, userID string) ([]models.Building, []models.Expense, bool) {
	buildings, err := h.Buildings.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	expenses, err := h.Expenses.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	return buildings, expenses, true
}

func (h *ReportHandler) GetTotals(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	start, end, ok := parseRange(c)
	if !ok {
		return
	}
	buildings, expenses, ok := h.loadGraph(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.ComputeTotals(buildings, expenses, userID, start, end))
}

func (h *ReportHandler) GetBuildingReports(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	start, end, ok := parseRange(c)
	if !ok {
		return
	}
	buildings, expenses, ok := h.loadGraph(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.ComputeBuildingReports(buildings, expenses, userID, start, end))
}

// GetUnpaidUnits reports, per building, the occupied units whose collected
// rent within the range falls short of the monthly rent.
func (h *ReportHandler) GetUnpaidUnits(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	start, end, ok := parseRange(c)
	if !ok {
		return
	}
	buildings, err := h.Buildings.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	type buildingUnpaid struct {
		BuildingID   string              `json:"buildingId"`
		BuildingName string              `json:"buildingName"`
		Units        []models.UnpaidUnit `json:"units"`
	}
	result := []buildingUnpaid{}
	for i := range buildings {
		units := services.ComputeUnpaidUnits(&buildings[i], start, end)
		if len(units) == 0 {
			continue
		}
		result = append(result, buildingUnpaid{
			BuildingID:   buildings[i].ID,
			BuildingName: buildings[i].Name,
			Units:        units,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) GetPreviousTenants(c *gin.Context) {
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
	c.JSON(http.StatusOK, services.PreviousTenants(buildings))
}
