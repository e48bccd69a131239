package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/services"
)

type ExpenseHandler struct {
	Expenses *services.ExpenseService
	WS       *WSHandler
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.Expenses.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "expenses_updated", userID)
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expenses, err := h.Expenses.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	expenseID := c.Param("id")

	if err := h.Expenses.Delete(c.Request.Context(), expenseID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "expenses_updated", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
