package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/services"
)

type ReminderHandler struct {
	Reminders *services.ReminderService
	WS        *WSHandler
}

// CreateReminder stores the reminder; SMS delivery happens later, when the
// dispatch sweep reaches the scheduled time. The response only acknowledges
// scheduling, never delivery.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.Reminders.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "reminders_updated", userID)
	if reminder.SendSMS {
		c.JSON(http.StatusCreated, gin.H{
			"reminder": reminder,
			"sms":      "scheduled",
		})
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *ReminderHandler) GetReminders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reminders, err := h.Reminders.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (h *ReminderHandler) CompleteReminder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reminderID := c.Param("id")

	if err := h.Reminders.MarkCompleted(c.Request.Context(), reminderID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "reminders_updated", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Reminder completed"})
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reminderID := c.Param("id")

	if err := h.Reminders.Delete(c.Request.Context(), reminderID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.WS.BroadcastUpdate(userID, "reminders_updated", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}
