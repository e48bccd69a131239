package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/utils"
)

// WSHandler is the real-time change hub. Clients connect once per login and
// get a small {type, user} signal whenever one of their collections changed;
// they re-fetch on signal rather than receiving deltas.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive for cloud hosts that kill idle connections.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		if ownerID, ok := s.Get("owner_id"); ok {
			utils.LogWebSocket("disconnect", ownerID.(string))
		}
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeError("WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request and binds the session to the authenticated
// owner. The route runs behind AuthMiddleware, so the id is already checked.
func (h *WSHandler) HandleWS(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"owner_id": ownerID,
	})
	if err != nil {
		utils.SafeError("Failed to upgrade websocket: %v", err)
		return
	}
	utils.LogWebSocket("connect", ownerID)
}

// BroadcastUpdate signals every session of one owner that a collection
// changed. updateType is one of buildings_updated / expenses_updated /
// reminders_updated.
func (h *WSHandler) BroadcastUpdate(ownerID, updateType, userWhoUpdated string) {
	msg := []byte(`{"type": "` + updateType + `", "user": "` + userWhoUpdated + `"}`)

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("owner_id")
		return exists && id == ownerID
	})
	if err != nil {
		utils.SafeWarn("Error broadcasting to owner %s: %v", ownerID, err)
	}
}
