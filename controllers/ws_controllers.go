package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hoteldine/events"
	"hoteldine/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventStreamHandler upgrades staff clients to the event hub. The token was
// already validated by the websocket middleware.
func EventStreamHandler(c *gin.Context) {
	role := actorRole(c)
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleStaff, models.RoleChef:
	default:
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	events.RegisterClient(ws, role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	events.UnregisterClient(ws)
}
