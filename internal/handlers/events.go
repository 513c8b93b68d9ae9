package handlers

import (
	"net/http"

	"skillswap/internal/board"
	"skillswap/internal/events"

	"github.com/gin-gonic/gin"
)

type EventsHandler struct {
	hub   *events.Hub
	board *board.Board
}

func NewEventsHandler(hub *events.Hub, b *board.Board) *EventsHandler {
	return &EventsHandler{hub: hub, board: b}
}

// Stream sends board changes as server-sent events until the client goes
// away. The first event carries the current revision.
func (h *EventsHandler) Stream(c *gin.Context) {
	changes, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.SSEvent("ready", gin.H{"revision": h.board.Revision(), "count": len(h.board.List())})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			c.SSEvent("change", change)
			c.Writer.Flush()
		}
	}
}
