package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListSessionsHandler lists active class sessions, optionally filtered to a
// date (YYYY-MM-DD).
func (hb *HandlerBundle) ListSessionsHandler(c *gin.Context) {
	sessions, err := hb.Upstream.ListActiveSessions(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSessionHandler returns one session by id.
func (hb *HandlerBundle) GetSessionHandler(c *gin.Context) {
	item, err := hb.Upstream.GetSessionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListEventsHandler lists active events with page/limit pagination.
func (hb *HandlerBundle) ListEventsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	events, total, err := hb.Upstream.ListActiveEvents(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": total, "page": page, "limit": limit})
}

// GetEventHandler returns one event by id.
func (hb *HandlerBundle) GetEventHandler(c *gin.Context) {
	item, err := hb.Upstream.GetEventByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
