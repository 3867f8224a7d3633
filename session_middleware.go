package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lg/wellness-coach-go-api/internal/coach"
)

const sessionKey = "session"

// sessionMiddleware loads the session named by :id and sets it on the
// context. Malformed and unknown IDs both get a 404 so IDs can't be probed.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			apiError(c, http.StatusNotFound, "session not found")
			c.Abort()
			return
		}

		s, err := h.sessions.Get(c.Request.Context(), id)
		if errors.Is(err, errSessionNotFound) {
			apiError(c, http.StatusNotFound, "session not found")
			c.Abort()
			return
		}
		if err != nil {
			log.Error().Err(err).Str("session_id", id).Msg("Failed to load session")
			apiError(c, http.StatusInternalServerError, "failed to load session")
			c.Abort()
			return
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

// currentSession returns the session set by sessionMiddleware.
func currentSession(c *gin.Context) coach.Session {
	return c.MustGet(sessionKey).(coach.Session)
}
