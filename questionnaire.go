package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lg/wellness-coach-go-api/internal/coach"
)

// createSession starts a questionnaire run at collecting_input.
// POST /api/sessions.
func (h *Handler) createSession(c *gin.Context) {
	s := coach.NewSession(uuid.New().String(), h.now())
	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		apiError(c, http.StatusInternalServerError, "failed to create session")
		return
	}
	observeTransition(s.Step)
	c.JSON(http.StatusCreated, s)
}

// getSession returns the current step (and profile, once submitted).
// GET /api/sessions/:id.
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c))
}

// submitProfile records the form answers and returns the snapshot preview.
// POST /api/sessions/:id/profile. Only allowed from collecting_input; use
// DELETE to start over first.
func (h *Handler) submitProfile(c *gin.Context) {
	p, ok := bindProfile(c)
	if !ok {
		return
	}

	next, err := currentSession(c).SubmitProfile(p, h.now())
	if !h.saveTransition(c, next, err) {
		return
	}

	c.JSON(http.StatusOK, sessionSnapshotResponse{Session: next, Snapshot: h.buildSnapshot(p)})
}

// showFullPlan unlocks the full plan for a previewed session.
// POST /api/sessions/:id/plan.
func (h *Handler) showFullPlan(c *gin.Context) {
	next, err := currentSession(c).ShowFullPlan(h.now())
	if !h.saveTransition(c, next, err) {
		return
	}

	c.JSON(http.StatusOK, sessionPlanResponse{Session: next, planResponse: h.buildPlan(*next.Profile)})
}

// startOver clears the answers and returns the session to collecting_input.
// DELETE /api/sessions/:id.
func (h *Handler) startOver(c *gin.Context) {
	next := currentSession(c).StartOver(h.now())
	if !h.saveTransition(c, next, nil) {
		return
	}
	c.JSON(http.StatusOK, next)
}

// saveTransition maps a transition error to 409, persists the new session
// value and records the step. Returns false when a response was written.
func (h *Handler) saveTransition(c *gin.Context, next coach.Session, err error) bool {
	if errors.Is(err, coach.ErrInvalidTransition) {
		apiError(c, http.StatusConflict, err.Error())
		return false
	}
	if err != nil {
		log.Error().Err(err).Str("session_id", next.ID).Msg("Unexpected transition error")
		apiError(c, http.StatusInternalServerError, "failed to update session")
		return false
	}
	if err := h.sessions.Save(c.Request.Context(), next); err != nil {
		log.Error().Err(err).Str("session_id", next.ID).Msg("Failed to save session")
		apiError(c, http.StatusInternalServerError, "failed to update session")
		return false
	}
	observeTransition(next.Step)
	return true
}
