package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/wellness-coach-go-api/internal/coach"
	"lg/wellness-coach-go-api/internal/content"
)

// Handler holds shared dependencies (session store, content, selector) for
// all route handlers.
type Handler struct {
	sessions sessionStore
	catalog  *content.Catalog
	selector *coach.Selector
	now      func() time.Time // overridable for tests
}

func newHandler(sessions sessionStore, catalog *content.Catalog, selector *coach.Selector) *Handler {
	return &Handler{sessions: sessions, catalog: catalog, selector: selector, now: time.Now}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// bindProfile binds and validates a questionnaire form, writing a 400 on
// failure. Returns false when the handler should stop.
func bindProfile(c *gin.Context) (coach.UserProfile, bool) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindingMessage(err))
		return coach.UserProfile{}, false
	}
	if err := body.validate(); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return coach.UserProfile{}, false
	}
	return body.toProfile(), true
}

/* ─── Plan assembly ───────────────────────────────────────────────────── */

// buildPlan runs the whole pipeline for one profile: metrics, selection,
// rendered copy.
func (h *Handler) buildPlan(p coach.UserProfile) planResponse {
	m := coach.ComputeMetrics(p)
	sel := h.selector.Select(m, p, h.now())
	plan := h.catalog.Render(p, m, sel)
	observePlan(sel)
	return planResponse{Metrics: m, Selection: sel, Plan: plan}
}

// buildSnapshot renders the preview: title, BMI, category and the goal text.
func (h *Handler) buildSnapshot(p coach.UserProfile) snapshot {
	m := coach.ComputeMetrics(p)
	sel := h.selector.Select(m, p, h.now())
	plan := h.catalog.Render(p, m, sel)

	snap := snapshot{
		Title:         plan.Title,
		FirstName:     sel.FirstName,
		BMI:           m.BMI,
		Category:      sel.Category,
		CategoryLabel: sel.Category.Label(),
		Goal:          sel.Goal,
	}
	for _, s := range plan.Sections {
		if s.Topic == coach.TopicGoal {
			snap.GoalText = s.Body
		}
	}
	return snap
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", h.healthz)
	router.POST("/mcp", h.mcpCall)

	// Stateless
	api := router.Group("/api")
	api.POST("/metrics", h.postMetrics)
	api.POST("/recommendations", h.postRecommendations)
	api.POST("/plan", h.postPlan)
	api.GET("/content/variants", h.getContentVariants)

	// Questionnaire sessions
	api.POST("/sessions", h.createSession)
	session := api.Group("/sessions/:id", h.sessionMiddleware())
	session.GET("", h.getSession)
	session.POST("/profile", h.submitProfile)
	session.POST("/plan", h.showFullPlan)
	session.DELETE("", h.startOver)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "feature_set": h.selector.Features().Version})
}
