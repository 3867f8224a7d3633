package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-coach-go-api/internal/coach"
)

// postMetrics computes the metric bundle for a profile. Nothing is stored.
// POST /api/metrics.
func (h *Handler) postMetrics(c *gin.Context) {
	p, ok := bindProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, coach.ComputeMetrics(p))
}

// postRecommendations returns the metrics plus the selected variant keys,
// without any rendered copy.
// POST /api/recommendations.
func (h *Handler) postRecommendations(c *gin.Context) {
	p, ok := bindProfile(c)
	if !ok {
		return
	}
	m := coach.ComputeMetrics(p)
	sel := h.selector.Select(m, p, h.now())
	observePlan(sel)
	c.JSON(http.StatusOK, recommendationsResponse{Metrics: m, Selection: sel})
}

// postPlan runs the full pipeline in one call.
// POST /api/plan.
func (h *Handler) postPlan(c *gin.Context) {
	p, ok := bindProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.buildPlan(p))
}

// getContentVariants lists the variant keys the loaded catalog serves and any
// the selector could emit that it lacks.
// GET /api/content/variants.
func (h *Handler) getContentVariants(c *gin.Context) {
	missing := h.catalog.MissingKeys()
	if missing == nil {
		missing = []coach.VariantKey{}
	}
	c.JSON(http.StatusOK, variantsResponse{
		Version:     h.catalog.Version,
		FeatureSet:  h.selector.Features(),
		Variants:    h.catalog.Keys(),
		MissingKeys: missing,
	})
}
