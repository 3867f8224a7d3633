package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	"lg/wellness-coach-go-api/internal/coach"
)

// mcpTool handles one MCP tool call and returns the payload to send back as
// JSON text content.
type mcpTool func(h *Handler, req *protocol.CallToolRequest) (any, error)

var mcpTools = map[string]mcpTool{
	"compute_metrics":        (*Handler).mcpComputeMetrics,
	"select_recommendations": (*Handler).mcpSelectRecommendations,
	"render_plan":            (*Handler).mcpRenderPlan,
}

// mcpCall exposes the stateless pipeline to MCP clients.
// POST /mcp with a tools/call request body.
func (h *Handler) mcpCall(c *gin.Context) {
	var req protocol.CallToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid tool call")
		return
	}

	tool, ok := mcpTools[req.Name]
	if !ok {
		apiError(c, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", req.Name))
		return
	}

	payload, err := tool(h, &req)
	if err != nil {
		// Bad arguments are reported to the caller as a tool error, not a
		// transport error.
		c.JSON(http.StatusOK, toolResult(err.Error(), true))
		return
	}

	text, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("tool", req.Name).Msg("Failed to encode tool result")
		apiError(c, http.StatusInternalServerError, "failed to encode tool result")
		return
	}
	c.JSON(http.StatusOK, toolResult(string(text), false))
}

func toolResult(text string, isError bool) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			&protocol.TextContent{Type: "text", Text: text},
		},
		IsError: isError,
	}
}

// profileFromArgs decodes tool arguments into a profile and applies the same
// checks as the HTTP form.
func profileFromArgs(req *protocol.CallToolRequest) (coach.UserProfile, error) {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return coach.UserProfile{}, fmt.Errorf("marshal arguments: %w", err)
	}
	var body profileRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		return coach.UserProfile{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if err := validateProfileRanges(body); err != nil {
		return coach.UserProfile{}, err
	}
	if err := body.validate(); err != nil {
		return coach.UserProfile{}, err
	}
	return body.toProfile(), nil
}

// validateProfileRanges applies the binding tags outside of gin's request
// binding.
func validateProfileRanges(body profileRequest) error {
	if err := binding.Validator.ValidateStruct(body); err != nil {
		return errors.New(bindingMessage(err))
	}
	return nil
}

func (h *Handler) mcpComputeMetrics(req *protocol.CallToolRequest) (any, error) {
	p, err := profileFromArgs(req)
	if err != nil {
		return nil, err
	}
	return coach.ComputeMetrics(p), nil
}

func (h *Handler) mcpSelectRecommendations(req *protocol.CallToolRequest) (any, error) {
	p, err := profileFromArgs(req)
	if err != nil {
		return nil, err
	}
	m := coach.ComputeMetrics(p)
	sel := h.selector.Select(m, p, h.now())
	observePlan(sel)
	return recommendationsResponse{Metrics: m, Selection: sel}, nil
}

func (h *Handler) mcpRenderPlan(req *protocol.CallToolRequest) (any, error) {
	p, err := profileFromArgs(req)
	if err != nil {
		return nil, err
	}
	return h.buildPlan(p), nil
}
