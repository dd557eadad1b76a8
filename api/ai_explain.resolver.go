package api

import (
	"context"
	"fmt"

	"rmassistant/internal/domain"
	"rmassistant/internal/metrics"
	"rmassistant/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type aiExplainRequest struct {
	DealSummary *domain.DealSummary `json:"deal_summary"`
}

type aiExplainResponse struct {
	ExecutiveSummary  string   `json:"executive_summary"`
	KeyRisksExplained []string `json:"key_risks_explained"`
	RmTalkingPoints   []string `json:"rm_talking_points"`
	Disclaimer        string   `json:"disclaimer"`
}

func (h ApiHandler) aiExplain(c *gin.Context) {
	var requestBody aiExplainRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	if requestBody.DealSummary == nil {
		returnRequestError(domain.ValidationError{Field: "deal_summary", Reason: "is required"}, c)
		return
	}
	summary := *requestBody.DealSummary

	if summary.Notes != nil {
		if err := h.GuardrailService.Guard(service.GuardedField{Label: "deal_summary.notes", Text: *summary.Notes}); err != nil {
			returnRequestError(err, c)
			return
		}
	}

	// The deterministic narrative is the committed response; a successful
	// enhancement only overlays it.
	fallback := h.NarrativeService.Explain(summary)
	response := aiExplainResponse{
		ExecutiveSummary:  fallback.ExecutiveSummary,
		KeyRisksExplained: fallback.KeyRisks,
		RmTalkingPoints:   fallback.TalkingPoints,
		Disclaimer:        Disclaimer,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), enhancementTimeout)
	defer cancel()

	enhanced, err := h.GptRepository.EnhanceExplain(ctx, summary)
	if err != nil || enhanced == nil {
		metrics.EnhancementCallsTotal.WithLabelValues("explain", "fallback").Inc()
		zap.S().Infof("explain enhancement skipped: %v", err)
	} else {
		metrics.EnhancementCallsTotal.WithLabelValues("explain", "enhanced").Inc()
		response.ExecutiveSummary = enhanced.ExecutiveSummary
		if len(enhanced.KeyRisks) > 0 {
			response.KeyRisksExplained = enhanced.KeyRisks
		}
		if len(enhanced.TalkingPoints) > 0 {
			response.RmTalkingPoints = enhanced.TalkingPoints
		}
	}

	c.JSON(200, response)
}
