package api

import (
	"context"
	"fmt"
	"strings"

	"rmassistant/internal/domain"
	"rmassistant/internal/metrics"
	"rmassistant/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type aiQaRequest struct {
	Question    string              `json:"question"`
	DealSummary *domain.DealSummary `json:"deal_summary"`
}

type aiQaResponse struct {
	Answer     string `json:"answer"`
	Disclaimer string `json:"disclaimer"`
}

func (h ApiHandler) aiQa(c *gin.Context) {
	var requestBody aiQaRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	if strings.TrimSpace(requestBody.Question) == "" {
		returnRequestError(domain.ValidationError{Field: "question", Reason: "must not be empty"}, c)
		return
	}

	guarded := []service.GuardedField{
		{Label: "question", Text: requestBody.Question},
	}
	if requestBody.DealSummary != nil && requestBody.DealSummary.Notes != nil {
		guarded = append(guarded, service.GuardedField{
			Label: "deal_summary.notes",
			Text:  *requestBody.DealSummary.Notes,
		})
	}
	if err := h.GuardrailService.Guard(guarded...); err != nil {
		returnRequestError(err, c)
		return
	}

	answer := h.NarrativeService.Answer(requestBody.Question, requestBody.DealSummary)

	ctx, cancel := context.WithTimeout(c.Request.Context(), enhancementTimeout)
	defer cancel()

	enhanced, err := h.GptRepository.EnhanceAnswer(ctx, requestBody.Question, requestBody.DealSummary)
	if err != nil || enhanced == "" {
		metrics.EnhancementCallsTotal.WithLabelValues("qa", "fallback").Inc()
		zap.S().Infof("qa enhancement skipped: %v", err)
	} else {
		metrics.EnhancementCallsTotal.WithLabelValues("qa", "enhanced").Inc()
		answer = enhanced
	}

	c.JSON(200, aiQaResponse{
		Answer:     answer,
		Disclaimer: Disclaimer,
	})
}
