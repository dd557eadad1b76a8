package api

import (
	"fmt"

	"rmassistant/internal/domain"
	"rmassistant/internal/metrics"
	"rmassistant/internal/service"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) assess(c *gin.Context) {
	var requestBody domain.DealInput

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	if err := requestBody.Validate(); err != nil {
		returnRequestError(err, c)
		return
	}

	guarded := []service.GuardedField{
		{Label: "client_name", Text: requestBody.ClientName},
	}
	if requestBody.GroupName != nil {
		guarded = append(guarded, service.GuardedField{Label: "group_name", Text: *requestBody.GroupName})
	}
	if requestBody.Notes != nil {
		guarded = append(guarded, service.GuardedField{Label: "notes", Text: *requestBody.Notes})
	}
	if err := h.GuardrailService.Guard(guarded...); err != nil {
		returnRequestError(err, c)
		return
	}

	summary := h.ReadinessService.Assess(requestBody)
	metrics.AssessmentsTotal.WithLabelValues(string(summary.DealReadiness.Status)).Inc()

	c.JSON(200, summary)
}
