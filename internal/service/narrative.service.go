package service

import (
	"fmt"
	"strings"

	"rmassistant/internal/domain"
)

// NarrativeService renders RM-facing prose from a deal summary without any
// external dependency. This is the guaranteed-available behavior - the
// enhancement adapter only ever overlays it.
type NarrativeService interface {
	Explain(summary domain.DealSummary) domain.Explanation
	Answer(question string, summary *domain.DealSummary) string
}

const maxNarrativeBullets = 6

const (
	noConstraintsPlaceholder = "No major constraints flagged."
	noActionsPlaceholder     = "Proceed with standard relationship coverage."
	assessFirstInstruction   = "No deal summary provided. Run an assessment first, then ask again with the assessed deal attached."
)

var nextStepKeywords = []string{"next step", "action", "what should", "how do", "recommend"}

type narrativeServiceHandler struct{}

func NewNarrativeService() NarrativeService {
	return narrativeServiceHandler{}
}

func (h narrativeServiceHandler) Explain(summary domain.DealSummary) domain.Explanation {
	keyRisks := capBullets(summary.DealReadiness.Constraints, noConstraintsPlaceholder)
	talkingPoints := capBullets(summary.RmActions, noActionsPlaceholder)

	return domain.Explanation{
		ExecutiveSummary: summary.MandateFitSummary,
		KeyRisks:         keyRisks,
		TalkingPoints:    talkingPoints,
	}
}

func (h narrativeServiceHandler) Answer(question string, summary *domain.DealSummary) string {
	if summary == nil {
		return assessFirstInstruction
	}

	if isNextStepQuestion(question) {
		return renderNextSteps(*summary)
	}
	return renderDigest(*summary)
}

func capBullets(items []string, placeholder string) []string {
	if len(items) == 0 {
		return []string{placeholder}
	}
	if len(items) > maxNarrativeBullets {
		items = items[:maxNarrativeBullets]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func isNextStepQuestion(question string) bool {
	lowered := strings.ToLower(question)
	for _, keyword := range nextStepKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func renderNextSteps(summary domain.DealSummary) string {
	var b strings.Builder
	fmt.Fprintf(
		&b,
		"Based on the %s readiness assessment for %s, focus on the following.\n",
		summary.DealReadiness.Status, summary.ClientName,
	)

	if len(summary.DealReadiness.Constraints) > 0 {
		b.WriteString("\nConstraints to resolve:\n")
		writeBullets(&b, summary.DealReadiness.Constraints)
	} else {
		b.WriteString("\n" + noConstraintsPlaceholder + "\n")
	}

	if len(summary.RmActions) > 0 {
		b.WriteString("\nRecommended actions:\n")
		writeBullets(&b, summary.RmActions)
	} else {
		b.WriteString("\n" + noActionsPlaceholder + "\n")
	}

	return b.String()
}

func renderDigest(summary domain.DealSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", summary.MandateFitSummary)

	if len(summary.DealReadiness.Strengths) > 0 {
		b.WriteString("\nStrengths:\n")
		writeBullets(&b, summary.DealReadiness.Strengths)
	}
	if len(summary.DealReadiness.Constraints) > 0 {
		b.WriteString("\nConstraints:\n")
		writeBullets(&b, summary.DealReadiness.Constraints)
	}
	if len(summary.RmActions) > 0 {
		b.WriteString("\nSuggested actions:\n")
		writeBullets(&b, summary.RmActions)
	}

	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
