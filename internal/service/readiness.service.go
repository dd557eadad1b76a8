package service

import (
	"fmt"

	"rmassistant/internal/domain"
)

// ReadinessService is the deterministic deal-readiness rule engine. It
// holds no state and performs no I/O - calling Assess twice with the same
// input yields an identical summary.
type ReadinessService interface {
	Assess(input domain.DealInput) domain.DealSummary
}

type readinessServiceHandler struct{}

func NewReadinessService() ReadinessService {
	return readinessServiceHandler{}
}

// Eligibility score bands. At or above strongAlignment the deal is
// treated as strongly differentiated; below weakAlignment the eligibility
// shortfall counts as a major constraint.
const (
	strongAlignmentScore = 4.5
	weakAlignmentScore   = 3.0
)

var talkingPointsByStatus = map[domain.DealReadinessStatus][]string{
	domain.ReadinessStrong: {
		"Align early on facility structure and pricing while momentum is strong",
		"Position the bank's sector expertise and mandate fit as differentiators",
		"Agree a timeline to term sheet with the client",
	},
	domain.ReadinessConditional: {
		"Walk through the flagged constraints and agree mitigants with the client",
		"Prioritise the recommended actions and assign clear owners",
		"Frame support as conditional on resolving the open constraints",
	},
	domain.ReadinessWeak: {
		"Set expectations that the deal is not ready to progress as structured",
		"Agree which mitigants would materially change the assessment",
		"Keep the relationship warm with a defined re-engagement trigger",
	},
}

func (h readinessServiceHandler) Assess(input domain.DealInput) domain.DealSummary {
	strengths := []string{}
	constraints := []string{}
	rmActions := []string{}
	majorConstraints := 0

	// A constraint is "major" when it comes from an unfavorable
	// categorical signal or a sub-threshold eligibility score. Soft
	// constraints never move the status.
	addMajor := func(constraint, action string) {
		constraints = append(constraints, constraint)
		rmActions = append(rmActions, action)
		majorConstraints++
	}
	addSoft := func(constraint, action string) {
		constraints = append(constraints, constraint)
		rmActions = append(rmActions, action)
	}

	if input.RatingAnchor.Grade != "" {
		strengths = append(strengths, fmt.Sprintf("Rating anchor available from %s", input.RatingAnchor.System))
	} else {
		addSoft(
			"No rating grade provided",
			"Obtain an internal or external rating grade for the client",
		)
	}

	switch {
	case input.Eligibility.Score >= strongAlignmentScore:
		strengths = append(strengths, "Eligibility score indicates strong mandate alignment")
	case input.Eligibility.Score >= weakAlignmentScore:
		strengths = append(strengths, "Eligibility score supports mandate alignment")
		addSoft(
			"Eligibility score is not strongly differentiated",
			"Strengthen the eligibility case with additional mandate evidence",
		)
	default:
		addMajor(
			"Weak eligibility against the strategic mandate",
			"Rework the mandate narrative before progressing the deal",
		)
	}
	if len(input.Eligibility.Drivers) > 0 {
		strengths = append(strengths, "Eligibility drivers documented")
	}

	if input.Sector.IsStrategic() {
		strengths = append(strengths, fmt.Sprintf("Operates in strategic sector: %s", input.Sector))
	} else {
		addSoft(
			"Sector is not a core strategic priority",
			"Articulate the strategic rationale for an out-of-mandate deal",
		)
	}

	signals := input.FinancialSignals

	switch signals.RevenueTrend3Y {
	case domain.RevenueDeclining:
		addMajor(
			"Revenue has declined over the past three years",
			"Validate orderbook, customer concentration, and the recovery plan",
		)
	case domain.RevenueImproving:
		strengths = append(strengths, "Revenue trend improving over three years")
	}

	switch signals.MarginTrend3Y {
	case domain.MarginUnderPressure:
		addMajor(
			"Margins are under pressure",
			"Assess pricing power and covenant headroom",
		)
	case domain.MarginImproving:
		strengths = append(strengths, "Margin trend improving over three years")
	}

	switch signals.LeveragePosition {
	case domain.LeverageElevated:
		addMajor(
			"Leverage is elevated",
			"Explore structural mitigants such as amortisation, covenants, collateral, or reserve accounts",
		)
	case domain.LeverageLow:
		strengths = append(strengths, "Leverage position is low")
	}

	switch signals.CashflowQuality {
	case domain.QualityWeak:
		addMajor(
			"Cash flow quality is weak",
			"Request a detailed working-capital analysis",
		)
	case domain.QualityStrong:
		strengths = append(strengths, "Cash flow quality is strong")
	}

	if signals.EarningsVolatility == domain.VolatilityHigh {
		addMajor(
			"Earnings volatility is high",
			"Add monitoring triggers and covenants to the structure",
		)
	}

	if signals.CapexGrowthInvestment == domain.InvestmentHigh {
		addMajor(
			"Capex and growth investment needs are high",
			"Validate the capex plan and funding contingencies",
		)
	}

	if signals.FinancialTransparency == domain.QualityWeak {
		addMajor(
			"Financial transparency is weak",
			"Obtain audited financial statements",
		)
	}

	var status domain.DealReadinessStatus
	switch {
	case majorConstraints == 0:
		status = domain.ReadinessStrong
	case majorConstraints <= 2:
		status = domain.ReadinessConditional
	default:
		status = domain.ReadinessWeak
	}

	mandateFitSummary := fmt.Sprintf(
		"%s operates in the %s sector with an eligibility score of %.1f. Overall deal readiness is assessed as %s.",
		input.ClientName, input.Sector, input.Eligibility.Score, status,
	)

	talkingPoints := make([]string, len(talkingPointsByStatus[status]))
	copy(talkingPoints, talkingPointsByStatus[status])

	return domain.DealSummary{
		ClientName:       input.ClientName,
		GroupName:        input.GroupName,
		Sector:           input.Sector,
		RatingAnchor:     input.RatingAnchor,
		Eligibility:      input.Eligibility,
		FinancialSignals: input.FinancialSignals,
		DealReadiness: domain.DealReadiness{
			Status:      status,
			Strengths:   strengths,
			Constraints: constraints,
		},
		MandateFitSummary: mandateFitSummary,
		RmActions:         rmActions,
		TalkingPoints:     talkingPoints,
		Notes:             input.Notes,
	}
}
