package domain

import (
	"fmt"
	"strings"
	"time"
)

// StrategicSector categorizes a client against the bank's strategic mandate.
type StrategicSector string

const (
	SectorManufacturing      StrategicSector = "Manufacturing"
	SectorAdvancedTechnology StrategicSector = "Advanced Technology"
	SectorHealthcare         StrategicSector = "Healthcare"
	SectorFoodSecurity       StrategicSector = "Food Security"
	SectorRenewables         StrategicSector = "Renewables"
	SectorOther              StrategicSector = "Other"
)

func (s StrategicSector) Validate() error {
	switch s {
	case SectorManufacturing, SectorAdvancedTechnology, SectorHealthcare,
		SectorFoodSecurity, SectorRenewables, SectorOther:
		return nil
	}
	return fmt.Errorf("unknown sector %q", string(s))
}

// IsStrategic reports whether the sector is one of the bank's priority
// sectors, i.e. anything except Other.
func (s StrategicSector) IsStrategic() bool {
	return s.Validate() == nil && s != SectorOther
}

type RevenueTrend string

const (
	RevenueImproving RevenueTrend = "Improving"
	RevenueStable    RevenueTrend = "Stable"
	RevenueDeclining RevenueTrend = "Declining"
)

func (t RevenueTrend) Validate() error {
	switch t {
	case RevenueImproving, RevenueStable, RevenueDeclining:
		return nil
	}
	return fmt.Errorf("unknown revenue trend %q", string(t))
}

type MarginTrend string

const (
	MarginImproving     MarginTrend = "Improving"
	MarginStable        MarginTrend = "Stable"
	MarginUnderPressure MarginTrend = "Under Pressure"
)

func (t MarginTrend) Validate() error {
	switch t {
	case MarginImproving, MarginStable, MarginUnderPressure:
		return nil
	}
	return fmt.Errorf("unknown margin trend %q", string(t))
}

type LeveragePosition string

const (
	LeverageLow      LeveragePosition = "Low"
	LeverageModerate LeveragePosition = "Moderate"
	LeverageElevated LeveragePosition = "Elevated"
)

func (l LeveragePosition) Validate() error {
	switch l {
	case LeverageLow, LeverageModerate, LeverageElevated:
		return nil
	}
	return fmt.Errorf("unknown leverage position %q", string(l))
}

// SignalQuality grades cash flow quality and financial transparency.
type SignalQuality string

const (
	QualityStrong   SignalQuality = "Strong"
	QualityAdequate SignalQuality = "Adequate"
	QualityWeak     SignalQuality = "Weak"
)

func (q SignalQuality) Validate() error {
	switch q {
	case QualityStrong, QualityAdequate, QualityWeak:
		return nil
	}
	return fmt.Errorf("unknown signal quality %q", string(q))
}

type VolatilityLevel string

const (
	VolatilityLow      VolatilityLevel = "Low"
	VolatilityModerate VolatilityLevel = "Moderate"
	VolatilityHigh     VolatilityLevel = "High"
)

func (v VolatilityLevel) Validate() error {
	switch v {
	case VolatilityLow, VolatilityModerate, VolatilityHigh:
		return nil
	}
	return fmt.Errorf("unknown volatility level %q", string(v))
}

type InvestmentLevel string

const (
	InvestmentHigh     InvestmentLevel = "High"
	InvestmentModerate InvestmentLevel = "Moderate"
	InvestmentLow      InvestmentLevel = "Low"
)

func (i InvestmentLevel) Validate() error {
	switch i {
	case InvestmentHigh, InvestmentModerate, InvestmentLow:
		return nil
	}
	return fmt.Errorf("unknown investment level %q", string(i))
}

// RatingAnchor records the rating grade the deal is anchored on and where
// it came from (Credit Lens, Moody's, etc).
type RatingAnchor struct {
	System  string  `json:"system"`
	Grade   string  `json:"grade"`
	Outlook *string `json:"outlook"`
	AsOf    *string `json:"as_of"`
}

// Eligibility is the caller-supplied score of the deal against the
// strategic mandate, on a 0.0 to 6.0 scale.
type Eligibility struct {
	Score     float64            `json:"score"`
	Drivers   []string           `json:"drivers"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// FinancialSignals are the seven categorical financial-health inputs. All
// of them are fixed enums - no open-ended strings reach the rule engine.
type FinancialSignals struct {
	RevenueTrend3Y        RevenueTrend     `json:"revenue_trend_3y"`
	MarginTrend3Y         MarginTrend      `json:"margin_trend_3y"`
	LeveragePosition      LeveragePosition `json:"leverage_position"`
	CashflowQuality       SignalQuality    `json:"cashflow_quality"`
	EarningsVolatility    VolatilityLevel  `json:"earnings_volatility"`
	CapexGrowthInvestment InvestmentLevel  `json:"capex_growth_investment"`
	FinancialTransparency SignalQuality    `json:"financial_transparency"`
}

func (f FinancialSignals) Validate() error {
	checks := []struct {
		field string
		err   error
	}{
		{"financial_signals.revenue_trend_3y", f.RevenueTrend3Y.Validate()},
		{"financial_signals.margin_trend_3y", f.MarginTrend3Y.Validate()},
		{"financial_signals.leverage_position", f.LeveragePosition.Validate()},
		{"financial_signals.cashflow_quality", f.CashflowQuality.Validate()},
		{"financial_signals.earnings_volatility", f.EarningsVolatility.Validate()},
		{"financial_signals.capex_growth_investment", f.CapexGrowthInvestment.Validate()},
		{"financial_signals.financial_transparency", f.FinancialTransparency.Validate()},
	}
	for _, check := range checks {
		if check.err != nil {
			return ValidationError{Field: check.field, Reason: check.err.Error()}
		}
	}
	return nil
}

// DealInput is the caller-supplied description of a prospective deal. It is
// validated once per request and treated as immutable afterwards.
type DealInput struct {
	ClientName       string           `json:"client_name"`
	GroupName        *string          `json:"group_name"`
	Sector           StrategicSector  `json:"sector"`
	RatingAnchor     RatingAnchor     `json:"rating_anchor"`
	Eligibility      Eligibility      `json:"eligibility"`
	FinancialSignals FinancialSignals `json:"financial_signals"`
	Notes            *string          `json:"notes"`
}

// Validate checks enum membership and required fields, clamps the
// eligibility score into [0, 6], and normalizes absent collections to
// empty ones so downstream code never sees nil.
func (d *DealInput) Validate() error {
	if strings.TrimSpace(d.ClientName) == "" {
		return ValidationError{Field: "client_name", Reason: "must not be empty"}
	}
	if err := d.Sector.Validate(); err != nil {
		return ValidationError{Field: "sector", Reason: err.Error()}
	}
	if err := d.FinancialSignals.Validate(); err != nil {
		return err
	}
	if d.RatingAnchor.AsOf != nil {
		if _, err := time.Parse("2006-01-02", *d.RatingAnchor.AsOf); err != nil {
			return ValidationError{Field: "rating_anchor.as_of", Reason: "must be formatted YYYY-MM-DD"}
		}
	}

	if d.Eligibility.Score < 0 {
		d.Eligibility.Score = 0
	}
	if d.Eligibility.Score > 6 {
		d.Eligibility.Score = 6
	}
	if d.Eligibility.Drivers == nil {
		d.Eligibility.Drivers = []string{}
	}
	if d.Eligibility.Breakdown == nil {
		d.Eligibility.Breakdown = map[string]float64{}
	}

	return nil
}

type DealReadinessStatus string

const (
	ReadinessStrong      DealReadinessStatus = "Strong"
	ReadinessConditional DealReadinessStatus = "Conditional"
	ReadinessWeak        DealReadinessStatus = "Weak"
)

// DealReadiness is the classified verdict plus the evidence behind it.
type DealReadiness struct {
	Status      DealReadinessStatus `json:"status"`
	Strengths   []string            `json:"strengths"`
	Constraints []string            `json:"constraints"`
}

// DealSummary is the full assessment output. It echoes the descriptive
// input fields so the summary is self-contained for downstream rendering
// and AI grounding. Never mutated after Assess returns it.
type DealSummary struct {
	ClientName       string           `json:"client_name"`
	GroupName        *string          `json:"group_name"`
	Sector           StrategicSector  `json:"sector"`
	RatingAnchor     RatingAnchor     `json:"rating_anchor"`
	Eligibility      Eligibility      `json:"eligibility"`
	FinancialSignals FinancialSignals `json:"financial_signals"`

	DealReadiness     DealReadiness `json:"deal_readiness"`
	MandateFitSummary string        `json:"mandate_fit_summary"`
	RmActions         []string      `json:"rm_actions"`
	TalkingPoints     []string      `json:"talking_points"`

	CreatedAt *string `json:"created_at"`
	Notes     *string `json:"notes"`
}

// Explanation is the RM-facing narrative derived from a DealSummary,
// whether rendered deterministically or by the enhancement adapter.
type Explanation struct {
	ExecutiveSummary string
	KeyRisks         []string
	TalkingPoints    []string
}
