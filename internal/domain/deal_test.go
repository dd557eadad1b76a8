package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func validInput() DealInput {
	return DealInput{
		ClientName: "Gulf Agritech Group",
		Sector:     SectorFoodSecurity,
		RatingAnchor: RatingAnchor{
			System: "Moody's",
			Grade:  "Baa2",
		},
		Eligibility: Eligibility{Score: 4.2},
		FinancialSignals: FinancialSignals{
			RevenueTrend3Y:        RevenueStable,
			MarginTrend3Y:         MarginStable,
			LeveragePosition:      LeverageModerate,
			CashflowQuality:       QualityAdequate,
			EarningsVolatility:    VolatilityModerate,
			CapexGrowthInvestment: InvestmentModerate,
			FinancialTransparency: QualityAdequate,
		},
	}
}

func Test_DealInput_Validate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		input := validInput()
		require.NoError(t, input.Validate())
	})

	t.Run("empty client name rejected", func(t *testing.T) {
		input := validInput()
		input.ClientName = "   "

		err := input.Validate()
		require.Error(t, err)

		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "client_name", validationErr.Field)
	})

	t.Run("unknown sector rejected", func(t *testing.T) {
		input := validInput()
		input.Sector = "Aerospace"

		err := input.Validate()
		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "sector", validationErr.Field)
	})

	t.Run("unknown signal value rejected with field detail", func(t *testing.T) {
		input := validInput()
		input.FinancialSignals.LeveragePosition = "Sky High"

		err := input.Validate()
		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "financial_signals.leverage_position", validationErr.Field)
	})

	t.Run("score clamped into range", func(t *testing.T) {
		input := validInput()
		input.Eligibility.Score = 9.5
		require.NoError(t, input.Validate())
		require.Equal(t, 6.0, input.Eligibility.Score)

		input.Eligibility.Score = -1.0
		require.NoError(t, input.Validate())
		require.Equal(t, 0.0, input.Eligibility.Score)
	})

	t.Run("nil collections normalized to empty", func(t *testing.T) {
		input := validInput()
		require.NoError(t, input.Validate())
		require.NotNil(t, input.Eligibility.Drivers)
		require.NotNil(t, input.Eligibility.Breakdown)
	})

	t.Run("malformed rating date rejected", func(t *testing.T) {
		input := validInput()
		asOf := "03/02/2025"
		input.RatingAnchor.AsOf = &asOf

		err := input.Validate()
		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "rating_anchor.as_of", validationErr.Field)
	})
}

func Test_DealInput_wireFormat(t *testing.T) {
	payload := `{
		"client_name": "Gulf Agritech Group",
		"group_name": "Gulf Holdings",
		"sector": "Food Security",
		"rating_anchor": {"system": "Credit Lens", "grade": "4+", "outlook": "Stable", "as_of": "2025-06-30"},
		"eligibility": {"score": 4.8, "drivers": ["Sector mandate"], "breakdown": {"sector": 2.5}},
		"financial_signals": {
			"revenue_trend_3y": "Improving",
			"margin_trend_3y": "Under Pressure",
			"leverage_position": "Moderate",
			"cashflow_quality": "Adequate",
			"earnings_volatility": "Low",
			"capex_growth_investment": "Moderate",
			"financial_transparency": "Strong"
		},
		"notes": "Expansion into poultry processing"
	}`

	var input DealInput
	require.NoError(t, json.Unmarshal([]byte(payload), &input))
	require.NoError(t, input.Validate())

	require.Equal(t, SectorFoodSecurity, input.Sector)
	require.Equal(t, MarginUnderPressure, input.FinancialSignals.MarginTrend3Y)
	require.Equal(t, "Gulf Holdings", *input.GroupName)
	require.Equal(t, 4.8, input.Eligibility.Score)
}

func Test_IsStrategic(t *testing.T) {
	require.True(t, SectorRenewables.IsStrategic())
	require.False(t, SectorOther.IsStrategic())
	require.False(t, StrategicSector("Aerospace").IsStrategic())
}
