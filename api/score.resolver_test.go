package api

import (
	"encoding/json"
	"testing"

	"rmassistant/internal/repository"
	"rmassistant/internal/service"

	"github.com/stretchr/testify/require"
)

func Test_score(t *testing.T) {
	handler := newTestHandler(repository.NewDisabledGptRepository())

	t.Run("scores a typed payload", func(t *testing.T) {
		body := `{
			"loan_amnt": 50000,
			"int_rate": 12.5,
			"dti": 18,
			"annual_inc": 240000,
			"term": 36,
			"grade": "C",
			"revol_util": 45,
			"delinq_2yrs": 1,
			"open_acc": 6
		}`
		w := performRequest(t, handler, "POST", "/api/score", body)

		require.Equal(t, 200, w.Code)

		var result service.ScoreResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Equal(t, "demo-mock", result.ModelVersion)
		require.Greater(t, result.PD, 0.0)
		require.Less(t, result.PD, 1.0)
		require.Len(t, result.Features, 7)
	})

	t.Run("tolerates stringly-typed numbers", func(t *testing.T) {
		body := `{
			"loan_amnt": "50,000",
			"int_rate": "12.5",
			"term": "60 months",
			"grade": "c"
		}`
		w := performRequest(t, handler, "POST", "/api/score", body)

		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), `"model_version":"demo-mock"`)
	})

	t.Run("empty payload still scores", func(t *testing.T) {
		w := performRequest(t, handler, "POST", "/api/score", `{}`)
		require.Equal(t, 200, w.Code)
	})
}
