package api

import (
	"encoding/json"
	"errors"
	"testing"

	"rmassistant/internal/domain"
	"rmassistant/internal/repository"

	"github.com/stretchr/testify/require"
)

func qaBody(t *testing.T, question string, summary *domain.DealSummary) string {
	t.Helper()
	payload := map[string]any{"question": question}
	if summary != nil {
		payload["deal_summary"] = summary
	}
	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(encoded)
}

func Test_aiQa(t *testing.T) {
	t.Run("no summary returns the assess-first instruction with disclaimer", func(t *testing.T) {
		handler := newTestHandler(repository.NewDisabledGptRepository())

		w := performRequest(t, handler, "POST", "/ai/qa", qaBody(t, "what are the next steps?", nil))

		require.Equal(t, 200, w.Code)

		var response aiQaResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, Disclaimer, response.Disclaimer)
		require.Contains(t, response.Answer, "Run an assessment first")
	})

	t.Run("next step question renders deterministic actions when enhancement fails", func(t *testing.T) {
		stub := &stubGptRepository{err: errors.New("connection refused")}
		handler := newTestHandler(stub)

		summary := assessedSummary(t, func(d *domain.DealInput) {
			d.FinancialSignals.LeveragePosition = domain.LeverageElevated
		})

		w := performRequest(t, handler, "POST", "/ai/qa", qaBody(t, "What should we do next?", &summary))

		require.Equal(t, 200, w.Code)
		require.Equal(t, 1, stub.calls)

		var response aiQaResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Contains(t, response.Answer, "Leverage is elevated")
		require.Equal(t, Disclaimer, response.Disclaimer)
	})

	t.Run("successful enhancement replaces the answer", func(t *testing.T) {
		stub := &stubGptRepository{answer: "Enhanced answer"}
		handler := newTestHandler(stub)
		summary := assessedSummary(t, nil)

		w := performRequest(t, handler, "POST", "/ai/qa", qaBody(t, "how is the deal looking?", &summary))

		require.Equal(t, 200, w.Code)

		var response aiQaResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, "Enhanced answer", response.Answer)
		require.Equal(t, Disclaimer, response.Disclaimer)
	})

	t.Run("empty question is a 400", func(t *testing.T) {
		handler := newTestHandler(repository.NewDisabledGptRepository())
		w := performRequest(t, handler, "POST", "/ai/qa", `{"question": "  "}`)

		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), `"field":"question"`)
	})

	t.Run("sensitive question never reaches the adapter", func(t *testing.T) {
		stub := &stubGptRepository{answer: "should not appear"}
		handler := newTestHandler(stub)

		w := performRequest(t, handler, "POST", "/ai/qa", qaBody(t, "can we pay into 4111111111111111?", nil))

		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), `"code":"sensitive_data_detected"`)
		require.Equal(t, 0, stub.calls)
	})

	t.Run("sensitive notes on the summary never reach the adapter", func(t *testing.T) {
		stub := &stubGptRepository{answer: "should not appear"}
		handler := newTestHandler(stub)

		summary := assessedSummary(t, nil)
		notes := "relationship email rm@bank.ae"
		summary.Notes = &notes

		w := performRequest(t, handler, "POST", "/ai/qa", qaBody(t, "how is the deal looking?", &summary))

		require.Equal(t, 400, w.Code)
		require.Equal(t, 0, stub.calls)
	})
}
