package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDb(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureApiRequestSchema(db))
	return db
}

func Test_ApiRequestRepository(t *testing.T) {
	handler := ApiRequestRepositoryHandler{}

	t.Run("add assigns a request id", func(t *testing.T) {
		db := newTestDb(t)

		body := `{"client_name":"Al Noor Industries"}`
		out, err := handler.Add(db, ApiRequest{
			Method:      "POST",
			Route:       "/assess",
			RequestBody: &body,
			StartTs:     time.Now().UTC(),
		})
		require.NoError(t, err)
		require.NotNil(t, out)
		require.NotEmpty(t, out.RequestID)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM api_request").Scan(&count))
		require.Equal(t, 1, count)
	})

	t.Run("update records outcome fields", func(t *testing.T) {
		db := newTestDb(t)

		out, err := handler.Add(db, ApiRequest{
			Method:  "POST",
			Route:   "/ai/qa",
			StartTs: time.Now().UTC(),
		})
		require.NoError(t, err)

		duration := int64(42)
		status := int32(200)
		responseBody := `{"answer":"ok"}`
		out.DurationMs = &duration
		out.StatusCode = &status
		out.ResponseBody = &responseBody

		require.NoError(t, handler.Update(db, *out))

		var gotStatus int32
		var gotDuration int64
		err = db.QueryRow(
			"SELECT status_code, duration_ms FROM api_request WHERE request_id = ?",
			out.RequestID.String(),
		).Scan(&gotStatus, &gotDuration)
		require.NoError(t, err)
		require.Equal(t, int32(200), gotStatus)
		require.Equal(t, int64(42), gotDuration)
	})

	t.Run("ensure schema is idempotent", func(t *testing.T) {
		db := newTestDb(t)
		require.NoError(t, EnsureApiRequestSchema(db))
	})
}
