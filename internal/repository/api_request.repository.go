package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApiRequest is one row of the request audit log. Only the transport
// envelope is recorded; no deal state is read back by any code path.
type ApiRequest struct {
	RequestID    uuid.UUID
	IPAddress    *string
	Method       string
	Route        string
	RequestBody  *string
	StartTs      time.Time
	DurationMs   *int64
	StatusCode   *int32
	ResponseBody *string
}

type ApiRequestRepository interface {
	Add(db *sql.DB, ar ApiRequest) (*ApiRequest, error)
	Update(db *sql.DB, ar ApiRequest) error
}

type ApiRequestRepositoryHandler struct{}

const apiRequestSchema = `
CREATE TABLE IF NOT EXISTS api_request (
	request_id    TEXT PRIMARY KEY,
	ip_address    TEXT,
	method        TEXT NOT NULL,
	route         TEXT NOT NULL,
	request_body  TEXT,
	start_ts      TIMESTAMP NOT NULL,
	duration_ms   INTEGER,
	status_code   INTEGER,
	response_body TEXT
);`

// EnsureApiRequestSchema creates the audit table if it does not exist yet.
func EnsureApiRequestSchema(db *sql.DB) error {
	if _, err := db.Exec(apiRequestSchema); err != nil {
		return fmt.Errorf("failed to ensure api_request schema: %w", err)
	}
	return nil
}

func (h ApiRequestRepositoryHandler) Add(db *sql.DB, ar ApiRequest) (*ApiRequest, error) {
	ar.RequestID = uuid.New()

	_, err := db.Exec(
		`INSERT INTO api_request (request_id, ip_address, method, route, request_body, start_ts)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ar.RequestID.String(),
		ar.IPAddress,
		ar.Method,
		ar.Route,
		ar.RequestBody,
		ar.StartTs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert API request: %w", err)
	}

	return &ar, nil
}

func (h ApiRequestRepositoryHandler) Update(db *sql.DB, ar ApiRequest) error {
	_, err := db.Exec(
		`UPDATE api_request SET duration_ms = ?, status_code = ?, response_body = ?
		 WHERE request_id = ?`,
		ar.DurationMs,
		ar.StatusCode,
		ar.ResponseBody,
		ar.RequestID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update API request: %w", err)
	}

	return nil
}
