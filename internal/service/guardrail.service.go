package service

import (
	"regexp"
	"strings"

	"rmassistant/internal/domain"
)

// GuardrailService screens free-text fields for identifiers that must not
// reach the rule engine narrative paths or any external text-generation
// call.
type GuardrailService interface {
	// Scan reports whether text matches any sensitive-identifier pattern.
	Scan(text string) bool

	// Guard scans each labelled field in order and returns a
	// SensitiveDataError for the first match. Fields are pairs of
	// (label, text); all fields are checked before the caller may do
	// anything else with the text.
	Guard(fields ...GuardedField) error
}

type GuardedField struct {
	Label string
	Text  string
}

var (
	ibanPattern     = regexp.MustCompile(`\b[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}\b`)
	longDigitRun    = regexp.MustCompile(`\b[0-9]{12,19}\b`)
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	guardrailChecks = []*regexp.Regexp{ibanPattern, longDigitRun, emailPattern}
)

type guardrailServiceHandler struct{}

func NewGuardrailService() GuardrailService {
	return guardrailServiceHandler{}
}

func (h guardrailServiceHandler) Scan(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, pattern := range guardrailChecks {
		if pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func (h guardrailServiceHandler) Guard(fields ...GuardedField) error {
	for _, field := range fields {
		if h.Scan(field.Text) {
			return domain.SensitiveDataError{Field: field.Label}
		}
	}
	return nil
}
