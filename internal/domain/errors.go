package domain

import "fmt"

// ValidationError is a user-visible 400-class failure tied to a single
// request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SensitiveDataError is raised when a free-text field looks like it
// contains an account number, IBAN, or email address. The request is
// rejected before the text can reach any narrative-generation call.
type SensitiveDataError struct {
	Field string
}

func (e SensitiveDataError) Error() string {
	return fmt.Sprintf(
		"potential sensitive data detected in %s - remove account numbers, IBANs, and email addresses before resubmitting",
		e.Field,
	)
}
