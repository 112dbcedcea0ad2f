package model

// Standard error codes for domain errors
const (
	ErrCodeInvalidKey        = "INVALID_KEY"
	ErrCodeMissingSessionID  = "MISSING_SESSION_ID"
	ErrCodeNotAuthenticated  = "NOT_AUTHENTICATED"
	ErrCodeInvalidCandidates = "INVALID_CANDIDATES"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidKey        = NewDomainError(ErrCodeInvalidKey, "Key must be three 5-character groups separated by dashes")
	ErrMissingSessionID  = NewDomainError(ErrCodeMissingSessionID, "Session has no sessionid token")
	ErrNotAuthenticated  = NewDomainError(ErrCodeNotAuthenticated, "Session is not signed in")
	ErrInvalidCandidates = NewDomainError(ErrCodeInvalidCandidates, "Candidate list could not be parsed")
)
