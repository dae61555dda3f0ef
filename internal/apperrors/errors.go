package apperrors

import "fmt"

// ValidationError reports bad caller input (wrong content type, non-positive
// amount). Handlers map it to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a formatted message.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a failure of an external collaborator: the blob store,
// the AI model, or the payout gateway. Handlers map it to HTTP 502. No
// distinction is drawn between transient and permanent upstream failures;
// everything is surfaced immediately with no retry.
type UpstreamError struct {
	Service string
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstream creates an UpstreamError for the named service.
func NewUpstream(service, message string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Message: message, Err: err}
}
