// api/provenance/errors.go
package provenance

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps network-level failures: the call never produced a
	// response we could inspect.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedBody wraps responses whose body is not valid JSON. Never
	// coerced to an empty success.
	ErrMalformedBody = errors.New("malformed response body")
)

// ProvenanceError reports a response that carried no correlation identifier.
// It is an infrastructure trust violation, not an application error: the
// backend is misconfigured, and the response must never be treated as usable
// data regardless of its HTTP status. Callers should treat it as
// non-retryable by default and surface it distinctly from ordinary HTTP
// errors.
type ProvenanceError struct {
	URL           string
	Status        int
	CorrelationID string // the identifier we sent with the request
}

func (e *ProvenanceError) Error() string {
	return fmt.Sprintf("provenance violation: response from %s (status %d) carries no correlation identifier (request id %s)",
		e.URL, e.Status, e.CorrelationID)
}

// HTTPError reports a well-formed failure from the remote side: a non-2xx
// status whose body passed the provenance check. It is safe to display or
// retry per caller policy.
type HTTPError struct {
	Status        int
	Message       string
	CorrelationID string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d (correlation id %s)", e.Status, e.CorrelationID)
	}
	return fmt.Sprintf("backend returned status %d: %s (correlation id %s)", e.Status, e.Message, e.CorrelationID)
}

// IsProvenanceViolation reports whether err is a provenance trust failure.
func IsProvenanceViolation(err error) bool {
	var pe *ProvenanceError
	return errors.As(err, &pe)
}
