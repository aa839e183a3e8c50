package weather

import "errors"

// Error kinds a provider can report. Callers classify with errors.Is; the
// concrete cause is carried in the wrapped message.
var (
	// ErrAuth indicates rejected or missing provider credentials (401/403).
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound indicates the provider does not recognize the city.
	ErrNotFound = errors.New("city not found")

	// ErrTransient covers network failures, timeouts, rate limiting and 5xx
	// responses. The batch may succeed on a later run without any change.
	ErrTransient = errors.New("transient provider error")

	// ErrParse indicates a response that decoded incorrectly or is missing
	// expected fields.
	ErrParse = errors.New("malformed provider response")
)

// Kind returns a short label for a provider error, for console reporting.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrParse):
		return "parse"
	default:
		return "error"
	}
}
