package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned when a credential required by the remote service is not configured.
	ErrMissingAPIKey = errors.New("api key not configured")

	// ErrDecode is returned when a response body is not the expected JSON document.
	ErrDecode = errors.New("decode response")
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
}

// IsClientError reports a 4xx status other than 429. These describe the
// request, not the health of the remote service.
func (e *HTTPError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

// IsNotFound reports a 404 status.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
