package rest

import (
	"fmt"
	"net/http"
)

// ServiceError is a non-2xx response. Body holds the start of the response
// payload for diagnostics.
type ServiceError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: %d %s: %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Temporary reports statuses worth retrying by re-advancing the stream.
func (e *ServiceError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
