package archive

import (
	"fmt"
	"net/http"
)

// NetworkError is returned for transport failures and unsuccessful responses.
// StatusCode is zero when no response was received.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFound reports whether the server answered 404.
func (e *NetworkError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
