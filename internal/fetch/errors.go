package fetch

import (
	"errors"
	"fmt"
)

// HTTPStatusError is returned when the remote site answers with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
}

func asStatusError(err error) (*HTTPStatusError, bool) {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the remote site.
func IsNotFound(err error) bool {
	se, ok := asStatusError(err)
	return ok && se.StatusCode == 404
}
