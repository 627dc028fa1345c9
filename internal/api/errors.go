// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
)

// APIError is a remote rejection: the backend answered, but refused the
// request. Code and Message are surfaced verbatim from the envelope so the
// consoles can show the backend's own wording (duplicate barcode, blocked
// account, and so on).
type APIError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend rejected request with status %d", e.HTTPStatus)
}

// AsAPIError unwraps err into an APIError, if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a remote rejection caused by a
// missing, invalid or expired token. The consoles use it to prompt for a
// fresh login instead of showing a raw error.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && (apiErr.HTTPStatus == 401 || apiErr.HTTPStatus == 403)
}
