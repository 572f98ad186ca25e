package weather

import (
	"fmt"
	"net/http"

	"github.com/germanamz/toolservers/pkg/tools/toolbox"
)

// StatusError records the HTTP status of a rejected upstream call.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// CheckStatus maps an upstream HTTP status to a tool error. It returns nil for
// any 2xx status.
//
//	401          invalid-request  invalid API key
//	404          not-found        API endpoint not found
//	429          invalid-request  rate limit exceeded
//	other        internal-error   OpenWeatherMap API error: <status>
func CheckStatus(code int) error {
	if code >= 200 && code < 300 {
		return nil
	}

	cause := &StatusError{StatusCode: code}

	switch code {
	case http.StatusUnauthorized:
		return &toolbox.Error{Category: toolbox.CategoryInvalidRequest, Message: "invalid API key", Err: cause}
	case http.StatusNotFound:
		return &toolbox.Error{Category: toolbox.CategoryNotFound, Message: "API endpoint not found", Err: cause}
	case http.StatusTooManyRequests:
		return &toolbox.Error{Category: toolbox.CategoryInvalidRequest, Message: "rate limit exceeded", Err: cause}
	default:
		return toolbox.Internal("OpenWeatherMap API error: %w", cause)
	}
}
