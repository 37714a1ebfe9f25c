package api

import (
	"errors"
	"fmt"
)

// ErrSessionRevoked is returned for any upstream 401/403. It is never shown
// to the user directly; middleware.HandleAPIError turns it into a forced
// logout plus a redirect to the sign-in page.
var ErrSessionRevoked = errors.New("session rejected by campus api")

// genericMessage is shown whenever the upstream gave us nothing usable.
const genericMessage = "An unknown error occurred."

// Error is a rejection response from the campus API: the upstream answered,
// but refused the request. Message is the human-readable text extracted from
// the response body, if any.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("campus api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("campus api: %d", e.Status)
}

// IsAuthRejection reports whether err means the current credential is no
// longer accepted upstream.
func IsAuthRejection(err error) bool {
	return errors.Is(err, ErrSessionRevoked)
}

// UserMessage extracts the inline message to show on a form for a failed
// call: the upstream's message when one was present, a generic line for
// transport failures and empty rejections.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericMessage
}
