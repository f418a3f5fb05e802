package core

import "errors"

// UnauthorizedError reports that a document came back without the
// structure an extractor requires. the portal answers expired sessions
// with a login page and HTTP 200, so a missing structural anchor is
// the only session-expiry signal there is. callers should react by
// re-authenticating, not by treating this as a parse bug.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func IsUnauthorized(err error) bool {
	var unauthorized *UnauthorizedError
	return errors.As(err, &unauthorized)
}
