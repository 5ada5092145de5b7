package fetch

import (
	"errors"
	"fmt"
)

// ErrInvalidFeed is returned when a response body is not well-formed XML.
var ErrInvalidFeed = errors.New("invalid XML/feed")

// ErrBodyTooLarge is wrapped in a *ConnError when a response body exceeds
// the read limit.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d", e.Code)
}

// ConnError reports a request that produced no usable response.
type ConnError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ConnError) Error() string {
	return "connection failed: " + e.Reason
}

func (e *ConnError) Unwrap() error {
	return e.Err
}
