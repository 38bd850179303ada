package client

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when the question is blank after trimming.
// No request is sent.
var ErrEmptyQuery = errors.New("query is empty")

// RequestError means the service answered with a non-2xx status.
type RequestError struct {
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Server returned %d", e.Status)
}

// TransportError covers network failures and undecodable bodies.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "transport error"
}

func (e *TransportError) Unwrap() error { return e.Err }

func newTransportError(err error) *TransportError {
	return &TransportError{Message: err.Error(), Err: err}
}
