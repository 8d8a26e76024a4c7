package client

import "errors"

// RequestFailure is the one error kind returned by every backend call.
// Message is safe to show to the user.
type RequestFailure struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestFailure) Error() string {
	return e.Message
}

// HTTPStatus is the backend status, 0 when no response arrived.
func (e *RequestFailure) HTTPStatus() int {
	return e.StatusCode
}

func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// Message returns the user-facing text for err, or fallback when err is not
// a RequestFailure.
func Message(err error, fallback string) string {
	var failure *RequestFailure
	if errors.As(err, &failure) && failure.Message != "" {
		return failure.Message
	}
	if fallback != "" {
		return fallback
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
