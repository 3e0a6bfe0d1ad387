package web

// Error is used to pass an error during the request through the application
// with web specific context: the HTTP status the adapter should answer with.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// Error implements the error interface. It uses the wrapped error message.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the wrapped error for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}
