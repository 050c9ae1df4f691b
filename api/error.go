package api

import "fmt"

//ErrorType are Error types
type ErrorType int

//ErrorTypes
const (
	ErrorTypeUser ErrorType = iota
	ErrorTypeServer
)

//Error wraps errors in the API
type Error struct {
	Description string
	Type        ErrorType
	Err         error
}

func (e *Error) Error() string {
	if e.Type == ErrorTypeUser {
		return fmt.Sprintf("User Error: %s: %v", e.Description, e.Err)
	}
	return fmt.Sprintf("Server Error: %s: %v", e.Description, e.Err)
}

//Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

func userError(description string, err error) *Error {
	return &Error{Description: description, Type: ErrorTypeUser, Err: err}
}

func serverError(description string, err error) *Error {
	return &Error{Description: description, Type: ErrorTypeServer, Err: err}
}
