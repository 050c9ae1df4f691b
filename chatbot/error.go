package chatbot

import (
	"errors"
	"fmt"
)

// ErrorKind classifies flow failures
type ErrorKind int

// ErrorKinds
const (
	// ErrorKindValidation is caller input that failed its schema; no model call was made
	ErrorKindValidation ErrorKind = iota
	// ErrorKindGeneration is a failed model call or unusable model output
	ErrorKindGeneration
	// ErrorKindToolExecution is a failed tool read
	ErrorKindToolExecution
	// ErrorKindTimeout is a flow that exceeded its deadline
	ErrorKindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindValidation:
		return "Validation Error"
	case ErrorKindGeneration:
		return "Generation Error"
	case ErrorKindToolExecution:
		return "Tool Execution Error"
	case ErrorKindTimeout:
		return "Timeout Error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error wraps errors returned by flows and tools
type Error struct {
	Kind        ErrorKind
	Description string
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Description, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind returns whether err is or wraps an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

var (
	// ErrNoOutput is returned by a Model when the provider answered without any output
	ErrNoOutput = errors.New("model returned no output")
	// ErrTooManyToolRounds is returned by a Model when the tool call loop did not converge
	ErrTooManyToolRounds = errors.New("too many tool call rounds")
	// ErrUnknownTool is returned when the model calls a tool that is not bound
	ErrUnknownTool = errors.New("unknown tool")
)
