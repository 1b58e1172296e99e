// Package error defines domain-specific errors for the reporting application.
package error

// CodedError pairs a stable API code with a readable message and the
// underlying cause. Each domain instantiates it with its own code type, so
// errors.As can tell a facility error from a timeline error.
type CodedError[C ~string] struct {
	Code    C
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CodedError[C]) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CodedError[C]) Unwrap() error {
	return e.Err
}

func coded[C ~string](code C, message string, err error) *CodedError[C] {
	return &CodedError[C]{Code: code, Message: message, Err: err}
}
