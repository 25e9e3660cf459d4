// Package errors contains the error codes returned by the form templater packages.
package errors

import "fmt"

// Err is a form templater specific error.
type Err int

// Is implementation of errors.Is
func (e Err) Is(err error) bool {
	if cerr, ok := err.(Err); ok {
		return cerr == e
	}
	return false
}

func (e Err) Error() string {
	switch e {
	case ErrConfigMissing:
		return "formtemplater: missing required configuration key"
	case ErrConfigInvalid:
		return "formtemplater: invalid configuration value"
	case ErrBadRedirect:
		return "formtemplater: could not parse authorization response"
	case ErrStateMismatch:
		return "formtemplater: authorization state mismatch"
	case ErrAccessDenied:
		return "formtemplater: authorization denied by provider"
	case ErrTokenExchange:
		return "formtemplater: token exchange failed"
	case ErrRequest:
		return "formtemplater: request failed"
	case ErrPrompt:
		return "formtemplater: no redirect URL entered"
	default:
		return "formtemplater: generic error occurred"
	}
}

// WithMessage returns an error with the specified message.
func (e Err) WithMessage(msg string) error {
	return &fterr{Err: e, message: msg}
}

// WithWrappedError wraps an existing error an returns a new error.
func (e Err) WithWrappedError(err error) error {
	return &fterr{Err: e, wrappedErr: err}
}

// WithMessageAndError wraps an existing error and adds a message.
func (e Err) WithMessageAndError(msg string, err error) error {
	return &fterr{Err: e, wrappedErr: err, message: msg}
}

const (
	_ Err = iota
	// ErrGeneric Generic error occurred.
	ErrGeneric
	// ErrConfigMissing a required configuration section or option is absent.
	ErrConfigMissing
	// ErrConfigInvalid a configuration value could not be interpreted.
	ErrConfigInvalid
	// ErrBadRedirect the pasted redirect URL is malformed or incomplete.
	ErrBadRedirect
	// ErrStateMismatch the redirect state does not match the generated one.
	ErrStateMismatch
	// ErrAccessDenied the provider answered the authorization request with an error.
	ErrAccessDenied
	// ErrTokenExchange the token endpoint rejected the authorization code.
	ErrTokenExchange
	// ErrRequest an authenticated request failed or returned a non-2xx status.
	ErrRequest
	// ErrPrompt the console prompt could not be read.
	ErrPrompt
)

type fterr struct {
	Err
	message    string
	wrappedErr error
}

func (e fterr) Error() string {
	switch {
	case e.message == "" && e.wrappedErr == nil:
		return e.Err.Error()
	case e.message == "":
		return fmt.Sprintf("%v: %v", e.Err.Error(), e.wrappedErr)
	case e.wrappedErr != nil:
		return fmt.Sprintf("%v: %v: %v", e.Err.Error(), e.message, e.wrappedErr)
	}
	return fmt.Sprintf("%v: %v", e.Err.Error(), e.message)
}

func (e fterr) Unwrap() error {
	return e.wrappedErr
}
