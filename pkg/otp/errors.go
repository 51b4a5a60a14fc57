package otp

import (
	"errors"
	"fmt"
)

// Errors returned while parsing credentials and computing codes.
var (
	// ErrMalformedURI indicates the input is not a well-formed otpauth URI.
	ErrMalformedURI = errors.New("otp: malformed uri")
	// ErrMissingParameter indicates a required query parameter is absent.
	// The concrete error is a *MissingParameterError naming the parameter.
	ErrMissingParameter = errors.New("otp: missing required parameter")
	// ErrInvalidSecretEncoding indicates the secret is not valid Base32.
	ErrInvalidSecretEncoding = errors.New("otp: invalid secret encoding")
	// ErrEmptySecret indicates the decoded secret has zero length.
	ErrEmptySecret = errors.New("otp: empty secret")
	// ErrInvalidTimestamp indicates a negative Unix time was supplied.
	ErrInvalidTimestamp = errors.New("otp: invalid timestamp")
	// ErrInvalidDigitCount indicates a digit count outside [MinDigits, MaxDigits].
	ErrInvalidDigitCount = errors.New("otp: invalid digit count")
	// ErrInvalidPeriod indicates a time step that is zero or not a number.
	ErrInvalidPeriod = errors.New("otp: invalid period")
	// ErrInvalidCounter indicates an HOTP counter that is not an unsigned integer.
	ErrInvalidCounter = errors.New("otp: invalid counter")
	// ErrInvalidAlgorithm indicates an Algorithm value outside the supported set.
	ErrInvalidAlgorithm = errors.New("otp: invalid algorithm")
	// ErrNilCredential indicates a nil credential was used.
	ErrNilCredential = errors.New("otp: credential is nil")
)

// Errors returned by the Authenticator.
var (
	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)

// MissingParameterError reports which required query parameter was absent.
// It matches ErrMissingParameter with errors.Is.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingParameter, e.Name)
}

// Is reports whether target is ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}
