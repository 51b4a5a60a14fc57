package otp

import "fmt"

const (
	// DefaultDigits is the code length used when a URI omits it.
	DefaultDigits = 6
	// MinDigits is the shortest code Format will render.
	MinDigits = 1
	// MaxDigits is the longest code Format will render. A 31-bit truncated
	// value has no more than 10 decimal digits.
	MaxDigits = 10
)

var powersOf10 = [MaxDigits + 1]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000,
	10000000, 100000000, 1000000000, 10000000000,
}

// Format reduces value modulo 10^digits and renders it as a zero-padded
// decimal string of exactly digits characters.
func Format(value uint32, digits int) (string, error) {
	if err := validateDigits(digits); err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, uint64(value)%powersOf10[digits]), nil
}

func validateDigits(digits int) error {
	if digits < MinDigits || digits > MaxDigits {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidDigitCount, digits, MinDigits, MaxDigits)
	}
	return nil
}
