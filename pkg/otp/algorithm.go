package otp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/pquerna/otp"
)

// Algorithm represents the hash algorithm used for OTP generation.
type Algorithm string

const (
	// AlgorithmSHA1 uses SHA1 hash algorithm.
	AlgorithmSHA1 Algorithm = "SHA1"
	// AlgorithmSHA256 uses SHA256 hash algorithm.
	AlgorithmSHA256 Algorithm = "SHA256"
	// AlgorithmSHA512 uses SHA512 hash algorithm.
	AlgorithmSHA512 Algorithm = "SHA512"
)

// DefaultAlgorithm is used when a URI omits the algorithm parameter or names
// one that is not supported.
const DefaultAlgorithm = AlgorithmSHA1

// ParseAlgorithm matches s case-insensitively against the supported
// algorithms. Empty or unrecognized input yields DefaultAlgorithm.
func ParseAlgorithm(s string) Algorithm {
	switch a := Algorithm(strings.ToUpper(strings.TrimSpace(s))); a {
	case AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512:
		return a
	default:
		return DefaultAlgorithm
	}
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	_, err := a.hashFunc()
	return err == nil
}

// Size returns the HMAC output length in bytes, or 0 for an invalid algorithm.
func (a Algorithm) Size() int {
	switch a {
	case AlgorithmSHA1:
		return sha1.Size
	case AlgorithmSHA256:
		return sha256.Size
	case AlgorithmSHA512:
		return sha512.Size
	}
	return 0
}

func (a Algorithm) String() string {
	return string(a)
}

// OTPAlgorithm converts a to the equivalent github.com/pquerna/otp value.
func (a Algorithm) OTPAlgorithm() otp.Algorithm {
	switch a {
	case AlgorithmSHA256:
		return otp.AlgorithmSHA256
	case AlgorithmSHA512:
		return otp.AlgorithmSHA512
	default:
		return otp.AlgorithmSHA1
	}
}

func (a Algorithm) hashFunc() (func() hash.Hash, error) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, nil
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA512:
		return sha512.New, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, string(a))
}
