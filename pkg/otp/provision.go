package otp

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
	"github.com/pquerna/otp/totp"
)

// GenerateOpts describes a credential to provision.
type GenerateOpts struct {
	// Type selects TOTP or HOTP. Default: TypeTOTP
	Type Type
	// Issuer is the name of the issuing organization (required).
	Issuer string
	// AccountName is the account identifier (required).
	AccountName string
	// Algorithm is the HMAC hash. Default: SHA1
	Algorithm Algorithm
	// Digits is the code length. Default: 6
	Digits int
	// Period is the TOTP time step in seconds. Default: 30
	Period uint
	// SecretSize is the key length in bytes. Default: 20
	SecretSize uint
}

// NewCredential provisions a credential with a fresh random secret. The key
// is generated by github.com/pquerna/otp and its URL is parsed back with
// Parse, so the result obeys the same invariants as any parsed credential.
func NewCredential(opts GenerateOpts) (*Credential, error) {
	if opts.Issuer == "" || opts.AccountName == "" {
		return nil, fmt.Errorf("%w: issuer and account name are required", ErrInvalidConfig)
	}
	if strings.Contains(opts.Issuer, ":") {
		return nil, fmt.Errorf("%w: issuer must not contain a colon", ErrInvalidConfig)
	}
	if opts.Algorithm == "" {
		opts.Algorithm = DefaultAlgorithm
	}
	if !opts.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: algorithm must be SHA1, SHA256, or SHA512", ErrInvalidConfig)
	}
	if opts.Digits == 0 {
		opts.Digits = DefaultDigits
	}
	if err := validateDigits(opts.Digits); err != nil {
		return nil, err
	}
	if opts.SecretSize == 0 {
		opts.SecretSize = 20
	}

	var (
		key *otp.Key
		err error
	)
	switch opts.Type {
	case "", TypeTOTP:
		key, err = totp.Generate(totp.GenerateOpts{
			Issuer:      opts.Issuer,
			AccountName: opts.AccountName,
			Period:      opts.Period,
			SecretSize:  opts.SecretSize,
			Digits:      otp.Digits(opts.Digits),
			Algorithm:   opts.Algorithm.OTPAlgorithm(),
		})
	case TypeHOTP:
		key, err = hotp.Generate(hotp.GenerateOpts{
			Issuer:      opts.Issuer,
			AccountName: opts.AccountName,
			SecretSize:  opts.SecretSize,
			Digits:      otp.Digits(opts.Digits),
			Algorithm:   opts.Algorithm.OTPAlgorithm(),
		})
	default:
		return nil, fmt.Errorf("%w: type must be 'totp' or 'hotp'", ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("otp: failed to generate key: %w", err)
	}

	return Parse(key.URL())
}

// GenerateSecret generates a cryptographically random secret key.
// The secret is returned Base32-encoded without padding, suitable for the
// secret parameter of an otpauth URI.
func GenerateSecret() (string, error) {
	// Generate 20 bytes (160 bits) of random data
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("otp: failed to generate random secret: %w", err)
	}
	return EncodeSecret(secret), nil
}
