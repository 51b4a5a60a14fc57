package otp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"
)

// Clock supplies the current time to an Authenticator.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config holds OTP authenticator configuration.
type Config struct {
	// Credential is the parsed credential codes are checked against (required).
	Credential *Credential
	// Skew specifies the number of time periods to check before and after
	// the current time for TOTP validation (tolerance for clock skew).
	// Default: 1
	Skew uint
	// DisableSkew accepts only the current time step. Skew is ignored.
	DisableSkew bool
	// Clock supplies the current time for TOTP validation.
	// Default: the system clock
	Clock Clock
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	if c.Credential == nil {
		return fmt.Errorf("%w: credential must not be nil", ErrInvalidConfig)
	}
	if c.Skew > 10 {
		return fmt.Errorf("%w: skew must not exceed 10 periods", ErrInvalidConfig)
	}
	return nil
}

// Authenticator validates OTP codes against a single credential.
// It is safe for concurrent use.
type Authenticator struct {
	cfg Config
}

// NewAuthenticator creates a new OTP authenticator.
// The configuration is validated and an error is returned if invalid.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Skew == 0 {
		cfg.Skew = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}

	return &Authenticator{cfg: cfg}, nil
}

// Credential returns the credential codes are validated against.
func (a *Authenticator) Credential() *Credential {
	if a == nil {
		return nil
	}
	return a.cfg.Credential
}

// Authenticate validates an OTP code.
// For TOTP, it validates against the current time with skew tolerance.
// For HOTP, it validates against the counter carried by the credential.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	cred := a.cfg.Credential
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}
	if len(code) != cred.digits {
		return fmt.Errorf("%w: expected %d digits", ErrInvalidCode, cred.digits)
	}

	if cred.typ == TypeHOTP {
		return a.match(code, cred.counter)
	}

	current, err := Counter(a.cfg.Clock.Now().Unix(), cred.period)
	if err != nil {
		return err
	}

	skew := uint64(a.cfg.Skew)
	if a.cfg.DisableSkew {
		skew = 0
	}

	for i := uint64(0); i <= skew; i++ {
		if err := a.match(code, current+i); err == nil {
			return nil
		}
		if i > 0 && current >= i {
			if err := a.match(code, current-i); err == nil {
				return nil
			}
		}
	}

	return ErrInvalidCode
}

// ValidateCounter validates an HOTP code and returns the new counter value.
// This method is only valid for HOTP authenticators.
// The returned counter should be stored and used for the next validation.
func (a *Authenticator) ValidateCounter(ctx context.Context, code string, counter uint64) (uint64, error) {
	if a == nil {
		return 0, ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if a.cfg.Credential.typ != TypeHOTP {
		return 0, fmt.Errorf("%w: ValidateCounter is only valid for HOTP", ErrInvalidConfig)
	}

	if strings.TrimSpace(code) == "" {
		return 0, fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	if err := a.match(strings.TrimSpace(code), counter); err != nil {
		return 0, err
	}

	// Return incremented counter
	return counter + 1, nil
}

// Generate generates the code for the current time (TOTP) or the
// credential's counter (HOTP).
func (a *Authenticator) Generate() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	return Code(a.cfg.Credential, a.cfg.Clock.Now().Unix())
}

func (a *Authenticator) match(code string, counter uint64) error {
	want, err := CodeAt(a.cfg.Credential, counter)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(want)) != 1 {
		return ErrInvalidCode
	}
	return nil
}
