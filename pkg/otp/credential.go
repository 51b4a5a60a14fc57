package otp

import (
	"net/url"
	"strconv"
	"strings"
)

// Type represents the OTP algorithm type named by the URI host.
type Type string

const (
	// TypeTOTP represents Time-based OTP (RFC 6238).
	TypeTOTP Type = "totp"
	// TypeHOTP represents Counter-based OTP (RFC 4226).
	TypeHOTP Type = "hotp"
)

// Scheme is the URI scheme of provisioning URIs.
const Scheme = "otpauth"

// Credential is a parsed otpauth credential. It is immutable; a Credential
// only exists with a non-empty issuer and a non-empty decoded secret, so it
// is safe to share between goroutines.
type Credential struct {
	typ       Type
	label     string
	issuer    string
	secretRaw string
	secret    []byte
	algorithm Algorithm
	digits    int
	period    uint
	counter   uint64
}

// Type returns the URI host, normally TypeTOTP or TypeHOTP.
func (c *Credential) Type() Type { return c.typ }

// Label returns the account name taken from the URI path.
func (c *Credential) Label() string { return c.label }

// Issuer returns the issuer query parameter.
func (c *Credential) Issuer() string { return c.issuer }

// RawSecret returns the Base32 secret exactly as it appeared in the URI.
func (c *Credential) RawSecret() string { return c.secretRaw }

// Secret returns a copy of the decoded key bytes.
func (c *Credential) Secret() []byte {
	out := make([]byte, len(c.secret))
	copy(out, c.secret)
	return out
}

// Algorithm returns the HMAC hash algorithm.
func (c *Credential) Algorithm() Algorithm { return c.algorithm }

// Digits returns the code length.
func (c *Credential) Digits() int { return c.digits }

// Period returns the TOTP time step in seconds.
func (c *Credential) Period() uint { return c.period }

// Counter returns the HOTP counter carried by the URI. It is zero for TOTP
// credentials.
func (c *Credential) Counter() uint64 { return c.counter }

// Remaining returns the number of seconds until the code computed at Unix
// time at is replaced by the next one.
func (c *Credential) Remaining(at int64) (uint, error) {
	if c == nil {
		return 0, ErrNilCredential
	}
	if at < 0 {
		return 0, ErrInvalidTimestamp
	}
	if c.period == 0 {
		return 0, ErrInvalidPeriod
	}
	return c.period - uint(uint64(at)%uint64(c.period)), nil
}

// URI renders c as a canonical otpauth URI. The secret is re-encoded without
// padding and the label is written as "issuer:label". An issuer containing a
// colon is left out of the path so the label parses back unchanged.
func (c *Credential) URI() string {
	if c == nil {
		return ""
	}

	v := url.Values{}
	v.Set("secret", EncodeSecret(c.secret))
	v.Set("issuer", c.issuer)
	v.Set("algorithm", c.algorithm.String())
	v.Set("digits", strconv.Itoa(c.digits))
	if c.typ == TypeHOTP {
		v.Set("counter", strconv.FormatUint(c.counter, 10))
	} else {
		v.Set("period", strconv.FormatUint(uint64(c.period), 10))
	}

	u := url.URL{
		Scheme:   Scheme,
		Host:     string(c.typ),
		Path:     "/" + c.pathLabel(),
		RawQuery: v.Encode(),
	}
	return u.String()
}

func (c *Credential) pathLabel() string {
	switch {
	case !strings.Contains(c.issuer, ":"):
		return c.issuer + ":" + c.label
	case strings.Contains(c.label, ":"):
		return ":" + c.label
	default:
		return c.label
	}
}

// String identifies the credential without revealing its secret.
func (c *Credential) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.label == "" {
		return c.issuer
	}
	return c.issuer + ":" + c.label
}
