package otp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// LabelMode selects which side of a colon-delimited URI label becomes the
// credential's label.
type LabelMode int

const (
	// LabelAfterColon takes the text after the first colon, treating the
	// text before it as a redundant issuer hint. This is the default.
	LabelAfterColon LabelMode = iota
	// LabelBeforeColon takes the text before the first colon.
	LabelBeforeColon
)

// ParseLabelMode maps "after" and "before" to their LabelMode.
func ParseLabelMode(s string) (LabelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "after":
		return LabelAfterColon, nil
	case "before":
		return LabelBeforeColon, nil
	}
	return 0, fmt.Errorf("otp: unknown label mode %q", s)
}

// ParseOptions adjusts how Parse interprets a URI.
type ParseOptions struct {
	LabelMode LabelMode
}

// Parse parses an otpauth URI of the form
//
//	otpauth://TYPE/LABEL?issuer=ISSUER&secret=SECRET[&algorithm=ALG][&digits=N][&period=S][&counter=C]
//
// into a Credential using the default ParseOptions.
func Parse(uri string) (*Credential, error) {
	return ParseWithOptions(uri, ParseOptions{})
}

// ParseWithOptions parses uri like Parse, applying opts.
//
// The issuer and secret parameters are required. An absent or unrecognized
// algorithm falls back to DefaultAlgorithm without error. The host (TYPE) is
// recorded but not validated.
func ParseWithOptions(uri string, opts ParseOptions) (*Credential, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURI, err)
	}
	if !strings.EqualFold(u.Scheme, Scheme) {
		return nil, fmt.Errorf("%w: scheme must be %q, got %q", ErrMalformedURI, Scheme, u.Scheme)
	}
	if u.Opaque != "" {
		return nil, fmt.Errorf("%w: missing '//' after scheme", ErrMalformedURI)
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrMalformedURI, err)
	}

	c := &Credential{
		typ:       Type(strings.ToLower(u.Host)),
		label:     splitLabel(strings.TrimPrefix(u.Path, "/"), opts.LabelMode),
		algorithm: DefaultAlgorithm,
		digits:    DefaultDigits,
		period:    DefaultPeriod,
	}
	if c.typ == "" {
		c.typ = TypeTOTP
	}

	c.issuer = strings.TrimSpace(query.Get("issuer"))
	if c.issuer == "" {
		return nil, &MissingParameterError{Name: "issuer"}
	}
	if _, ok := query["secret"]; !ok {
		return nil, &MissingParameterError{Name: "secret"}
	}
	c.secretRaw = strings.TrimSpace(query.Get("secret"))

	c.algorithm = ParseAlgorithm(query.Get("algorithm"))

	if s := query.Get("digits"); s != "" {
		d, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidDigitCount, s)
		}
		if err := validateDigits(d); err != nil {
			return nil, err
		}
		c.digits = d
	}

	if s := query.Get("period"); s != "" {
		p, err := strconv.ParseUint(s, 10, 32)
		if err != nil || p == 0 {
			return nil, fmt.Errorf("%w: %q must be a positive number of seconds", ErrInvalidPeriod, s)
		}
		c.period = uint(p)
	}

	if s := query.Get("counter"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCounter, s)
		}
		c.counter = n
	}

	key, err := DecodeSecret(c.secretRaw)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, ErrEmptySecret
	}
	c.secret = key

	return c, nil
}

func splitLabel(path string, mode LabelMode) string {
	before, after, found := strings.Cut(path, ":")
	if !found {
		return strings.TrimSpace(path)
	}
	if mode == LabelBeforeColon {
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(after)
}
