package otp

// Code returns the display code for c. HOTP credentials use the counter
// carried by their URI; every other type uses the time step containing
// Unix time at.
func Code(c *Credential, at int64) (string, error) {
	if c == nil {
		return "", ErrNilCredential
	}
	if c.typ == TypeHOTP {
		return CodeAt(c, c.counter)
	}

	v, err := TOTP(c, at)
	if err != nil {
		return "", err
	}
	return Format(v, c.digits)
}

// CodeAt returns the display code for c at an explicit counter value.
func CodeAt(c *Credential, counter uint64) (string, error) {
	if c == nil {
		return "", ErrNilCredential
	}
	v, err := HOTP(c.secret, counter, c.algorithm)
	if err != nil {
		return "", err
	}
	return Format(v, c.digits)
}
