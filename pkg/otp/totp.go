package otp

// DefaultPeriod is the TOTP time step in seconds used when a URI omits it.
const DefaultPeriod uint = 30

// Counter returns the RFC 6238 time step for Unix time at: at / period,
// rounded down. Counter is monotonic in at for a fixed period.
func Counter(at int64, period uint) (uint64, error) {
	if at < 0 {
		return 0, ErrInvalidTimestamp
	}
	if period == 0 {
		return 0, ErrInvalidPeriod
	}
	return uint64(at) / uint64(period), nil
}

// TOTP computes the RFC 6238 truncated value for c at Unix time at. The
// credential's type is not consulted; HOTP credentials are computed on the
// time step like any other.
func TOTP(c *Credential, at int64) (uint32, error) {
	if c == nil {
		return 0, ErrNilCredential
	}
	counter, err := Counter(at, c.period)
	if err != nil {
		return 0, err
	}
	return HOTP(c.secret, counter, c.algorithm)
}
