// Package otp provides TOTP (RFC 6238) and HOTP (RFC 4226) code generation
// from otpauth:// provisioning URIs.
//
// A URI is parsed once into an immutable Credential. Codes are then computed
// for a caller-supplied Unix time; the package never reads the clock on its
// own except through an Authenticator's Clock, and performs no I/O.
//
// # Generating Codes
//
//	cred, err := otp.Parse("otpauth://totp/Example:alice@example.com" +
//	    "?issuer=Example&secret=JBSWY3DPEHPK3PXP")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := otp.Code(cred, time.Now().Unix())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The building blocks are exported for callers that need them separately:
// DecodeSecret (Base32), HOTP (keyed hash and dynamic truncation), TOTP and
// Counter (time step derivation) and Format (zero-padded decimal rendering).
//
// # URI Parameters
//
// The issuer and secret parameters are required. Optional parameters and
// their defaults:
//   - algorithm: SHA1, SHA256 or SHA512, matched case-insensitively. Absent
//     or unrecognized values fall back to SHA1.
//   - digits: 6, between 1 and 10.
//   - period: 30 seconds.
//   - counter: 0, used by hotp credentials.
//
// The path label may be written "issuer:account". By default the account
// part becomes the credential label; ParseWithOptions with LabelBeforeColon
// selects the issuer part instead.
//
// # Validation
//
// An Authenticator checks user-supplied codes against a credential:
//
//	auth, err := otp.NewAuthenticator(otp.Config{
//	    Credential: cred,
//	    Skew:       1, // Allow 1 period of clock skew
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := auth.Authenticate(ctx, "123456"); err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	}
//
// # Errors
//
// Failures are reported as sentinel errors for use with errors.Is:
// ErrMalformedURI, ErrMissingParameter, ErrInvalidSecretEncoding,
// ErrEmptySecret, ErrInvalidTimestamp and ErrInvalidDigitCount, among others.
// A missing parameter is a *MissingParameterError carrying its name.
//
// # Thread Safety
//
// Credential and Authenticator values are safe for concurrent use. Multiple
// goroutines can compute codes from the same credential simultaneously.
package otp
