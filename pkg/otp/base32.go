package otp

import (
	"encoding/base32"
	"fmt"
	"strings"
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// rawBase32 is the RFC 4648 alphabet without padding. Padding is validated
// and stripped before decoding.
var rawBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodeSecret decodes RFC 4648 Base32 text into raw key bytes.
//
// Decoding is case-insensitive over ASCII letters only; any byte outside
// A-Z, a-z, 2-7 and trailing '=' is rejected. Trailing '=' padding may be
// complete, partial or absent. Input whose unpadded length cannot describe whole bytes (1, 3 or
// 6 characters in the final 8-character group) is rejected rather than
// truncated. Empty input decodes to an empty slice; callers that need a key
// must check the length.
func DecodeSecret(text string) ([]byte, error) {
	trimmed := strings.TrimRight(text, "=")

	data := make([]byte, len(trimmed))
	for i := 0; i < len(trimmed); i++ {
		b := trimmed[i]
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		if strings.IndexByte(base32Alphabet, b) < 0 {
			return nil, fmt.Errorf("%w: illegal byte %#02x at offset %d",
				ErrInvalidSecretEncoding, trimmed[i], i)
		}
		data[i] = b
	}

	rem := len(data) % 8
	switch rem {
	case 1, 3, 6:
		return nil, fmt.Errorf("%w: %d trailing characters do not form whole bytes",
			ErrInvalidSecretEncoding, rem)
	}

	if pad := len(text) - len(trimmed); pad > 0 && pad > (8-rem)%8 {
		return nil, fmt.Errorf("%w: %d padding characters exceed the final group",
			ErrInvalidSecretEncoding, pad)
	}

	key := make([]byte, rawBase32.DecodedLen(len(data)))
	n, err := rawBase32.Decode(key, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretEncoding, err)
	}
	return key[:n], nil
}

// EncodeSecret encodes key as upper-case Base32 without padding, the form
// authenticator apps expect in otpauth URIs.
func EncodeSecret(key []byte) string {
	return rawBase32.EncodeToString(key)
}
