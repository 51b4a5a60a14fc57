package otp

import (
	"crypto/hmac"
	"encoding/binary"
	"fmt"
)

// HOTP computes the RFC 4226 truncated value for counter under secret.
//
// The counter is encoded as 8 big-endian bytes and authenticated with the
// HMAC selected by alg. The result is the 31-bit dynamic truncation of the
// digest; reduce it to a display code with Format.
func HOTP(secret []byte, counter uint64, alg Algorithm) (uint32, error) {
	if len(secret) == 0 {
		return 0, ErrEmptySecret
	}

	newHash, err := alg.hashFunc()
	if err != nil {
		return 0, err
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(newHash, secret)
	if _, err := mac.Write(msg[:]); err != nil {
		return 0, fmt.Errorf("otp: hmac write: %w", err)
	}

	return truncate(mac.Sum(nil)), nil
}

// truncate implements RFC 4226 section 5.3 dynamic truncation. The low nibble
// of the final byte selects a 4-byte window; the top bit is masked off.
func truncate(sum []byte) uint32 {
	offset := sum[len(sum)-1] & 0x0f
	return binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
}
