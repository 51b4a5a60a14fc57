package otp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

var (
	rfcSecretSHA1   = []byte("12345678901234567890")
	rfcSecretSHA256 = []byte("12345678901234567890123456789012")
	rfcSecretSHA512 = []byte("1234567890123456789012345678901234567890123456789012345678901234")
)

// TestHOTPRFC4226 tests the RFC 4226 Appendix D vectors
func TestHOTPRFC4226(t *testing.T) {
	tests := []struct {
		counter   uint64
		truncated uint32
		code      string
	}{
		{0, 1284755224, "755224"},
		{1, 1094287082, "287082"},
		{2, 137359152, "359152"},
		{3, 1726969429, "969429"},
		{4, 1640338314, "338314"},
		{5, 868254676, "254676"},
		{6, 1918287922, "287922"},
		{7, 82162583, "162583"},
		{8, 673399871, "399871"},
		{9, 645520489, "520489"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("counter %d", tt.counter), func(t *testing.T) {
			got, err := HOTP(rfcSecretSHA1, tt.counter, AlgorithmSHA1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.truncated {
				t.Errorf("expected truncated value %d, got %d", tt.truncated, got)
			}

			code, err := Format(got, 6)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, code)
			}
		})
	}
}

// TestHOTPErrors tests HOTP input validation
func TestHOTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		secret  []byte
		alg     Algorithm
		wantErr error
	}{
		{
			name:    "nil secret",
			secret:  nil,
			alg:     AlgorithmSHA1,
			wantErr: ErrEmptySecret,
		},
		{
			name:    "empty secret",
			secret:  []byte{},
			alg:     AlgorithmSHA256,
			wantErr: ErrEmptySecret,
		},
		{
			name:    "unsupported algorithm",
			secret:  rfcSecretSHA1,
			alg:     "MD5",
			wantErr: ErrInvalidAlgorithm,
		},
		{
			name:    "empty algorithm",
			secret:  rfcSecretSHA1,
			alg:     "",
			wantErr: ErrInvalidAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HOTP(tt.secret, 0, tt.alg)
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestHOTPDeterministic tests that identical inputs give identical output
func TestHOTPDeterministic(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512} {
		first, err := HOTP(rfcSecretSHA1, 42, alg)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", alg, err)
		}
		second, err := HOTP(rfcSecretSHA1, 42, alg)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", alg, err)
		}
		if first != second {
			t.Errorf("%s: expected identical values, got %d and %d", alg, first, second)
		}
		if first&0x80000000 != 0 {
			t.Errorf("%s: top bit set in %d", alg, first)
		}
	}
}

// TestHOTPMatchesPquerna cross-checks against github.com/pquerna/otp
func TestHOTPMatchesPquerna(t *testing.T) {
	secret := EncodeSecret(rfcSecretSHA512)

	for _, alg := range []Algorithm{AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512} {
		for _, counter := range []uint64{0, 1, 7, 1 << 20, 1<<40 + 3} {
			want, err := hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
				Digits:    otp.DigitsEight,
				Algorithm: alg.OTPAlgorithm(),
			})
			if err != nil {
				t.Fatalf("pquerna: %v", err)
			}

			v, err := HOTP(rfcSecretSHA512, counter, alg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := Format(v, 8)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != want {
				t.Errorf("%s counter %d: expected %s, got %s", alg, counter, want, got)
			}
		}
	}
}
