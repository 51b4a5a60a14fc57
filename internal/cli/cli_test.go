package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeremyhahn/go-otpauth/internal/clock"
	"github.com/jeremyhahn/go-otpauth/pkg/otp"
)

const (
	rfcURI  = "otpauth://totp/GitHub:octocat?issuer=GitHub&secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	hotpURI = "otpauth://hotp/Bank:bob?issuer=Bank&secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ&counter=1"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCommand(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCodeFromArgs(t *testing.T) {
	out, _, err := run(t, "", "code", "--at", "1111111109", rfcURI, hotpURI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if f := strings.Fields(lines[0]); strings.Join(f, " ") != "GitHub octocat 081804 1s" {
		t.Errorf("unexpected TOTP line %q", lines[0])
	}
	if f := strings.Fields(lines[1]); strings.Join(f, " ") != "Bank bob 287082 -" {
		t.Errorf("unexpected HOTP line %q", lines[1])
	}
}

func TestCodeFromStdin(t *testing.T) {
	stdin := "# accounts\n" + rfcURI + "\n\n"
	out, _, err := run(t, stdin, "code", "--file", "-", "--at", "59", "--label-mode", "before")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f := strings.Fields(out); strings.Join(f, " ") != "GitHub GitHub 287082 1s" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCodeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uris.txt")
	if err := os.WriteFile(path, []byte(rfcURI+"\notpauth://totp/x?issuer=X\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, logs, err := run(t, "", "code", "-f", path, "--at", "1111111109")
	if err == nil {
		t.Fatal("expected error for the broken line")
	}
	if !strings.Contains(out, "081804") {
		t.Errorf("expected the valid credential to be printed, got %q", out)
	}
	if !strings.Contains(logs, "skipping credential") || !strings.Contains(logs, "secret") {
		t.Errorf("expected the broken line to be logged, got %q", logs)
	}
}

func TestCodeUsesClock(t *testing.T) {
	var out, errOut bytes.Buffer
	root := NewRootCommand(strings.NewReader(""), &out, &errOut)

	a := &app{in: strings.NewReader(""), out: &out, errOut: &errOut, clock: clock.At(59)}
	cmd := newCodeCommand(a)
	root.AddCommand(cmd)
	cmd.Use = "clocked"
	root.SetArgs([]string{"clocked", rfcURI})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "287082") {
		t.Errorf("expected code for t=59, got %q", out.String())
	}
}

func TestCodeErrors(t *testing.T) {
	if _, _, err := run(t, "", "code"); !errors.Is(err, errNoCredentials) {
		t.Errorf("expected %v, got %v", errNoCredentials, err)
	}

	_, logs, err := run(t, "", "code", "--at", "0", "otpauth://totp/a?issuer=X&secret=JBSWY3DP!")
	if err == nil {
		t.Error("expected error for invalid secret")
	}
	if strings.Contains(logs, "JBSWY3DP") {
		t.Errorf("log leaked the secret: %q", logs)
	}

	if _, _, err := run(t, "", "code", "--at", "-5", rfcURI); err == nil {
		t.Error("expected error for negative time")
	}

	if _, _, err := run(t, "", "code", "-f", filepath.Join(t.TempDir(), "missing"), "--at", "0"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name: "current code",
			args: []string{"verify", "--at", "1111111109", rfcURI, "081804"},
		},
		{
			name: "previous code within skew",
			args: []string{"verify", "--at", "1111111110", rfcURI, "081804"},
		},
		{
			name:    "previous code without skew",
			args:    []string{"verify", "--skew", "0", "--at", "1111111110", rfcURI, "081804"},
			wantErr: otp.ErrInvalidCode,
		},
		{
			name: "current code without skew",
			args: []string{"verify", "--skew", "0", "--at", "1111111109", rfcURI, "081804"},
		},
		{
			name:    "wrong code",
			args:    []string{"verify", "--at", "1111111109", rfcURI, "000000"},
			wantErr: otp.ErrInvalidCode,
		},
		{
			name:    "bad uri",
			args:    []string{"verify", "otpauth://totp/a?issuer=X", "000000"},
			wantErr: otp.ErrMissingParameter,
		},
		{
			name: "hotp",
			args: []string{"verify", hotpURI, "287082"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "", tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.TrimSpace(out) != "valid" {
				t.Errorf("expected valid, got %q", out)
			}
		})
	}
}

func TestNew(t *testing.T) {
	out, _, err := run(t, "", "new", "--issuer", "Example", "--account", "alice@example.com", "--algorithm", "sha256", "--digits", "8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := otp.Parse(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("output is not a valid URI: %v", err)
	}
	if c.Issuer() != "Example" || c.Label() != "alice@example.com" {
		t.Errorf("unexpected credential %s", c)
	}
	if c.Algorithm() != otp.AlgorithmSHA256 || c.Digits() != 8 {
		t.Errorf("unexpected parameters %s/%d", c.Algorithm(), c.Digits())
	}

	out, _, err = run(t, "", "new", "--issuer", "Example", "--account", "bob", "--hotp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "otpauth://hotp/") {
		t.Errorf("expected hotp URI, got %q", out)
	}

	if _, _, err := run(t, "", "new", "--account", "bob"); err == nil {
		t.Error("expected error without --issuer")
	}
	if _, _, err := run(t, "", "new", "--issuer", "X", "--account", "bob", "--algorithm", "md5"); !errors.Is(err, otp.ErrInvalidConfig) {
		t.Errorf("expected %v, got %v", otp.ErrInvalidConfig, err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "otpauth dev\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("OTPAUTH_LABEL_MODE", "middle")
	if _, _, err := run(t, "", "code", rfcURI); err == nil {
		t.Error("expected configuration error")
	}
}
