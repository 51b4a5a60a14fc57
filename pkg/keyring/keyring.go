// Package keyring holds an ordered set of otpauth credentials and computes
// codes for all of them at a single instant.
//
// A Keyring is the in-memory list a front end displays: it is loaded from
// newline-separated otpauth URIs and never written back.
package keyring

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/jeremyhahn/go-otpauth/pkg/otp"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNilKeyring indicates a nil keyring was used.
	ErrNilKeyring = errors.New("keyring: keyring is nil")
	// ErrNotFound indicates no credential matched a lookup.
	ErrNotFound = errors.New("keyring: credential not found")
)

// LineError reports a URI that failed to parse during Load.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("keyring: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Result is the code computed for one credential.
type Result struct {
	Credential *otp.Credential
	Code       string
	// Remaining is the number of seconds the code stays valid. It is zero
	// for HOTP credentials.
	Remaining uint
	Err       error
}

// Keyring is an ordered list of credentials. It is safe for concurrent use.
type Keyring struct {
	mu    sync.RWMutex
	creds []*otp.Credential
}

// New returns a keyring holding creds in order. Nil entries are skipped.
func New(creds ...*otp.Credential) *Keyring {
	k := &Keyring{}
	for _, c := range creds {
		k.Add(c)
	}
	return k
}

// Load reads one otpauth URI per line from r. Blank lines and lines starting
// with '#' are ignored. Lines that fail to parse are skipped and reported as
// *LineError values joined into the returned error; the keyring holds every
// credential that did parse.
func Load(r io.Reader, opts otp.ParseOptions) (*Keyring, error) {
	k := &Keyring{}

	var errs []error
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c, err := otp.ParseWithOptions(line, opts)
		if err != nil {
			errs = append(errs, &LineError{Line: n, Err: err})
			continue
		}
		k.creds = append(k.creds, c)
	}
	if err := sc.Err(); err != nil {
		return k, fmt.Errorf("keyring: read: %w", err)
	}

	return k, errors.Join(errs...)
}

// Add appends c to the keyring.
func (k *Keyring) Add(c *otp.Credential) {
	if k == nil || c == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.creds = append(k.creds, c)
}

// Len returns the number of credentials.
func (k *Keyring) Len() int {
	if k == nil {
		return 0
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.creds)
}

// Credentials returns the credentials in order.
func (k *Keyring) Credentials() []*otp.Credential {
	if k == nil {
		return nil
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]*otp.Credential, len(k.creds))
	copy(out, k.creds)
	return out
}

// Find returns the first credential whose label or "issuer:label" name
// equals name, ignoring case.
func (k *Keyring) Find(name string) (*otp.Credential, error) {
	if k == nil {
		return nil, ErrNilKeyring
	}
	for _, c := range k.Credentials() {
		if strings.EqualFold(c.Label(), name) || strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Codes computes the code of every credential at Unix time at. Credentials
// are processed concurrently; results are returned in keyring order and a
// failure for one credential is reported in its Result without affecting the
// others. The returned error is non-nil only if ctx ends first.
func (k *Keyring) Codes(ctx context.Context, at int64) ([]Result, error) {
	if k == nil {
		return nil, ErrNilKeyring
	}
	if ctx == nil {
		ctx = context.Background()
	}

	creds := k.Credentials()
	results := make([]Result, len(creds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range creds {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = compute(c, at)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func compute(c *otp.Credential, at int64) Result {
	r := Result{Credential: c}

	r.Code, r.Err = otp.Code(c, at)
	if r.Err != nil || c.Type() == otp.TypeHOTP {
		return r
	}

	r.Remaining, r.Err = c.Remaining(at)
	return r
}
