package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jeremyhahn/go-otpauth/pkg/keyring"
	"github.com/jeremyhahn/go-otpauth/pkg/otp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoCredentials = errors.New("no credentials: pass otpauth URIs or --file")

func newCodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code [uri...]",
		Short: "Print the current code for each otpauth URI",
		Long: `Print the current code for each otpauth URI given as an argument or
listed one per line in --file ("-" reads standard input). Lines starting with
'#' are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCode(cmd, args)
		},
	}

	cmd.Flags().StringP("file", "f", "", `file of otpauth URIs, one per line ("-" for stdin)`)
	cmd.Flags().Int64("at", 0, "compute codes at this Unix time instead of now")

	return cmd
}

func (a *app) runCode(cmd *cobra.Command, args []string) error {
	cfg, lg, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	mode, err := otp.ParseLabelMode(cfg.LabelMode)
	if err != nil {
		return err
	}
	opts := otp.ParseOptions{LabelMode: mode}

	kr, failed := a.loadKeyring(cfg.File, args, opts, lg)
	if kr.Len() == 0 && failed == 0 {
		return errNoCredentials
	}

	at, err := a.now(cmd)
	if err != nil {
		return err
	}
	lg.Debug("computing codes", zap.Int("credentials", kr.Len()), zap.Int64("at", at))

	results, err := kr.Codes(cmd.Context(), at)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, r := range results {
		if r.Err != nil {
			failed++
			lg.Error("failed to compute code",
				zap.Stringer("credential", r.Credential),
				zap.Error(r.Err))
			continue
		}
		remaining := "-"
		if r.Credential.Type() != otp.TypeHOTP {
			remaining = fmt.Sprintf("%ds", r.Remaining)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Credential.Issuer(), r.Credential.Label(), r.Code, remaining)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d credential(s) failed", failed)
	}
	return nil
}

// loadKeyring collects credentials from file (if set) followed by args. It
// logs and counts every URI that fails to parse.
func (a *app) loadKeyring(file string, args []string, opts otp.ParseOptions, lg *zap.Logger) (*keyring.Keyring, int) {
	kr := keyring.New()
	failed := 0

	if file != "" {
		loaded, err := a.readFile(file, opts)
		if err != nil {
			var joined interface{ Unwrap() []error }
			if errors.As(err, &joined) {
				for _, e := range joined.Unwrap() {
					failed++
					lg.Error("skipping credential", zap.String("file", file), zap.Error(e))
				}
			} else {
				failed++
				lg.Error("failed to read credentials", zap.String("file", file), zap.Error(err))
			}
		}
		for _, c := range loaded.Credentials() {
			kr.Add(c)
		}
	}

	for i, arg := range args {
		c, err := otp.ParseWithOptions(arg, opts)
		if err != nil {
			failed++
			lg.Error("skipping credential", zap.Int("arg", i+1), zap.Error(err))
			continue
		}
		lg.Debug("parsed credential",
			zap.String("issuer", c.Issuer()),
			zap.String("label", c.Label()),
			zap.String("algorithm", c.Algorithm().String()))
		kr.Add(c)
	}

	return kr, failed
}

func (a *app) readFile(file string, opts otp.ParseOptions) (*keyring.Keyring, error) {
	var r io.Reader = a.in
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return keyring.Load(r, opts)
}
