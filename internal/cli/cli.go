// Package cli implements the otpauth command-line front end: it reads
// otpauth URIs, supplies the current time and prints codes.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jeremyhahn/go-otpauth/internal/clock"
	"github.com/jeremyhahn/go-otpauth/internal/config"
	"github.com/jeremyhahn/go-otpauth/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	clock  clock.Clocker

	configPath string
}

// Execute runs the root command against the process's standard streams and
// exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "otpauth: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// NewRootCommand builds the otpauth command tree bound to the given streams.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, clock: clock.New()}

	root := &cobra.Command{
		Use:   "otpauth",
		Short: "Generate one-time passwords from otpauth:// URIs.",
		Long: `otpauth computes TOTP (RFC 6238) and HOTP (RFC 4226) codes from the
otpauth:// provisioning URIs produced by authenticator apps and QR codes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	pf.String("env", "development", "log format: development or production")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("label-mode", "after", "label side of issuer:account to display: after or before")

	root.AddCommand(
		newCodeCommand(a),
		newVerifyCommand(a),
		newNewCommand(a),
		newVersionCommand(a),
	)

	return root
}

// setup loads configuration for cmd and returns a logger writing to errOut.
func (a *app) setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	lg := logger.New(cfg.Env, cfg.Verbose, a.errOut)
	return cfg, lg, nil
}

// now returns the Unix time to compute codes at: --at when given, otherwise
// the app clock.
func (a *app) now(cmd *cobra.Command) (int64, error) {
	if f := cmd.Flags().Lookup("at"); f != nil && f.Changed {
		return cmd.Flags().GetInt64("at")
	}
	return a.clock.Now().Unix(), nil
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of otpauth",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "otpauth %s\n", Version)
		},
	}
}
