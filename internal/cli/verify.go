package cli

import (
	"fmt"

	"github.com/jeremyhahn/go-otpauth/internal/clock"
	"github.com/jeremyhahn/go-otpauth/pkg/otp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newVerifyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <uri> <code>",
		Short: "Check a code against an otpauth URI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerify(cmd, args[0], args[1])
		},
	}

	cmd.Flags().Uint("skew", 1, "periods of clock skew to accept either side of now (0 accepts only the current period)")
	cmd.Flags().Int64("at", 0, "verify at this Unix time instead of now")

	return cmd
}

func (a *app) runVerify(cmd *cobra.Command, uri, code string) error {
	cfg, lg, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	mode, err := otp.ParseLabelMode(cfg.LabelMode)
	if err != nil {
		return err
	}
	cred, err := otp.ParseWithOptions(uri, otp.ParseOptions{LabelMode: mode})
	if err != nil {
		return err
	}

	at, err := a.now(cmd)
	if err != nil {
		return err
	}

	auth, err := otp.NewAuthenticator(otp.Config{
		Credential:  cred,
		Skew:        cfg.Skew,
		DisableSkew: cfg.Skew == 0,
		Clock:       clock.At(at),
	})
	if err != nil {
		return err
	}

	if err := auth.Authenticate(cmd.Context(), code); err != nil {
		lg.Warn("code rejected", zap.Stringer("credential", cred), zap.Error(err))
		return err
	}

	lg.Debug("code accepted", zap.Stringer("credential", cred), zap.Uint("skew", cfg.Skew))
	fmt.Fprintln(a.out, "valid")
	return nil
}
