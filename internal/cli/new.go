package cli

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-otpauth/pkg/otp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type newOptions struct {
	issuer     string
	account    string
	algorithm  string
	digits     int
	period     uint
	secretSize uint
	hotp       bool
}

func newNewCommand(a *app) *cobra.Command {
	var o newOptions

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Provision a credential with a random secret and print its URI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNew(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.issuer, "issuer", "", "issuing organization (required)")
	f.StringVar(&o.account, "account", "", "account name (required)")
	f.StringVar(&o.algorithm, "algorithm", string(otp.DefaultAlgorithm), "SHA1, SHA256 or SHA512")
	f.IntVar(&o.digits, "digits", otp.DefaultDigits, "code length")
	f.UintVar(&o.period, "period", otp.DefaultPeriod, "TOTP time step in seconds")
	f.UintVar(&o.secretSize, "secret-size", 20, "secret length in bytes")
	f.BoolVar(&o.hotp, "hotp", false, "provision a counter-based (HOTP) credential")
	_ = cmd.MarkFlagRequired("issuer")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func (a *app) runNew(cmd *cobra.Command, o newOptions) error {
	_, lg, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	typ := otp.TypeTOTP
	if o.hotp {
		typ = otp.TypeHOTP
	}

	cred, err := otp.NewCredential(otp.GenerateOpts{
		Type:        typ,
		Issuer:      o.issuer,
		AccountName: o.account,
		Algorithm:   otp.Algorithm(strings.ToUpper(o.algorithm)),
		Digits:      o.digits,
		Period:      o.period,
		SecretSize:  o.secretSize,
	})
	if err != nil {
		return err
	}

	lg.Debug("provisioned credential",
		zap.Stringer("credential", cred),
		zap.String("type", string(cred.Type())),
		zap.String("algorithm", cred.Algorithm().String()))
	fmt.Fprintln(a.out, cred.URI())
	return nil
}
