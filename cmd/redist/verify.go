package main

import (
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/redist/internal/sign"
)

func (a *app) verifyCmd() *cobra.Command {
	var keyring string

	cmd := &cobra.Command{
		Use:   "verify ARTIFACT",
		Short: "Check a package against its checksum and signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := sign.Verify(args[0], keyring)
			if err != nil {
				return err
			}

			a.printer.Success("Checksum OK")
			if result.Signed {
				a.printer.Success("Signature OK: " + result.Signer)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyring, "keyring", "", "Verify the detached signature against the public keys in `FILE`")

	return cmd
}
