package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/redist/internal/git"
	"github.com/ZebulonRouseFrantzich/redist/internal/redist"
	"github.com/ZebulonRouseFrantzich/redist/internal/sign"
)

// passphraseEnv holds the passphrase of an encrypted signing key.
const passphraseEnv = "REDIST_SIGN_PASSPHRASE"

func (a *app) packageCmd() *cobra.Command {
	var (
		checksum bool
		signKey  string
	)

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Build the redistributable package for this platform",
		Long: `Build the redistributable package from the built binary, using the
version recorded by the version command. Windows produces a zip, macOS a
disk image; Linux produces nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			release, root, err := a.loadRelease(ctx)
			if err != nil {
				return err
			}

			pkg, err := redist.NewPackager(redist.Config{
				Platform: a.info.Platform,
				Release:  release,
				Runner:   a.newRunner(a.stdout, a.logger),
				Printer:  a.printer,
				Logger:   a.logger,
				Progress: a.stderr,
			})
			if err != nil {
				return err
			}

			result, err := pkg.Run(ctx, root)
			if err != nil {
				return err
			}

			if result.Artifact != nil && (checksum || signKey != "") {
				if err := a.writeSidecars(result.Artifact.Path, signKey); err != nil {
					return err
				}
			}

			rev, err := git.NewClient(result.ProjectRoot).HeadCommit(ctx)
			switch {
			case err == nil:
				a.printer.Println("Revision: " + rev.String())
			case errors.Is(err, git.ErrNotAGitRepo), errors.Is(err, git.ErrNoCommits):
				a.logger.Debug().Err(err).Msg("no revision to report")
			default:
				a.logger.Warn().Err(err).Msg("read git revision")
			}

			a.printer.Success("\nDone\n")
			return nil
		},
	}

	cmd.Flags().BoolVar(&checksum, "checksum", false, "Write a SHA-256 checksum next to the package")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "Sign the package with the OpenPGP private key in `FILE` (implies --checksum)")

	return cmd
}

func (a *app) writeSidecars(artifact, signKey string) error {
	sum, err := sign.WriteChecksum(artifact)
	if err != nil {
		return err
	}
	a.printer.Println("Checksum: " + filepath.Base(sum))

	if signKey == "" {
		return nil
	}

	sig, err := sign.SignDetached(artifact, signKey, []byte(os.Getenv(passphraseEnv)))
	if err != nil {
		return err
	}
	a.printer.Println("Signature: " + filepath.Base(sig))
	return nil
}
