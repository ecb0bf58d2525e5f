package main

import (
	"errors"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/redist/internal/stamp"
	"github.com/ZebulonRouseFrantzich/redist/internal/version"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version " + version.Usage,
		Short: "Stamp a version into the project's release files",
		Long: `Stamp a version into release/version.pri, generate release/version.rc
from release/version.rc.template and record the version in
release/version.txt for the package command.`,
		Example: "  redist version 0.2.0-alpha2",
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return &usageError{errors.New("no version string is given")}
			case len(args) > 1:
				return &usageError{errors.New("too many arguments")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := version.Parse(args[0])
			if err != nil {
				return &usageError{err}
			}

			release, root, err := a.loadRelease(cmd.Context())
			if err != nil {
				return err
			}

			a.printer.Println("Version: " + spec.String())

			targets := stamp.DefaultTargets()
			releaseDir := filepath.Join(root, release.ReleaseDir)
			p := stamp.NewPropagator(osfs.New(releaseDir), a.clock, a.logger)
			if err := p.Propagate(spec, targets); err != nil {
				return err
			}

			for _, t := range targets {
				out := t.Output
				if out == "" {
					out = t.Source
				}
				a.printer.Println("Updated " + out)
			}
			a.printer.Println("Updated " + stamp.MarkerFile)
			a.printer.Success("OK")
			return nil
		},
	}
}
