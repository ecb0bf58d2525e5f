package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/redist/internal/config"
	"github.com/ZebulonRouseFrantzich/redist/internal/logging"
	"github.com/ZebulonRouseFrantzich/redist/internal/platform"
	"github.com/ZebulonRouseFrantzich/redist/internal/project"
	"github.com/ZebulonRouseFrantzich/redist/internal/redist"
	"github.com/ZebulonRouseFrantzich/redist/internal/runner"
	"github.com/ZebulonRouseFrantzich/redist/internal/stamp"
	"github.com/ZebulonRouseFrantzich/redist/internal/ui"
	"github.com/ZebulonRouseFrantzich/redist/internal/version"
)

// app carries flags and collaborators shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// flags
	projectDir string
	configPath string
	verbose    bool

	// collaborators, replaced in tests
	detector  platform.Detector
	newRunner func(out io.Writer, logger zerolog.Logger) runner.Runner
	clock     stamp.Clock

	// resolved before each command runs
	info    *platform.Info
	logger  zerolog.Logger
	printer *ui.Printer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		detector: platform.NewDetector(),
		newRunner: func(out io.Writer, logger zerolog.Logger) runner.Runner {
			return runner.NewExecRunner(out, logger)
		},
		clock:   stamp.RealClock{},
		logger:  zerolog.Nop(),
		printer: ui.New(stdout, runtime.GOOS == "windows"),
	}
}

// usageError marks errors that should be followed by the command's usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "redist",
		Short: "Version stamping and redistributable packaging for Qt applications",
		Long: `redist stamps a release version into a Qt project's build settings and
resource script, and assembles the redistributable package for the host
platform from the previously built binary.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.projectDir, "project-dir", ".", "Project directory or any directory below it")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Release config (default: release/release.lua under the project root, if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(a.versionCmd(), a.packageCmd(), a.verifyCmd())
	return root
}

// setup detects the platform and builds the logger and printer for it.
func (a *app) setup(ctx context.Context) error {
	info, err := a.detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}
	a.info = info

	plain := info.IsWindows()
	a.logger = logging.New(a.stderr, a.verbose, plain)
	a.printer = ui.New(a.stdout, plain)
	a.logger.Debug().Str("platform", info.Describe()).Msg("detected platform")

	return nil
}

// loadRelease reads the release config and locates the project root.
func (a *app) loadRelease(ctx context.Context) (*config.Release, string, error) {
	path := a.configPath
	if path == "" {
		path = a.defaultConfigPath()
	}
	a.logger.Debug().Str("path", path).Msg("release config")

	release, err := config.NewParser(a.info, a.logger).LoadOrDefault(ctx, path)
	if err != nil {
		return nil, "", err
	}

	root, err := project.Locate(a.projectDir, release.Marker)
	if err != nil {
		return nil, "", err
	}
	a.logger.Debug().Str("root", root).Msg("located project")

	return release, root, nil
}

// defaultConfigPath returns release/release.lua under the project root found
// with the default marker. Projects with a custom marker are not found that
// way, so their config is looked up under --project-dir itself.
func (a *app) defaultConfigPath() string {
	dir := a.projectDir
	if root, err := project.Locate(a.projectDir, config.Default().Marker); err == nil {
		dir = root
	}
	return filepath.Join(dir, "release", config.FileName)
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.rootCmd()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	a.report(err)

	var usage *usageError
	if errors.As(err, &usage) {
		if sub, _, findErr := cmd.Find(args); findErr == nil {
			fmt.Fprintln(a.stdout)
			fmt.Fprint(a.stdout, sub.UsageString())
		}
	}
	return 1
}

// report prints err with the remediation hint that applies to it.
func (a *app) report(err error) {
	var parseErr *config.ParseError
	if errors.As(err, &parseErr) {
		a.printer.Error(errors.New(config.FormatError(parseErr, a.verbose)))
		return
	}

	a.printer.Error(err)

	var missing *redist.DeploymentToolMissingError
	if errors.As(err, &missing) {
		a.printer.Println("Find Qt installation and update your PATH like:")
		a.printer.Hint(missing.Hint)
	}

	if errors.Is(err, version.ErrInvalidVersionString) {
		a.printer.Println("Expected " + version.Usage + ", for example 0.2.0-alpha2")
	}
}
