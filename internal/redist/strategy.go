package redist

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ZebulonRouseFrantzich/redist/internal/platform"
	"github.com/ZebulonRouseFrantzich/redist/internal/runner"
	"github.com/ZebulonRouseFrantzich/redist/internal/ui"
)

// Context is everything a strategy needs for one run.
type Context struct {
	Platform    platform.Platform
	Project     string // artifact base name
	ProjectRoot string
	SourceDir   string // QML sources
	OutDir      string
	StagingDir  string // inside OutDir, recreated on every run
	BinaryPath  string // built executable or bundle
	Version     string
}

// Artifact is the produced package.
type Artifact struct {
	Name string
	Path string
}

// Strategy packages the application for one platform.
type Strategy interface {
	// Tool is the deployment tool checked during preflight, empty if none.
	Tool() string
	// Preflight runs before anything on disk is touched.
	Preflight(ctx context.Context, pc *Context) error
	// Package fills the staging directory and produces the artifact.
	// A nil artifact means the platform produces nothing.
	Package(ctx context.Context, pc *Context) (*Artifact, error)
}

// deps are the collaborators shared by all strategies.
type deps struct {
	runner   runner.Runner
	printer  *ui.Printer
	logger   zerolog.Logger
	progress io.Writer
}

// strategyFor selects the strategy for p.
func strategyFor(p platform.Platform, d deps) (Strategy, error) {
	switch p {
	case platform.Windows:
		return &windowsStrategy{deps: d}, nil
	case platform.MacOS:
		return &macOSStrategy{deps: d}, nil
	case platform.Linux:
		return &linuxStrategy{deps: d}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", p)
	}
}

// probe runs tool with args to check it is on PATH. Output is discarded and
// the exit code ignored: deployment tools exit non-zero on their help flags.
func (d deps) probe(ctx context.Context, p platform.Platform, tool string, args ...string) error {
	d.printer.Header("Check if Qt is in PATH...")

	_, err := d.runner.Run(ctx, runner.Command{Name: tool, Args: args}, runner.Options{})
	if errors.Is(err, runner.ErrToolNotFound) {
		return &DeploymentToolMissingError{Tool: tool, Hint: PathHint(p)}
	}
	if err != nil {
		return fmt.Errorf("probe %s: %w", tool, err)
	}
	return nil
}

// run streams the tool's output and fails on a non-zero exit.
func (d deps) run(ctx context.Context, dir, tool string, args ...string) error {
	_, err := d.runner.Run(ctx, runner.Command{Name: tool, Args: args, Dir: dir}, runner.Options{
		StreamOutput:  true,
		CheckExitCode: true,
	})
	return err
}

// prune removes the deny-listed files under root.
func (d deps) prune(root string, denied []string) {
	d.printer.Header("Clean some excessive files...")
	for _, rel := range removeAll(root, denied) {
		d.logger.Debug().Str("file", rel).Msg("removed")
	}
}
