package redist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ZebulonRouseFrantzich/redist/internal/config"
	"github.com/ZebulonRouseFrantzich/redist/internal/platform"
	"github.com/ZebulonRouseFrantzich/redist/internal/project"
	"github.com/ZebulonRouseFrantzich/redist/internal/runner"
	"github.com/ZebulonRouseFrantzich/redist/internal/ui"
)

// Config holds the Packager's collaborators.
type Config struct {
	Platform platform.Platform
	Release  *config.Release // nil uses config.Default
	Runner   runner.Runner
	Printer  *ui.Printer    // nil discards output
	Logger   zerolog.Logger
	Progress io.Writer // archive progress bar, nil for none
}

// Packager runs one packaging pass.
type Packager struct {
	platform platform.Platform
	release  *config.Release
	strategy Strategy
	deps     deps
}

// NewPackager selects the strategy for cfg.Platform.
func NewPackager(cfg Config) (*Packager, error) {
	if cfg.Runner == nil {
		return nil, errors.New("runner is required")
	}
	if cfg.Release == nil {
		cfg.Release = config.Default()
	}
	if cfg.Printer == nil {
		cfg.Printer = ui.New(io.Discard, true)
	}

	d := deps{
		runner:   cfg.Runner,
		printer:  cfg.Printer,
		logger:   cfg.Logger,
		progress: cfg.Progress,
	}
	strategy, err := strategyFor(cfg.Platform, d)
	if err != nil {
		return nil, err
	}

	return &Packager{
		platform: cfg.Platform,
		release:  cfg.Release,
		strategy: strategy,
		deps:     d,
	}, nil
}

// Result describes a finished run.
type Result struct {
	ProjectRoot string
	Version     string
	Artifact    *Artifact // nil when the platform produces nothing
}

// Run locates the project from start and packages it.
func (p *Packager) Run(ctx context.Context, start string) (*Result, error) {
	pc, err := p.prepare(start)
	if err != nil {
		return nil, err
	}

	p.deps.printer.Bold(fmt.Sprintf("Create redistributable package version %s", pc.Version))
	p.deps.logger.Debug().
		Str("platform", pc.Platform.String()).
		Str("root", pc.ProjectRoot).
		Str("version", pc.Version).
		Str("tool", p.strategy.Tool()).
		Msg("packaging")

	if err := p.strategy.Preflight(ctx, pc); err != nil {
		return nil, err
	}

	if err := p.stage(pc); err != nil {
		return nil, err
	}

	artifact, err := p.strategy.Package(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("package for %s: %w", pc.Platform, err)
	}

	return &Result{ProjectRoot: pc.ProjectRoot, Version: pc.Version, Artifact: artifact}, nil
}

// prepare resolves the packaging context without touching the disk.
func (p *Packager) prepare(start string) (*Context, error) {
	r := p.release

	root, err := project.Locate(start, r.Marker)
	if err != nil {
		return nil, err
	}

	v, err := project.ReadVersion(filepath.Join(root, r.ReleaseDir))
	if err != nil {
		return nil, err
	}

	binary := r.WindowsExecutable
	if p.platform == platform.MacOS {
		binary = r.MacOSBundle
	}

	outDir := filepath.Join(root, r.OutDir)
	return &Context{
		Platform:    p.platform,
		Project:     r.Project,
		ProjectRoot: root,
		SourceDir:   filepath.Join(root, r.SourceDir),
		OutDir:      outDir,
		StagingDir:  filepath.Join(outDir, r.RedistDir),
		BinaryPath:  filepath.Join(root, r.BinDir, binary),
		Version:     v,
	}, nil
}

// stage creates the output directory if needed and recreates staging.
func (p *Packager) stage(pc *Context) error {
	printer := p.deps.printer

	printer.Header(fmt.Sprintf("Create %q dir if none...", p.release.OutDir))
	if _, err := os.Stat(pc.OutDir); err == nil {
		printer.Println("Already there")
	}
	if err := os.MkdirAll(pc.OutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	printer.Header(fmt.Sprintf("Recreate %q directory...", p.release.RedistDir))
	if err := os.RemoveAll(pc.StagingDir); err != nil {
		return fmt.Errorf("remove staging directory: %w", err)
	}
	if err := os.MkdirAll(pc.StagingDir, 0755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	return nil
}
