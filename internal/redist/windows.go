package redist

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/redist/internal/archive"
	"github.com/ZebulonRouseFrantzich/redist/internal/binary"
)

const windeployqt = "windeployqt"

// windowsDenyList holds files windeployqt copies that the application
// never loads. Paths are relative to the staging directory.
var windowsDenyList = []string{
	"libEGL.dll",
	"libGLESV2.dll",
	"sqldrivers/qsqlmysql.dll",
	"sqldrivers/qsqlodbc.dll",
	"sqldrivers/qsqlpsql.dll",
	"imageformats/qicns.dll",
	"imageformats/qtga.dll",
	"imageformats/qtiff.dll",
	"imageformats/qwbmp.dll",
	"imageformats/qwebp.dll",
}

type windowsStrategy struct {
	deps
}

func (s *windowsStrategy) Tool() string { return windeployqt }

func (s *windowsStrategy) Preflight(ctx context.Context, pc *Context) error {
	return s.probe(ctx, pc.Platform, windeployqt, "-v")
}

func (s *windowsStrategy) Package(ctx context.Context, pc *Context) (*Artifact, error) {
	exe := filepath.Join(pc.StagingDir, filepath.Base(pc.BinaryPath))

	s.printer.Header("Copy project files...")
	if err := copyFile(pc.BinaryPath, exe); err != nil {
		return nil, fmt.Errorf("copy %s: %w", pc.BinaryPath, err)
	}

	s.printer.Header("Run windeployqt...")
	err := s.run(ctx, pc.StagingDir, windeployqt,
		exe,
		"--dir", pc.StagingDir,
		"--no-translations",
		"--no-system-d3d-compiler",
		"--no-opengl-sw",
		"--qmldir", pc.SourceDir,
	)
	if err != nil {
		return nil, err
	}

	s.prune(pc.StagingDir, windowsDenyList)

	arch, err := binary.GetArchitecture(exe)
	if err != nil {
		return nil, err
	}

	s.printer.Header("Pack files to zip...")
	name := fmt.Sprintf("%s-%s-win-x%d.zip", pc.Project, pc.Version, arch.Bits())
	s.printer.Println(name)

	dest := filepath.Join(pc.OutDir, name)
	count, err := archive.Zip(pc.StagingDir, dest, archive.ZipOptions{
		Progress:    s.progress,
		Description: name,
	})
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", name, err)
	}
	s.logger.Debug().Str("archive", dest).Int("files", count).Str("arch", arch.String()).Msg("packed")

	return &Artifact{Name: name, Path: dest}, nil
}
