package redist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	macdeployqt = "macdeployqt"
	hdiutil     = "hdiutil"
)

// macOSDenyList mirrors windowsDenyList for a bundle. Paths are relative to
// Contents/PlugIns.
var macOSDenyList = []string{
	"sqldrivers/libqsqlmysql.dylib",
	"sqldrivers/libqsqlodbc.dylib",
	"sqldrivers/libqsqlpsql.dylib",
	"imageformats/libqicns.dylib",
	"imageformats/libqtga.dylib",
	"imageformats/libqtiff.dylib",
	"imageformats/libqwbmp.dylib",
	"imageformats/libqwebp.dylib",
}

type macOSStrategy struct {
	deps
}

func (s *macOSStrategy) Tool() string { return macdeployqt }

func (s *macOSStrategy) Preflight(ctx context.Context, pc *Context) error {
	return s.probe(ctx, pc.Platform, macdeployqt, "-help")
}

func (s *macOSStrategy) Package(ctx context.Context, pc *Context) (*Artifact, error) {
	bundle := filepath.Join(pc.StagingDir, filepath.Base(pc.BinaryPath))

	s.printer.Header("Copy project files...")
	if err := os.RemoveAll(bundle); err != nil {
		return nil, fmt.Errorf("remove previous bundle: %w", err)
	}
	if err := copyTree(pc.BinaryPath, bundle); err != nil {
		return nil, fmt.Errorf("copy %s: %w", pc.BinaryPath, err)
	}

	s.printer.Header("Run macdeployqt...")
	if err := s.run(ctx, pc.StagingDir, macdeployqt, bundle, "-always-overwrite", "-qmldir="+pc.SourceDir); err != nil {
		return nil, err
	}

	s.prune(filepath.Join(bundle, "Contents", "PlugIns"), macOSDenyList)

	s.printer.Header("Create disk image...")
	tmpImage := filepath.Join(pc.OutDir, pc.Project+"-tmp.dmg")
	err := s.run(ctx, pc.OutDir, hdiutil, "create",
		"-srcfolder", bundle,
		"-volname", pc.Project,
		"-format", "UDRW",
		"-ov", tmpImage,
	)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s-%s.dmg", pc.Project, pc.Version)
	s.printer.Println(name)
	dest := filepath.Join(pc.OutDir, name)
	err = s.run(ctx, pc.OutDir, hdiutil, "convert", tmpImage,
		"-format", "UDZO",
		"-imagekey", "zlib-level=9",
		"-ov", "-o", dest,
	)
	TryRemove(tmpImage)
	if err != nil {
		return nil, err
	}

	return &Artifact{Name: name, Path: dest}, nil
}
