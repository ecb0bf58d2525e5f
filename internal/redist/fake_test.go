package redist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/redist/internal/runner"
)

type call struct {
	cmd  runner.Command
	opts runner.Options
}

// fakeRunner records invocations. Tools listed in missing are reported as
// not found; onRun, when set, simulates the tool's effect.
type fakeRunner struct {
	missing map[string]bool
	calls   []call
	onRun   func(cmd runner.Command) (int, error)
}

func (f *fakeRunner) Run(ctx context.Context, cmd runner.Command, opts runner.Options) (int, error) {
	f.calls = append(f.calls, call{cmd: cmd, opts: opts})
	if f.missing[cmd.Name] {
		return -1, &runner.ToolNotFoundError{Tool: cmd.Name}
	}
	if f.onRun != nil {
		return f.onRun(cmd)
	}
	return 0, nil
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0644); err != nil {
		t.Fatal(err)
	}
}

// fakeWindeployqt fills the --dir directory the way windeployqt does.
func fakeWindeployqt(t *testing.T) func(cmd runner.Command) (int, error) {
	return func(cmd runner.Command) (int, error) {
		if cmd.Name != windeployqt {
			return 0, nil
		}
		dir := argAfter(cmd.Args, "--dir")
		if dir == "" {
			// probe
			return 1, nil
		}
		for _, f := range []string{
			"Qt5Core.dll",
			"Qt5Quick.dll",
			"libEGL.dll",
			"libGLESV2.dll",
			"platforms/qwindows.dll",
			"sqldrivers/qsqlite.dll",
			"sqldrivers/qsqlmysql.dll",
			"sqldrivers/qsqlpsql.dll",
			"imageformats/qjpeg.dll",
			"imageformats/qtiff.dll",
			"qml/QtQuick.2/qmldir",
		} {
			touch(t, filepath.Join(dir, filepath.FromSlash(f)))
		}
		return 0, nil
	}
}
