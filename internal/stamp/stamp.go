package stamp

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"

	"github.com/ZebulonRouseFrantzich/redist/internal/version"
)

// MarkerFile holds exactly the rendered version string, without a newline.
const MarkerFile = "version.txt"

// ErrMissingVersionArtifact indicates a file that version stamping reads is absent.
var ErrMissingVersionArtifact = errors.New("missing version artifact")

// MissingArtifactError names the absent file.
type MissingArtifactError struct {
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing version artifact: %s", e.Path)
}

// Unwrap returns ErrMissingVersionArtifact.
func (e *MissingArtifactError) Unwrap() error {
	return ErrMissingVersionArtifact
}

// Target is one file to rewrite. Output defaults to Source.
type Target struct {
	Source string
	Output string
	Rules  []Rule
}

func (t Target) output() string {
	if t.Output == "" {
		return t.Source
	}
	return t.Output
}

// DefaultTargets returns the build settings and resource script targets
// of a qmake project.
func DefaultTargets() []Target {
	return []Target{
		{
			Source: "version.pri",
			Rules: []Rule{
				LineRule{Key: "APP_VER_MAJOR", Field: FieldMajor},
				LineRule{Key: "APP_VER_MINOR", Field: FieldMinor},
				LineRule{Key: "APP_VER_PATCH", Field: FieldPatch},
				LineRule{Key: "APP_VER_CODENAME", Field: FieldCodename},
				LineRule{Key: "APP_VER_YEAR", Field: FieldYear},
				LineRule{Key: "APP_VER", Field: FieldVersion},
			},
		},
		{
			Source: "version.rc.template",
			Output: "version.rc",
			Rules: []Rule{
				PlaceholderRule{Token: "{v1}", Field: FieldMajor},
				PlaceholderRule{Token: "{v2}", Field: FieldMinor},
				PlaceholderRule{Token: "{v3}", Field: FieldPatch},
				PlaceholderRule{Token: "{v4}", Field: FieldBuild},
				PlaceholderRule{Token: "{year}", Field: FieldYear},
				PlaceholderRule{Token: "{codename}", Field: FieldCodename},
			},
		},
	}
}

// Propagator stamps a version into a set of targets.
type Propagator struct {
	fs     billy.Filesystem
	clock  Clock
	logger zerolog.Logger
}

// NewPropagator creates a Propagator over fs. A nil clock uses RealClock.
func NewPropagator(fs billy.Filesystem, clock Clock, logger zerolog.Logger) *Propagator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Propagator{fs: fs, clock: clock, logger: logger}
}

// Propagate rewrites every target and then the marker file.
// All sources are checked before anything is written.
func (p *Propagator) Propagate(spec version.Spec, targets []Target) error {
	for _, t := range targets {
		if _, err := p.fs.Stat(t.Source); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &MissingArtifactError{Path: t.Source}
			}
			return fmt.Errorf("stat %s: %w", t.Source, err)
		}
	}

	values := NewValues(spec, p.clock.Now().Year())

	for _, t := range targets {
		if err := p.stamp(t, values); err != nil {
			return err
		}
	}

	if err := p.writeAtomic(MarkerFile, []byte(values.Version), 0644); err != nil {
		return fmt.Errorf("write version marker: %w", err)
	}
	p.logger.Debug().Str("file", MarkerFile).Str("version", values.Version).Msg("wrote version marker")

	return nil
}

func (p *Propagator) stamp(t Target, values Values) error {
	data, err := util.ReadFile(p.fs, t.Source)
	if err != nil {
		return fmt.Errorf("read %s: %w", t.Source, err)
	}

	perm := os.FileMode(0644)
	if info, err := p.fs.Stat(t.Source); err == nil {
		perm = info.Mode().Perm()
	}

	content := string(data)
	for _, rule := range t.Rules {
		var matched bool
		content, matched = rule.Apply(content, values)
		if !matched {
			p.logger.Debug().Str("file", t.Source).Interface("rule", rule).Msg("rule matched nothing")
		}
	}

	out := t.output()
	if err := p.writeAtomic(out, []byte(content), perm); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	p.logger.Debug().Str("source", t.Source).Str("output", out).Msg("stamped version")

	return nil
}

// writeAtomic writes data to a sibling temp file and renames it over name.
func (p *Propagator) writeAtomic(name string, data []byte, perm os.FileMode) error {
	tmp := name + ".tmp"
	if err := util.WriteFile(p.fs, tmp, data, perm); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := p.fs.Rename(tmp, name); err != nil {
		p.fs.Remove(tmp)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	return nil
}
