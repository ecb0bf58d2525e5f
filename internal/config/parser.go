package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/redist/internal/platform"
)

// FileName is the conventional config location inside the release directory.
const FileName = "release.lua"

// Parser evaluates release configs with platform information injected.
type Parser struct {
	info   *platform.Info
	logger zerolog.Logger
}

// NewParser creates a parser. info may be nil, in which case configs
// cannot reference the platform table.
func NewParser(info *platform.Info, logger zerolog.Logger) *Parser {
	return &Parser{info: info, logger: logger}
}

// ParseFile reads and evaluates the config at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Release, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	p.logger.Debug().Str("path", path).Msg("parsing release config")
	return p.ParseString(ctx, string(data))
}

// LoadOrDefault parses path when it exists and returns Default otherwise.
func (p *Parser) LoadOrDefault(ctx context.Context, path string) (*Release, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		p.logger.Debug().Str("path", path).Msg("no release config, using defaults")
		return Default(), nil
	}
	return p.ParseFile(ctx, path)
}

// ParseString evaluates a config from a string and validates the result.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.info != nil {
		if err := platform.InjectPlatformTable(L, p.info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua error",
			Detail:  err.Error(),
		}
	}

	release, err := extractRelease(L)
	if err != nil {
		return nil, err
	}
	if err := release.Validate(); err != nil {
		return nil, err
	}

	return release, nil
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractRelease reads the global "release" table over the defaults.
func extractRelease(L *lua.LState) (*Release, error) {
	value := L.GetGlobal("release")
	table, ok := value.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "missing or invalid 'release' table",
			Detail:  fmt.Sprintf("expected table, got %s", value.Type()),
		}
	}

	release := Default()
	fields := []struct {
		key string
		dst *string
	}{
		{"project", &release.Project},
		{"marker", &release.Marker},
		{"bin_dir", &release.BinDir},
		{"source_dir", &release.SourceDir},
		{"release_dir", &release.ReleaseDir},
		{"out_dir", &release.OutDir},
		{"redist_dir", &release.RedistDir},
		{"windows_executable", &release.WindowsExecutable},
		{"macos_bundle", &release.MacOSBundle},
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.key] = true

		v := table.RawGetString(f.key)
		switch v.Type() {
		case lua.LTNil:
		case lua.LTString:
			*f.dst = v.String()
		default:
			return nil, &ParseError{
				Message: fmt.Sprintf("invalid value for release.%s", f.key),
				Detail:  fmt.Sprintf("expected string, got %s", v.Type()),
			}
		}
	}

	var unknown []string
	table.ForEach(func(k, _ lua.LValue) {
		if key, ok := k.(lua.LString); !ok || !known[string(key)] {
			unknown = append(unknown, k.String())
		}
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ParseError{
			Message: "unknown keys in 'release' table",
			Detail:  strings.Join(unknown, ", "),
		}
	}

	return release, nil
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
