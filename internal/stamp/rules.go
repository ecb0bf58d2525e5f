package stamp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZebulonRouseFrantzich/redist/internal/version"
)

// Field names one value derived from a version.
type Field int

const (
	FieldMajor Field = iota
	FieldMinor
	FieldPatch
	FieldBuild // always "0"
	FieldYear
	FieldCodename
	FieldVersion
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldMajor:
		return "major"
	case FieldMinor:
		return "minor"
	case FieldPatch:
		return "patch"
	case FieldBuild:
		return "build"
	case FieldYear:
		return "year"
	case FieldCodename:
		return "codename"
	case FieldVersion:
		return "version"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Values holds the rendered value of every Field for one stamping run.
type Values struct {
	Major    string
	Minor    string
	Patch    string
	Build    string
	Year     string
	Codename string
	Version  string
}

// NewValues renders spec into Values. year is the copyright year.
func NewValues(spec version.Spec, year int) Values {
	return Values{
		Major:    strconv.FormatUint(spec.Major, 10),
		Minor:    strconv.FormatUint(spec.Minor, 10),
		Patch:    strconv.FormatUint(spec.Patch, 10),
		Build:    "0",
		Year:     strconv.Itoa(year),
		Codename: spec.Label,
		Version:  spec.String(),
	}
}

// Get returns the value of f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldMajor:
		return v.Major
	case FieldMinor:
		return v.Minor
	case FieldPatch:
		return v.Patch
	case FieldBuild:
		return v.Build
	case FieldYear:
		return v.Year
	case FieldCodename:
		return v.Codename
	case FieldVersion:
		return v.Version
	default:
		return ""
	}
}

// Rule rewrites file content. Apply reports whether anything matched.
type Rule interface {
	Apply(content string, values Values) (string, bool)
}

// LineRule replaces the first line of the form KEY=... with KEY=<field>.
// The rest of the file, including the line terminator, is left untouched.
type LineRule struct {
	Key   string
	Field Field
}

// Apply implements Rule.
func (r LineRule) Apply(content string, values Values) (string, bool) {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(r.Key) + `=[^\r\n]*`)
	loc := re.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	return content[:loc[0]] + r.Key + "=" + values.Get(r.Field) + content[loc[1]:], true
}

// PlaceholderRule replaces every literal occurrence of Token with the field value.
type PlaceholderRule struct {
	Token string
	Field Field
}

// Apply implements Rule.
func (r PlaceholderRule) Apply(content string, values Values) (string, bool) {
	if !strings.Contains(content, r.Token) {
		return content, false
	}
	return strings.ReplaceAll(content, r.Token, values.Get(r.Field)), true
}
