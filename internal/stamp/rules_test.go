package stamp

import (
	"testing"

	"github.com/ZebulonRouseFrantzich/redist/internal/version"
)

func TestLineRule(t *testing.T) {
	values := NewValues(version.MustParse("2.0.2-alpha2"), 2024)

	tests := []struct {
		name    string
		rule    LineRule
		input   string
		want    string
		matched bool
	}{
		{
			name:    "replaces value",
			rule:    LineRule{Key: "APP_VER_MAJOR", Field: FieldMajor},
			input:   "A=1\nAPP_VER_MAJOR=0\nB=2\n",
			want:    "A=1\nAPP_VER_MAJOR=2\nB=2\n",
			matched: true,
		},
		{
			name:    "preserves CRLF",
			rule:    LineRule{Key: "APP_VER", Field: FieldVersion},
			input:   "APP_VER=0.1.0\r\nNEXT=1\r\n",
			want:    "APP_VER=2.0.2-alpha2\r\nNEXT=1\r\n",
			matched: true,
		},
		{
			name:    "only first occurrence",
			rule:    LineRule{Key: "APP_VER_YEAR", Field: FieldYear},
			input:   "APP_VER_YEAR=1\nAPP_VER_YEAR=2\n",
			want:    "APP_VER_YEAR=2024\nAPP_VER_YEAR=2\n",
			matched: true,
		},
		{
			name:    "key prefix does not match longer key",
			rule:    LineRule{Key: "APP_VER", Field: FieldVersion},
			input:   "APP_VER_MAJOR=0\n",
			want:    "APP_VER_MAJOR=0\n",
			matched: false,
		},
		{
			name:    "must start at line start",
			rule:    LineRule{Key: "APP_VER", Field: FieldVersion},
			input:   "# APP_VER=0\n",
			want:    "# APP_VER=0\n",
			matched: false,
		},
		{
			name:    "last line without newline",
			rule:    LineRule{Key: "APP_VER_CODENAME", Field: FieldCodename},
			input:   "X=1\nAPP_VER_CODENAME=old",
			want:    "X=1\nAPP_VER_CODENAME=alpha2",
			matched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := tt.rule.Apply(tt.input, values)
			if got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if matched != tt.matched {
				t.Errorf("matched = %v, want %v", matched, tt.matched)
			}
		})
	}
}

func TestPlaceholderRule(t *testing.T) {
	values := NewValues(version.MustParse("1.2.3"), 2020)

	got, matched := PlaceholderRule{Token: "{v4}", Field: FieldBuild}.Apply("{v4}-{v4}", values)
	if !matched || got != "0-0" {
		t.Errorf("Apply() = %q, %v", got, matched)
	}

	got, matched = PlaceholderRule{Token: "{codename}", Field: FieldCodename}.Apply("[{codename}]", values)
	if !matched || got != "[]" {
		t.Errorf("Apply() = %q, %v", got, matched)
	}

	got, matched = PlaceholderRule{Token: "{year}", Field: FieldYear}.Apply("none", values)
	if matched || got != "none" {
		t.Errorf("Apply() = %q, %v", got, matched)
	}
}

func TestValues_Get(t *testing.T) {
	values := NewValues(version.MustParse("7.8.9-beta"), 1999)
	want := map[Field]string{
		FieldMajor:    "7",
		FieldMinor:    "8",
		FieldPatch:    "9",
		FieldBuild:    "0",
		FieldYear:     "1999",
		FieldCodename: "beta",
		FieldVersion:  "7.8.9-beta",
	}
	for field, w := range want {
		if got := values.Get(field); got != w {
			t.Errorf("Get(%s) = %q, want %q", field, got, w)
		}
	}
	if got := Field(99).String(); got != "field(99)" {
		t.Errorf("String() = %q", got)
	}
}
