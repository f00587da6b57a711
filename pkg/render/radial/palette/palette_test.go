package palette

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/radialstack/pkg/errors"
)

func TestOrdinal(t *testing.T) {
	o := NewOrdinal([]string{"AZ", "SC", "NC"})

	tests := []struct {
		key, want string
	}{
		{"AZ", "#1f77b4"},
		{"SC", "#ff7f0e"},
		{"NC", "#2ca02c"},
		{"TX", Unknown},
	}
	for _, tt := range tests {
		if got := o.Color(tt.key); got != tt.want {
			t.Errorf("Color(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestOrdinalStable(t *testing.T) {
	layers := []string{"AZ", "SC", "NC"}
	a, b := NewOrdinal(layers), NewOrdinal(layers)
	for _, l := range layers {
		if a.Color(l) != b.Color(l) {
			t.Errorf("Color(%q) differs between palettes over the same domain", l)
		}
	}
}

func TestOrdinalPastSequence(t *testing.T) {
	var domain []string
	for i := 0; i < 12; i++ {
		domain = append(domain, fmt.Sprintf("L%d", i))
	}

	o := NewOrdinal(domain)
	if got := o.Color("L9"); got != "#17becf" {
		t.Errorf("Color(L9) = %q, want last scheme color", got)
	}
	if got := o.Color("L10"); got != Unknown {
		t.Errorf("Color(L10) = %q, want %q", got, Unknown)
	}

	cyc := NewOrdinal(domain, WithCycle())
	if got := cyc.Color("L10"); got != "#1f77b4" {
		t.Errorf("cycling Color(L10) = %q, want #1f77b4", got)
	}
	if got := cyc.Color("missing"); got != Unknown {
		t.Errorf("cycling Color(missing) = %q, want %q", got, Unknown)
	}
}

func TestOrdinalOptions(t *testing.T) {
	o := NewOrdinal([]string{"a", "b", "a"}, WithColors([]string{"#111", "#222"}), WithUnknown("#999"))
	if got := o.Color("a"); got != "#111" {
		t.Errorf("Color(a) = %q, want #111", got)
	}
	if got := o.Color("b"); got != "#222" {
		t.Errorf("Color(b) = %q, want #222 (duplicate keys keep first position)", got)
	}
	if got := o.Color("c"); got != "#999" {
		t.Errorf("Color(c) = %q, want #999", got)
	}
	if o.Unknown() != "#999" {
		t.Errorf("Unknown() = %q", o.Unknown())
	}

	def := NewOrdinal([]string{"a"}, WithColors(nil), WithUnknown(""))
	if def.Color("a") != Category10[0] || def.Unknown() != Unknown {
		t.Error("empty options should keep defaults")
	}
}

func TestLabelColor(t *testing.T) {
	o := NewOrdinal([]string{"AZ", "SC"})
	host := Map{"AZ": "#d62728", "SC": ""}

	tests := []struct {
		name string
		host Host
		key  string
		want string
	}{
		{"host override", host, "AZ", "#d62728"},
		{"empty host entry falls back", host, "SC", "#ff7f0e"},
		{"nil host", nil, "AZ", "#1f77b4"},
		{"unknown everywhere", host, "TX", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelColor(tt.host, o, tt.key); got != tt.want {
				t.Errorf("LabelColor(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#1f77b4", color.RGBA{0x1f, 0x77, 0xb4, 0xff}, false},
		{"#CCC", color.RGBA{0xcc, 0xcc, 0xcc, 0xff}, false},
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"purple", color.RGBA{0x80, 0, 0x80, 0xff}, false},
		{"none", color.RGBA{}, false},
		{"#12345", color.RGBA{}, true},
		{"red", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got := color.RGBAModel.Convert(c).(color.RGBA); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

const paletteTOML = `
unknown = "#aaa"
scheme = ["#111111", "#222222"]

[colors]
AZ = "#d62728"
NY = "#2ca02c"
`

func TestParseTOML(t *testing.T) {
	f, err := ParseTOML([]byte(paletteTOML))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	want := File{
		Colors:  Map{"AZ": "#d62728", "NY": "#2ca02c"},
		Scheme:  []string{"#111111", "#222222"},
		Unknown: "#aaa",
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("ParseTOML mismatch (-want +got):\n%s", diff)
	}

	o := NewOrdinal([]string{"AZ", "NY", "TX"}, f.Options()...)
	if diff := cmp.Diff([]string{"#111111", "#222222", "#aaa"}, []string{o.Color("AZ"), o.Color("NY"), o.Color("TX")}); diff != "" {
		t.Errorf("ordinal from file (-want +got):\n%s", diff)
	}
}

func TestParseTOMLInvalid(t *testing.T) {
	tests := []string{
		"[colors\n",
		"[colors]\nAZ = \"crimson\"\n",
		"scheme = [\"#12\"]\n",
		"unknown = \"bogus\"\n",
	}
	for _, in := range tests {
		if _, err := ParseTOML([]byte(in)); !errors.Is(err, errors.ErrCodeInvalidPalette) {
			t.Errorf("ParseTOML(%q) error = %v, want %s", in, err, errors.ErrCodeInvalidPalette)
		}
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.toml")
	if err := os.WriteFile(path, []byte(paletteTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if c, ok := f.Colors.Color("AZ"); !ok || c != "#d62728" {
		t.Errorf("Colors[AZ] = %q, %v", c, ok)
	}

	if _, err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
