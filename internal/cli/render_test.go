package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialstack/pkg/pipeline"
)

const salesCSV = `month,region,count
Jan,North,10
Jan,South,5
Feb,North,7
Feb,South,3
`

// isolate runs the test in an empty directory with config and cache
// lookups pointed inside it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command and returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, log.InfoLevel)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output uses input", "", "sales.csv", "sales"},
		{"empty output with path", "", "/data/sales.parquet", "/data/sales"},
		{"output with svg ext", "out.svg", "sales.csv", "out"},
		{"output with pdf ext", "out.pdf", "sales.csv", "out"},
		{"output with json ext", "out.json", "sales.csv", "out"},
		{"output without ext", "out", "sales.csv", "out"},
		{"output with unknown ext", "out.txt", "sales.csv", "out.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestHasRaster(t *testing.T) {
	tests := []struct {
		formats []string
		want    bool
	}{
		{[]string{"svg"}, false},
		{[]string{"svg", "json"}, false},
		{[]string{"png"}, true},
		{[]string{"svg", "pdf"}, true},
	}
	for _, tt := range tests {
		if got := hasRaster(tt.formats); got != tt.want {
			t.Errorf("hasRaster(%v) = %v, want %v", tt.formats, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	result := &pipeline.Result{Artifacts: map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}}

	t.Run("multiple formats next to input", func(t *testing.T) {
		files, err := writeArtifacts(result, []string{"svg", "json"}, input, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 2 {
			t.Fatalf("wrote %d files, want 2", len(files))
		}
		for _, f := range files {
			if _, err := os.Stat(f.path); err != nil {
				t.Errorf("missing %s", f.path)
			}
		}
		if files[0].path != filepath.Join(dir, "sales.svg") || files[0].size != 6 {
			t.Errorf("files[0] = %+v", files[0])
		}
	})

	t.Run("single format uses output as is", func(t *testing.T) {
		out := filepath.Join(dir, "nested", "chart.svg")
		files, err := writeArtifacts(result, []string{"svg"}, input, out)
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 1 || files[0].path != out {
			t.Errorf("files = %+v, want %s", files, out)
		}
	})

	t.Run("skipped writes empty svg only", func(t *testing.T) {
		skipped := &pipeline.Result{Skipped: true, Artifacts: map[string][]byte{"svg": []byte("<svg/>")}}
		out := filepath.Join(dir, "empty.png")
		files, err := writeArtifacts(skipped, []string{"png"}, input, out)
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 1 || files[0].path != filepath.Join(dir, "empty.svg") {
			t.Errorf("files = %+v, want empty.svg", files)
		}
	})
}

func TestRenderCommand(t *testing.T) {
	dir := isolate(t)
	input := writeTable(t, dir, "sales.csv", salesCSV)

	out, err := runCLI(t, "render", input, "-f", "svg,json", "--width", "400", "--height", "300")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "sales.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("sales.svg is not an SVG document")
	}
	if _, err := os.Stat(filepath.Join(dir, "sales.json")); err != nil {
		t.Errorf("sales.json not written: %v", err)
	}
	for _, want := range []string{"Chart rendered", "2 segments", "2 layers"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandCache(t *testing.T) {
	dir := isolate(t)
	input := writeTable(t, dir, "sales.csv", salesCSV)

	if _, err := runCLI(t, "render", input); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "render", input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second render not served from cache:\n%s", out)
	}

	out, err = runCLI(t, "render", input, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "fresh") {
		t.Errorf("--no-cache render reported cache use:\n%s", out)
	}
}

func TestRenderCommandStdout(t *testing.T) {
	dir := isolate(t)
	input := writeTable(t, dir, "sales.csv", salesCSV)

	out, err := runCLI(t, "render", input, "-o", "-", "--static")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "<") || !strings.Contains(out, "<svg") {
		t.Errorf("stdout is not SVG: %.80q", out)
	}
	if strings.Contains(out, "<animate") {
		t.Error("--static output contains animations")
	}

	if _, err := runCLI(t, "render", input, "-o", "-", "-f", "svg,json"); err == nil {
		t.Error("expected error writing two formats to stdout")
	}
}

func TestRenderCommandSkipped(t *testing.T) {
	dir := isolate(t)
	input := writeTable(t, dir, "empty.csv", "month,region,count\n")

	out, err := runCLI(t, "render", input, "-f", "png")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Nothing to draw") {
		t.Errorf("output missing skip warning:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.svg")); err != nil {
		t.Errorf("empty.svg not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.png")); err == nil {
		t.Error("empty.png written for a skipped chart")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := isolate(t)
	input := writeTable(t, dir, "sales.csv", salesCSV)
	badPalette := writeTable(t, dir, "bad.toml", "scheme = [\"notacolor\"]\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"render", input, "-f", "gif"}, "gif"},
		{"missing file", []string{"render", filepath.Join(dir, "nope.csv")}, "nope.csv"},
		{"bad palette", []string{"render", input, "--palette", badPalette}, "palette"},
		{"unknown column", []string{"render", input, "--segment", "week"}, "week"},
		{"bad viewport", []string{"render", input, "--width=-5"}, "invalid options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
