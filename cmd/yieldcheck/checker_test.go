package main

import (
	"bufio"
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/urfave/cli"
)

const misuseDir = "testdata/misuse"

// markedLines returns the lines of path carrying a "// misuse" comment.
func markedLines(t *testing.T, path string) []int {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var lines []int
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		if strings.HasSuffix(scanner.Text(), "// misuse") {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestCheck(t *testing.T) {
	pkgs, err := loadPackages(&Config{Dir: misuseDir, Patterns: []string{"."}})
	if err != nil {
		t.Fatal(err)
	}

	findings := Check(pkgs)
	var got []int
	for _, finding := range findings {
		if filepath.Base(finding.Pos.Filename) != "misuse.go" {
			t.Errorf("Finding outside misuse.go: %s", finding)
		}
		got = append(got, finding.Pos.Line)
	}
	want := markedLines(t, filepath.Join(misuseDir, "misuse.go"))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Findings on lines %v, want %v", got, want)
	}

	funcs := make(map[string]bool)
	for _, finding := range findings {
		funcs[finding.Func] = true
	}
	for _, name := range []string{"plainLiteral", "markerVariable", "namedBodyUnwrapped"} {
		if !funcs[name] {
			t.Errorf("No finding attributed to %s", name)
		}
	}
}

func TestLoadFailure(t *testing.T) {
	_, err := loadPackages(&Config{Dir: misuseDir, Patterns: []string{"./does-not-exist"}})
	if err == nil {
		t.Error("Loading a missing package should fail.")
	}
}

func TestReporter(t *testing.T) {
	finding := Finding{Message: "marker"}
	finding.Pos.Filename = "/src/misuse.go"
	finding.Pos.Line = 7
	finding.Pos.Column = 3

	tests := []struct {
		name   string
		format string
		color  bool
		want   string
	}{
		{"default", defaultFormat, false, "/src/misuse.go:7:3: marker\n"},
		{"colored", defaultFormat, true, "\x1b[1m/src/misuse.go:7:3\x1b[0m: marker\n"},
		{"custom", "{{base .Pos.Filename}}:{{.Pos.Line}} {{red .Message}}", false, "misuse.go:7 marker\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, err := NewReporter(tt.format, tt.color)
			if err != nil {
				t.Fatal(err)
			}
			got, err := reporter.Render(finding)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := NewReporter("{{.Pos", false); err == nil {
		t.Error("An unterminated template should be rejected.")
	}
}

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	app := newApp(&bytes.Buffer{})
	set := flag.NewFlagSet("yieldcheck", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(app, set, nil)
}

func TestConfig(t *testing.T) {
	config, err := configFromContext(newContext(t, "-dir", misuseDir, "-tags", "a", "-tags", "b", "-tests=false", "./x"))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Dir:      misuseDir,
		Tags:     []string{"a", "b"},
		Tests:    false,
		Format:   defaultFormat,
		Color:    colorAuto,
		Patterns: []string{"./x"},
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("configFromContext() = %+v, want %+v", config, want)
	}

	if _, err := configFromContext(newContext(t, "-color", "sometimes")); err == nil {
		t.Error("An unknown color mode should be rejected.")
	}
	if config, _ := configFromContext(newContext(t, "-color", "never")); config.useColor() {
		t.Error("Color should be off with -color never.")
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	err := run(newContext(t, "-dir", misuseDir, "-color", "never", "-format", "{{.Func}}", "."), &out)

	exit, ok := err.(cli.ExitCoder)
	if !ok || exit.ExitCode() != 1 {
		t.Fatalf("Want exit code 1, got %v", err)
	}
	lines := strings.Fields(out.String())
	if len(lines) != len(markedLines(t, filepath.Join(misuseDir, "misuse.go"))) {
		t.Errorf("Unexpected output %q", out.String())
	}
}
