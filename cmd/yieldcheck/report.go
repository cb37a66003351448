package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/xerrors"
)

const defaultFormat = "{{bold .Pos}}: {{.Message}}"

// Reporter renders findings through a user supplied template.
type Reporter struct {
	template *template.Template
}

func NewReporter(format string, color bool) (*Reporter, error) {
	funcMap := template.FuncMap{
		"join":       strings.Join,
		"trimPrefix": strings.TrimPrefix,
		"base":       filepath.Base,
		"bold":       ansi("1", color),
		"red":        ansi("31", color),
	}
	t, err := template.New("finding").Funcs(funcMap).Parse(format)
	if err != nil {
		return nil, xerrors.Errorf("invalid format %q: %w", format, err)
	}
	return &Reporter{template: t}, nil
}

func (r *Reporter) Render(finding Finding) ([]byte, error) {
	var out bytes.Buffer
	if err := r.template.Execute(&out, finding); err != nil {
		return nil, xerrors.Errorf("rendering %s: %w", finding.Pos, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func ansi(code string, enabled bool) func(any) string {
	return func(value any) string {
		text := fmt.Sprint(value)
		if !enabled {
			return text
		}
		return "\x1b[" + code + "m" + text + "\x1b[0m"
	}
}
