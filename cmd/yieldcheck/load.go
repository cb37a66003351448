package main

import (
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/xerrors"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports |
	packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax

func loadPackages(config *Config) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:  loadMode,
		Dir:   config.Dir,
		Tests: config.Tests,
	}
	if len(config.Tags) > 0 {
		cfg.BuildFlags = []string{fmt.Sprintf("-tags=%s", strings.Join(config.Tags, ","))}
	}

	patterns := config.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, xerrors.Errorf("loading %s: %w", strings.Join(patterns, " "), err)
	}
	if count := packages.PrintErrors(pkgs); count > 0 {
		return nil, xerrors.Errorf("%d errors while loading %s", count, strings.Join(patterns, " "))
	}
	return pkgs, nil
}
