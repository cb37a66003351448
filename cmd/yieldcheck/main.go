// Command yieldcheck finds yieldfrom frames that yield delegation markers
// without a driver to act on them.
//
//	yieldcheck [flags] [packages]
//
// The packages default to ./... and findings are printed one per line.
// yieldcheck exits with 1 when it finds anything and 2 when the packages do not load.
package main

import (
	"io"
	"log"
	"os"

	"github.com/urfave/cli"
)

func run(c *cli.Context, out io.Writer) error {
	config, err := configFromContext(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	reporter, err := NewReporter(config.Format, config.useColor())
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	pkgs, err := loadPackages(config)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	findings := Check(pkgs)
	for _, finding := range findings {
		line, err := reporter.Render(finding)
		if err != nil {
			return cli.NewExitError(err.Error(), 2)
		}
		if _, err := out.Write(line); err != nil {
			return err
		}
	}
	if len(findings) > 0 {
		return cli.NewExitError("", 1)
	}
	return nil
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "yieldcheck"
	app.Usage = "report delegation markers yielded without a driver"
	app.ArgsUsage = "[packages]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "dir, C",
			Value:  ".",
			Usage:  "directory to load packages from",
			EnvVar: "YIELDCHECK_DIR",
		},
		cli.StringSliceFlag{
			Name:   "tags",
			Usage:  "build tags to load packages with",
			EnvVar: "YIELDCHECK_TAGS",
		},
		cli.BoolTFlag{
			Name:  "tests",
			Usage: "include test files",
		},
		cli.StringFlag{
			Name:   "format, f",
			Value:  defaultFormat,
			Usage:  "text/template for each finding",
			EnvVar: "YIELDCHECK_FORMAT",
		},
		cli.StringFlag{
			Name:  "color",
			Value: colorAuto,
			Usage: "highlight output: auto, always or never",
		},
	}
	app.Action = func(c *cli.Context) error {
		return run(c, out)
	}
	return app
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("yieldcheck: ")

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
