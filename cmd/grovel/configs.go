package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/grovel"
	"github.com/signadot/grovel/config"
)

type MainConfig struct {
	Config  string `cli:"name=config desc='configuration file (default <root>/.grovel.yaml)'"`
	Color   bool   `cli:"name=color desc='colorize output'"`
	Quiet   bool   `cli:"name=q desc='do not report written and removed files'"`
	Verbose bool   `cli:"name=v desc='log debug records'"`

	Main *cli.Command
}

// options builds the operation options for a run rooted at source. The
// configuration is looked up relative to source unless -config is given.
func (cfg *MainConfig) options(cc *cli.Context, source, target string) (*grovel.Options, error) {
	c, err := config.Load(cfg.Config, source)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	return &grovel.Options{
		Source: source,
		Target: target,
		Config: c,
		Out:    cc.Out,
		Log:    theLog,
		Colors: cfg.colors(cc.Out),
		Quiet:  cfg.Quiet,
	}, nil
}

func (cfg *MainConfig) colors(w io.Writer) *grovel.Colors {
	if cfg.Color {
		color.NoColor = false
		return grovel.NewColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return grovel.NewColors()
	}
	return nil
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type ExtractConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n aliases=dry-run desc='report what would change without writing'"`

	Extract *cli.Command
}

type RebaseConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n aliases=dry-run desc='report what would change without writing'"`
	Diff   bool `cli:"name=d aliases=diff desc='show a diff of each rewritten file'"`

	Rebase *cli.Command
}

type ConfigConfig struct {
	*MainConfig

	Cmd *cli.Command
}
