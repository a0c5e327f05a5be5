package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "grovel").
		WithSynopsis("grovel [opts] command [opts]").
		WithDescription("grovel keeps USER CODE regions of generated sources across regeneration.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return grovelMain(cfg, cc, args)
		}).
		WithSubs(
			ListCommand(cfg),
			ExtractCommand(cfg),
			RebaseCommand(cfg),
			ConfigCommand(cfg))
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("list").
		WithAliases("l", "ls").
		WithSynopsis("list [dir]").
		WithDescription("Print the user code regions of each source file under dir (default .).").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
	cfg.List = cmd
	return cmd
}

func ExtractCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExtractConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("extract").
		WithAliases("x").
		WithSynopsis("extract [-n] [srcdir [targetdir]]").
		WithDescription("Write the user code regions of each source file under srcdir to a snippet file\n" +
			"next to it, or at the same relative path under targetdir. Snippet files of\n" +
			"sources without regions are removed.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return extract(cfg, cc, args)
		})
	cfg.Extract = cmd
	return cmd
}

func RebaseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RebaseConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("rebase").
		WithAliases("r").
		WithSynopsis("rebase [-n] [-d] snipdir targetdir").
		WithDescription("Splice the regions of each snippet file under snipdir into the source at the\n" +
			"same relative path under targetdir, matching regions by tag.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rebase(cfg, cc, args)
		})
	cfg.Rebase = cmd
	return cmd
}

func ConfigCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConfigConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("config").
		WithSynopsis("config [dir]").
		WithDescription("Print the effective configuration for dir (default .).").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return showConfig(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}
