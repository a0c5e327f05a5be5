package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	"github.com/signadot/grovel"
	"github.com/signadot/grovel/config"
)

func grovelMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

type operation func(context.Context, *grovel.Options) (*grovel.Stats, error)

// runOp runs op until it completes or the process is interrupted. Per-file
// failures have already been logged by op; they only set the exit code.
func runOp(name string, op operation, o *grovel.Options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	stats, err := op(ctx, o)
	if stats != nil {
		theLog.Debug(name, "stats", stats.String())
	}
	if err != nil {
		if stats == nil || stats.Failed == 0 {
			theLog.Error(name, "err", err)
		}
		return cli.ExitCodeErr(1)
	}
	return nil
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: list takes at most one directory", cli.ErrUsage)
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	o, err := cfg.options(cc, dir, "")
	if err != nil {
		return err
	}
	return runOp("list", grovel.List, o)
}

func extract(cfg *ExtractConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Extract.Parse(cc, args)
	if err != nil {
		cfg.Extract.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	src, tgt := ".", ""
	switch len(args) {
	case 0:
	case 1:
		src = args[0]
	case 2:
		src, tgt = args[0], args[1]
	default:
		return fmt.Errorf("%w: extract takes at most two directories", cli.ErrUsage)
	}
	o, err := cfg.options(cc, src, tgt)
	if err != nil {
		return err
	}
	o.DryRun = cfg.DryRun
	return runOp("extract", grovel.Extract, o)
}

func rebase(cfg *RebaseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rebase.Parse(cc, args)
	if err != nil {
		cfg.Rebase.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: rebase requires a snippet directory and a target directory", cli.ErrUsage)
	}
	o, err := cfg.options(cc, args[0], args[1])
	if err != nil {
		return err
	}
	o.DryRun = cfg.DryRun
	o.Diff = cfg.Diff
	return runOp("rebase", grovel.Rebase, o)
}

func showConfig(cfg *ConfigConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		cfg.Cmd.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: config takes at most one directory", cli.ErrUsage)
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	c, err := config.Load(cfg.Config, dir)
	if err != nil {
		return err
	}
	d, err := c.YAML()
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}
