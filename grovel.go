// Package grovel keeps user code regions of generated sources across
// regeneration.
//
// Generators such as STM32CubeMX overwrite their output but preserve text
// between /* USER CODE BEGIN tag */ and /* USER CODE END tag */ comments.
// grovel lists those regions, extracts them into companion snippet files
// (main.c -> main.c.snip) and rebases snippet files onto a freshly generated
// tree, matching regions by tag.
//
// # Usage
//
//	cfg, _ := config.Load("", ".")
//	stats, err := grovel.Extract(ctx, &grovel.Options{Source: ".", Config: cfg})
//
// # Related Packages
//
//   - github.com/signadot/grovel/marker - Region scanning
//   - github.com/signadot/grovel/splice - Splicing regions by tag
//   - github.com/signadot/grovel/snipfile - Snippet file storage
//   - github.com/signadot/grovel/walk - File selection
package grovel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/signadot/grovel/config"
	"github.com/signadot/grovel/marker"
	"github.com/signadot/grovel/snipfile"
	"github.com/signadot/grovel/walk"
)

type Options struct {
	// Source is the tree that is walked.
	Source string
	// Target receives snippet files (extract) or holds the originals to
	// rewrite (rebase). It defaults to Source.
	Target string
	// Config defaults to config.Default().
	Config *config.Config

	Out io.Writer
	Log *slog.Logger
	// Colors, when set, decorates Out.
	Colors *Colors

	// DryRun reports what would change without writing.
	DryRun bool
	// Diff writes a diff of each rebased file to Out.
	Diff bool
	// Quiet suppresses per-file progress lines on Out.
	Quiet bool
}

// Stats summarises one operation.
type Stats struct {
	Files       int
	Spans       int
	Diagnostics int
	// Listed counts the files printed by List.
	Listed      int
	Written     int
	Removed     int
	Unchanged   int
	Skipped     int
	Failed      int
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d files, %d regions, %d listed, %d written, %d removed, %d unchanged, %d skipped, %d failed, %d warnings",
		s.Files, s.Spans, s.Listed, s.Written, s.Removed, s.Unchanged, s.Skipped, s.Failed, s.Diagnostics)
}

func (s *Stats) count(a snipfile.Action) {
	switch a {
	case snipfile.Written:
		s.Written++
	case snipfile.Removed:
		s.Removed++
	case snipfile.Unchanged:
		s.Unchanged++
	case snipfile.Skipped:
		s.Skipped++
	}
}

// run carries the state of one operation over a tree.
type run struct {
	*Options
	cfg    *config.Config
	walker *walk.Walker
	store  *snipfile.Store
	stats  *Stats
	errs   []error
}

func newRun(o *Options) (*run, error) {
	opts := *o
	r := &run{Options: &opts, cfg: o.Config, stats: &Stats{}}
	if r.cfg == nil {
		r.cfg = config.Default()
	}
	if r.Out == nil {
		r.Out = io.Discard
	}
	if r.Log == nil {
		r.Log = slog.New(slog.DiscardHandler)
	}
	w, err := r.cfg.Walker()
	if err != nil {
		return nil, err
	}
	w.OnError = func(p string, err error) {
		r.fail(p, err)
	}
	r.walker = w
	r.store = &snipfile.Store{
		Source:   o.Source,
		Target:   o.Target,
		Naming:   r.cfg.Naming(),
		ScanOpts: append(r.cfg.ScanOpts(), marker.ScanDiagnostics(r.warn)),
		DryRun:   o.DryRun,
	}
	return r, nil
}

func (r *run) warn(d marker.Diagnostic) {
	r.stats.Diagnostics++
	r.Log.Warn(d.Kind.String(), "pos", d.Pos.String(), "tag", d.Tag, "marker", d.Text)
}

// fail records a per-file error. The operation continues with the next file.
func (r *run) fail(p string, err error) {
	r.stats.Failed++
	r.Log.Error("failed", "file", p, "err", err)
	r.errs = append(r.errs, fmt.Errorf("%s: %w", p, err))
}

// each wraps a per-file action so that its error is recorded instead of
// ending the walk. Only cancellation of ctx stops the walk.
func (r *run) each(ctx context.Context, fn func(walk.File) error) func(walk.File) error {
	return func(f walk.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.stats.Files++
		if err := fn(f); err != nil {
			r.fail(f.Rel, err)
		}
		return nil
	}
}

func (r *run) finish(walkErr error) (*Stats, error) {
	if walkErr != nil {
		r.errs = append(r.errs, walkErr)
	}
	return r.stats, errors.Join(r.errs...)
}

func (r *run) progress(format string, args ...any) {
	if r.Quiet {
		return
	}
	fmt.Fprintf(r.Out, format, args...)
}
