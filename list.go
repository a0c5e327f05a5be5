package grovel

import (
	"context"
	"fmt"

	"github.com/signadot/grovel/snipfile"
	"github.com/signadot/grovel/walk"
)

// List writes, for every source under o.Source that has user code regions,
// the source path followed by a colon and then its regions joined by the
// source's line ending.
func List(ctx context.Context, o *Options) (*Stats, error) {
	r, err := newRun(o)
	if err != nil {
		return nil, err
	}
	err = r.walker.Sources(r.Source, r.each(ctx, func(f walk.File) error {
		d, spans, err := r.store.Read(f.Rel)
		if err != nil {
			return err
		}
		r.stats.Spans += len(spans)
		if len(spans) == 0 {
			r.stats.Skipped++
			return nil
		}
		eol := snipfile.LineEnding(d)
		content := snipfile.Join(d, spans, eol)
		content = content[:len(content)-len(eol)]
		if r.Colors != nil {
			content = r.Colors.highlight(content, r.cfg.ScanOpts())
		}
		if _, err := fmt.Fprintf(r.Out, "%s:\n%s\n", r.Colors.path(f.Path), content); err != nil {
			return err
		}
		r.stats.Listed++
		return nil
	}))
	return r.finish(err)
}
