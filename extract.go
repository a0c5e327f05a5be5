package grovel

import (
	"context"

	"github.com/signadot/grovel/snipfile"
	"github.com/signadot/grovel/walk"
)

// Extract writes a snippet file for every source under o.Source that has
// user code regions, at the same relative path under o.Target. Snippet files
// of sources without regions are removed.
func Extract(ctx context.Context, o *Options) (*Stats, error) {
	r, err := newRun(o)
	if err != nil {
		return nil, err
	}
	err = r.walker.Sources(r.Source, r.each(ctx, func(f walk.File) error {
		res, err := r.store.Extract(f.Rel)
		if err != nil {
			return err
		}
		r.stats.Spans += len(res.Spans)
		r.stats.count(res.Action)
		switch res.Action {
		case snipfile.Written:
			r.progress("%s %s (%d regions)\n", r.Colors.action(res.Action), res.Snip, len(res.Spans))
		case snipfile.Removed:
			r.progress("%s %s\n", r.Colors.action(res.Action), res.Snip)
		}
		return nil
	}))
	return r.finish(err)
}
