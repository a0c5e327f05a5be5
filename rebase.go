package grovel

import (
	"context"
	"strings"

	"github.com/signadot/grovel/snipfile"
	"github.com/signadot/grovel/walk"
)

// Rebase splices every snippet file under o.Source into its original at the
// same relative path under o.Target. Regions are matched by tag; everything
// outside the replaced regions is left byte for byte as it was.
func Rebase(ctx context.Context, o *Options) (*Stats, error) {
	r, err := newRun(o)
	if err != nil {
		return nil, err
	}
	err = r.walker.Snips(r.Source, r.each(ctx, func(f walk.File) error {
		res, err := r.store.Rebase(f.Rel)
		if err != nil {
			return err
		}
		r.stats.count(res.Action)
		if res.Splice == nil {
			return nil
		}
		r.stats.Spans += len(res.Splice.Replaced)
		if len(res.Splice.Kept) != 0 {
			r.Log.Debug("regions without snippet", "file", res.Original, "tags", strings.Join(res.Splice.Kept, ","))
		}
		if res.Action != snipfile.Written {
			return nil
		}
		r.progress("%s %s (%s)\n", r.Colors.action(res.Action), res.Original, strings.Join(res.Splice.Replaced, ", "))
		if r.Diff {
			return WriteDiff(r.Out, res.Original, res.Before, res.After, r.Colors)
		}
		return nil
	}))
	return r.finish(err)
}
