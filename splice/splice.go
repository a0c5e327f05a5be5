// Package splice replaces tagged spans of a buffer with bytes taken from
// another buffer.
package splice

import (
	"bytes"

	"github.com/signadot/grovel/debug"
	"github.com/signadot/grovel/marker"
)

// Rewrite replaces target[Start:End] with With.
type Rewrite struct {
	Start int
	End   int
	With  []byte
}

// Apply performs rws against target in one left to right pass. rws must be
// ordered by Start and must not overlap. With no rewrites target itself is
// returned.
func Apply(target []byte, rws []Rewrite) []byte {
	if len(rws) == 0 {
		return target
	}
	n := len(target)
	for _, rw := range rws {
		n += len(rw.With) - (rw.End - rw.Start)
	}
	buf := bytes.NewBuffer(make([]byte, 0, n))
	last := 0
	for _, rw := range rws {
		buf.Write(target[last:rw.Start])
		buf.Write(rw.With)
		last = rw.End
	}
	buf.Write(target[last:])
	return buf.Bytes()
}

// DonorMap maps each span tag to its bytes in donor. When a tag occurs more
// than once the last occurrence wins.
func DonorMap(donor []byte, spans []marker.Span) map[string][]byte {
	res := make(map[string][]byte, len(spans))
	for _, sp := range spans {
		res[sp.Tag] = sp.Bytes(donor)
	}
	return res
}

// Result describes what Rebase did to the target spans, in target order.
type Result struct {
	Replaced []string
	Kept     []string
}

// Changed reports whether any span was scheduled for replacement.
func (r *Result) Changed() bool {
	return len(r.Replaced) != 0
}

// Rebase rescans target and replaces every span whose tag has an entry in the
// donor map built from donorSpans. Spans without a donor entry and all bytes
// outside replaced spans are left as they are. The only error is a
// *marker.TagDecodeError from scanning target.
func Rebase(target, donor []byte, donorSpans []marker.Span, opts ...marker.ScanOption) ([]byte, *Result, error) {
	dm := DonorMap(donor, donorSpans)
	res := &Result{}
	var rws []Rewrite
	for sp, err := range marker.Scan(target, opts...) {
		if err != nil {
			return nil, nil, err
		}
		with, ok := dm[sp.Tag]
		if !ok {
			res.Kept = append(res.Kept, sp.Tag)
			continue
		}
		if debug.Splice() {
			debug.Logf("splice %s <- %d bytes\n", sp, len(with))
		}
		res.Replaced = append(res.Replaced, sp.Tag)
		rws = append(rws, Rewrite{Start: sp.Start, End: sp.End, With: with})
	}
	return Apply(target, rws), res, nil
}
