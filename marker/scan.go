package marker

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/signadot/grovel/debug"
)

// Markers yields every marker comment of buf in buffer order. Each match is
// searched for only when the consumer asks for the next marker.
func Markers(buf []byte, opts ...ScanOption) iter.Seq2[Marker, error] {
	o := newScanOpts(opts)
	doc := NewPosDoc(o.filename, buf)
	return func(yield func(Marker, error) bool) {
		markers(buf, o, doc, yield)
	}
}

func markers(buf []byte, o *scanOpts, doc *PosDoc, yield func(Marker, error) bool) {
	off := 0
	for off < len(buf) {
		loc := o.re.FindSubmatchIndex(buf[off:])
		if loc == nil {
			return
		}
		m := Marker{Kind: End, Start: off + loc[0], End: off + loc[1]}
		if string(buf[off+loc[2]:off+loc[3]]) == "BEGIN" {
			m.Kind = Begin
		}
		raw := buf[off+loc[4] : off+loc[5]]
		off = m.End
		if !utf8.Valid(raw) {
			yield(Marker{}, &TagDecodeError{Raw: raw, Pos: doc.Pos(off - len(raw) - 2)})
			return
		}
		m.Tag = strings.TrimSpace(string(raw))
		if !yield(m, nil) {
			return
		}
	}
}

// Scan pairs the markers of buf into spans.
//
// Pairing keeps a single open BEGIN, never a stack. A BEGIN arriving while
// another is open reports UnmatchedBegin for the earlier one and replaces it.
// The malformed region from the earlier BEGIN up to the new one is not
// yielded as a span; it is available only as the diagnostic's Span, so
// consumers such as extract and donor maps see well-formed regions only.
// An END closes the open BEGIN only when the tags are equal; otherwise it is
// dropped with UnmatchedEnd. A BEGIN still open at the end of buf is dropped
// silently.
//
// Spans are yielded in increasing Start order and never overlap. A tag that
// is not valid UTF-8 yields a *TagDecodeError and ends the sequence.
func Scan(buf []byte, opts ...ScanOption) iter.Seq2[Span, error] {
	o := newScanOpts(opts)
	doc := NewPosDoc(o.filename, buf)
	return func(yield func(Span, error) bool) {
		var open *Marker
		markers(buf, o, doc, func(m Marker, err error) bool {
			if err != nil {
				yield(Span{}, err)
				return false
			}
			if debug.Scan() {
				debug.Logf("scan %s %s %q\n", doc.Pos(m.Start), m.Kind, m.Tag)
			}
			switch {
			case m.Kind == Begin:
				if open != nil {
					o.report(Diagnostic{
						Kind: UnmatchedBegin,
						Tag:  open.Tag,
						Text: string(buf[open.Start:open.End]),
						Pos:  doc.Pos(open.Start),
						Span: &Span{Tag: open.Tag, Start: open.Start, End: m.Start},
					})
				}
				open = &m
			case open != nil && open.Tag == m.Tag:
				sp := Span{Tag: m.Tag, Start: open.Start, End: m.End}
				open = nil
				return yield(sp, nil)
			default:
				o.report(Diagnostic{
					Kind: UnmatchedEnd,
					Tag:  m.Tag,
					Text: string(buf[m.Start:m.End]),
					Pos:  doc.Pos(m.Start),
				})
			}
			return true
		})
	}
}

// All collects the spans of buf.
func All(buf []byte, opts ...ScanOption) ([]Span, error) {
	var res []Span
	for sp, err := range Scan(buf, opts...) {
		if err != nil {
			return nil, err
		}
		res = append(res, sp)
	}
	return res, nil
}
