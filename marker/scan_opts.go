package marker

import "regexp"

const DefaultKeyword = "USER CODE"

var defaultRe = compileMarkerRe(DefaultKeyword)

func compileMarkerRe(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`/\*\s*` + regexp.QuoteMeta(keyword) + ` (BEGIN|END)([^*]*)\*/`)
}

type scanOpts struct {
	re       *regexp.Regexp
	filename string
	diag     func(Diagnostic)
}

func newScanOpts(opts []ScanOption) *scanOpts {
	o := &scanOpts{re: defaultRe}
	for _, f := range opts {
		f(o)
	}
	return o
}

func (o *scanOpts) report(d Diagnostic) {
	if o.diag != nil {
		o.diag(d)
	}
}

type ScanOption func(*scanOpts)

// ScanKeyword replaces the "USER CODE" words that introduce a marker.
func ScanKeyword(kw string) ScanOption {
	return func(o *scanOpts) {
		if kw == "" || kw == DefaultKeyword {
			o.re = defaultRe
			return
		}
		o.re = compileMarkerRe(kw)
	}
}

// ScanFilename names the buffer in positions.
func ScanFilename(name string) ScanOption {
	return func(o *scanOpts) { o.filename = name }
}

// ScanDiagnostics registers f to receive structural diagnostics. Without it
// diagnostics are dropped.
func ScanDiagnostics(f func(Diagnostic)) ScanOption {
	return func(o *scanOpts) { o.diag = f }
}

// CollectDiagnostics appends diagnostics to *dst.
func CollectDiagnostics(dst *[]Diagnostic) ScanOption {
	return ScanDiagnostics(func(d Diagnostic) {
		*dst = append(*dst, d)
	})
}
