// Package snipfile manages companion snippet files: the files holding the user
// code regions extracted from an original source file.
package snipfile

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/signadot/grovel/marker"
)

const DefaultSuffix = ".snip"

// Naming maps originals to companions by appending Suffix to the whole file
// name, so main.c pairs with main.c.snip.
type Naming struct {
	Suffix string
}

func (n Naming) suffix() string {
	if n.Suffix == "" {
		return DefaultSuffix
	}
	return n.Suffix
}

func (n Naming) SnipPath(path string) string {
	return path + n.suffix()
}

// OriginalPath inverts SnipPath. ok is false if path is not a companion.
func (n Naming) OriginalPath(path string) (orig string, ok bool) {
	sfx := n.suffix()
	if !strings.HasSuffix(path, sfx) || len(filepath.Base(path)) <= len(sfx) {
		return "", false
	}
	return strings.TrimSuffix(path, sfx), true
}

func (n Naming) IsSnip(path string) bool {
	_, ok := n.OriginalPath(path)
	return ok
}

var (
	crlf = []byte("\r\n")
	cr   = []byte("\r")
	lf   = []byte("\n")
)

// LineEnding returns the line terminator buf uses: "\r\n" if it occurs
// anywhere, else "\r" if that does, else "\n".
func LineEnding(buf []byte) []byte {
	switch {
	case bytes.Contains(buf, crlf):
		return crlf
	case bytes.Contains(buf, cr):
		return cr
	}
	return lf
}

// Join concatenates the spans of buf separated by eol and terminated by one
// more eol. It returns nil when there are no spans.
func Join(buf []byte, spans []marker.Span, eol []byte) []byte {
	if len(spans) == 0 {
		return nil
	}
	n := len(spans) * len(eol)
	for _, sp := range spans {
		n += sp.End - sp.Start
	}
	res := make([]byte, 0, n)
	for i, sp := range spans {
		if i > 0 {
			res = append(res, eol...)
		}
		res = append(res, sp.Bytes(buf)...)
	}
	return append(res, eol...)
}
