package grovel

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"

	"github.com/signadot/grovel/marker"
	"github.com/signadot/grovel/snipfile"
)

type ColorAttr int

const (
	PathColor ColorAttr = iota
	MarkerColor
	InsertColor
	DeleteColor
	HunkColor
	WrittenColor
	RemovedColor
)

// Colors holds the terminal colours used for output. A nil *Colors prints
// plain text.
type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			PathColor:    color.New(color.Bold).SprintfFunc(),
			MarkerColor:  color.RGB(74, 92, 138).SprintfFunc(),
			InsertColor:  color.GreenString,
			DeleteColor:  color.RedString,
			HunkColor:    color.CyanString,
			WrittenColor: color.RGB(8, 196, 16).SprintfFunc(),
			RemovedColor: color.RGB(196, 96, 16).SprintfFunc(),
		},
	}
}

func colorDefault(format string, args ...any) string { return fmt.Sprintf(format, args...) }

func (c *Colors) Color(attr ColorAttr, s string) string {
	if c == nil {
		return s
	}
	f, ok := c.Map[attr]
	if !ok {
		return c.Default("%s", s)
	}
	return f("%s", s)
}

func (c *Colors) path(s string) string {
	return c.Color(PathColor, s)
}

func (c *Colors) action(a snipfile.Action) string {
	switch a {
	case snipfile.Written:
		return c.Color(WrittenColor, a.String())
	case snipfile.Removed:
		return c.Color(RemovedColor, a.String())
	}
	return a.String()
}

// highlight colours the marker comments of d. Scan errors leave d as is.
func (c *Colors) highlight(d []byte, opts []marker.ScanOption) []byte {
	if c == nil {
		return d
	}
	var buf bytes.Buffer
	last := 0
	for m, err := range marker.Markers(d, opts...) {
		if err != nil {
			return d
		}
		buf.Write(d[last:m.Start])
		buf.WriteString(c.Color(MarkerColor, string(d[m.Start:m.End])))
		last = m.End
	}
	buf.Write(d[last:])
	return buf.Bytes()
}
