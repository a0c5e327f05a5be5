package grovel

import (
	"fmt"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffContext is the number of unchanged lines shown around a change.
const DiffContext = 3

type diffLine struct {
	op   diffpatch.Operation
	text string
}

// WriteDiff writes a line diff of before and after to w. Unchanged lines
// further than DiffContext from a change are elided behind a hunk line.
func WriteDiff(w io.Writer, name string, before, after []byte, c *Colors) error {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		for _, l := range splitLines(d.Text) {
			all = append(all, diffLine{op: d.Type, text: l})
		}
	}

	var sb strings.Builder
	sb.WriteString(c.Color(DeleteColor, "--- "+name) + "\n")
	sb.WriteString(c.Color(InsertColor, "+++ "+name) + "\n")
	lastShown := -1
	for i, l := range all {
		if l.op == diffpatch.DiffEqual && !nearChange(all, i) {
			continue
		}
		if i != lastShown+1 {
			sb.WriteString(c.Color(HunkColor, fmt.Sprintf("@@ line %d @@", lineNo(all, i))) + "\n")
		}
		lastShown = i
		text := strings.TrimRight(l.text, "\r\n")
		switch l.op {
		case diffpatch.DiffInsert:
			sb.WriteString(c.Color(InsertColor, "+"+text))
		case diffpatch.DiffDelete:
			sb.WriteString(c.Color(DeleteColor, "-"+text))
		default:
			sb.WriteString(" " + text)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func splitLines(s string) []string {
	res := strings.SplitAfter(s, "\n")
	if len(res) > 0 && res[len(res)-1] == "" {
		res = res[:len(res)-1]
	}
	return res
}

func nearChange(all []diffLine, i int) bool {
	lo, hi := max(0, i-DiffContext), min(len(all), i+DiffContext+1)
	for _, l := range all[lo:hi] {
		if l.op != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// lineNo is the 1-based line of all[i] in the new text.
func lineNo(all []diffLine, i int) int {
	n := 1
	for _, l := range all[:i] {
		if l.op != diffpatch.DiffDelete {
			n++
		}
	}
	return n
}
