package marker

import "fmt"

type Kind int

const (
	Begin Kind = iota
	End
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "BEGIN"
	case End:
		return "END"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Marker is one BEGIN or END comment found in a buffer. End is exclusive.
type Marker struct {
	Kind  Kind
	Tag   string
	Start int
	End   int
}

// Span is a BEGIN marker paired with its END marker, covering both comments.
type Span struct {
	Tag   string
	Start int
	End   int
}

// Bytes returns the region of buf covered by s.
func (s Span) Bytes(buf []byte) []byte {
	return buf[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%q[%d:%d]", s.Tag, s.Start, s.End)
}

type DiagnosticKind int

const (
	// UnmatchedBegin is a BEGIN followed by another BEGIN before its END.
	UnmatchedBegin DiagnosticKind = iota
	// UnmatchedEnd is an END with no open BEGIN or a different tag.
	UnmatchedEnd
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnmatchedBegin:
		return "USER CODE BEGIN without matching END"
	case UnmatchedEnd:
		return "USER CODE END without matching BEGIN ignored"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a recoverable structural problem found while scanning.
type Diagnostic struct {
	Kind DiagnosticKind
	// Tag of the unmatched marker: the earlier BEGIN for UnmatchedBegin, the
	// dropped END for UnmatchedEnd.
	Tag string
	// Text is the full comment of the marker the diagnostic names.
	Text string
	Pos  Pos
	// Span is the best effort region of an UnmatchedBegin: its BEGIN through
	// the start of the BEGIN that interrupted it. It is never yielded by Scan.
	Span *Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Text)
}
