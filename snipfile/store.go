package snipfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/signadot/grovel/marker"
	"github.com/signadot/grovel/splice"
)

var (
	ErrMissingOriginal = errors.New("original file not found")
	ErrNotSnip         = errors.New("not a snippet file")
)

// MissingOriginalError is returned when a snippet file has no original to
// rebase onto.
type MissingOriginalError struct {
	Snip     string
	Original string
	Err      error
}

func (e *MissingOriginalError) Unwrap() []error {
	return []error{ErrMissingOriginal, e.Err}
}

func (e *MissingOriginalError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Snip, ErrMissingOriginal, e.Original)
}

type Action int

const (
	Unchanged Action = iota
	Written
	Removed
	// Skipped means there was nothing to do: a snippet file without regions.
	Skipped
)

func (a Action) String() string {
	switch a {
	case Unchanged:
		return "unchanged"
	case Written:
		return "written"
	case Removed:
		return "removed"
	case Skipped:
		return "skipped"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Store reads sources and snippet files below Source and writes snippet files
// or rewritten originals at the same relative paths below Target.
type Store struct {
	Source string
	// Target defaults to Source.
	Target string
	Naming Naming
	// ScanOpts apply to every scan the store performs.
	ScanOpts []marker.ScanOption
	// DryRun computes results without touching the file system.
	DryRun bool
}

func (s *Store) target() string {
	if s.Target == "" {
		return s.Source
	}
	return s.Target
}

func (s *Store) scanOpts(name string, opts []marker.ScanOption) []marker.ScanOption {
	res := make([]marker.ScanOption, 0, 1+len(s.ScanOpts)+len(opts))
	res = append(res, marker.ScanFilename(name))
	res = append(res, s.ScanOpts...)
	return append(res, opts...)
}

// Read returns the contents and spans of the file at rel below Source.
func (s *Store) Read(rel string, opts ...marker.ScanOption) ([]byte, []marker.Span, error) {
	p := filepath.Join(s.Source, rel)
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, nil, err
	}
	spans, err := marker.All(d, s.scanOpts(p, opts)...)
	if err != nil {
		return nil, nil, err
	}
	return d, spans, nil
}

type ExtractResult struct {
	Path    string
	Snip    string
	Spans   []marker.Span
	Content []byte
	Action  Action
}

// Extract refreshes the snippet file of the source at rel. The snippet file
// holds the source's spans joined by the source's line ending, plus a final
// line ending. A source without spans has its snippet file removed.
func (s *Store) Extract(rel string, opts ...marker.ScanOption) (*ExtractResult, error) {
	d, spans, err := s.Read(rel, opts...)
	if err != nil {
		return nil, err
	}
	res := &ExtractResult{
		Path:  filepath.Join(s.Source, rel),
		Snip:  filepath.Join(s.target(), s.Naming.SnipPath(rel)),
		Spans: spans,
	}
	if len(spans) == 0 {
		if s.DryRun {
			if _, err := os.Stat(res.Snip); err == nil {
				res.Action = Removed
			}
			return res, nil
		}
		removed, err := RemoveFile(res.Snip)
		if err != nil {
			return nil, err
		}
		if removed {
			res.Action = Removed
		}
		return res, nil
	}
	res.Content = Join(d, spans, LineEnding(d))
	old, err := os.ReadFile(res.Snip)
	if err == nil && bytes.Equal(old, res.Content) {
		return res, nil
	}
	if !s.DryRun {
		if err := WriteFile(res.Snip, res.Content); err != nil {
			return nil, err
		}
	}
	res.Action = Written
	return res, nil
}

type RebaseResult struct {
	Snip     string
	Original string
	Before   []byte
	After    []byte
	Splice   *splice.Result
	Action   Action
}

// Rebase splices the spans of the snippet file at rel below Source into its
// original below Target, replacing the original in place.
func (s *Store) Rebase(rel string, opts ...marker.ScanOption) (*RebaseResult, error) {
	origRel, ok := s.Naming.OriginalPath(rel)
	if !ok {
		return nil, fmt.Errorf("%s: %w", rel, ErrNotSnip)
	}
	donor, spans, err := s.Read(rel, opts...)
	if err != nil {
		return nil, err
	}
	res := &RebaseResult{
		Snip:     filepath.Join(s.Source, rel),
		Original: filepath.Join(s.target(), origRel),
	}
	if len(spans) == 0 {
		res.Action = Skipped
		return res, nil
	}
	before, err := os.ReadFile(res.Original)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingOriginalError{Snip: res.Snip, Original: res.Original, Err: err}
	}
	if err != nil {
		return nil, err
	}
	after, sr, err := splice.Rebase(before, donor, spans, s.scanOpts(res.Original, opts)...)
	if err != nil {
		return nil, err
	}
	res.Before, res.After, res.Splice = before, after, sr
	if bytes.Equal(before, after) {
		return res, nil
	}
	if !s.DryRun {
		if err := WriteFile(res.Original, after); err != nil {
			return nil, err
		}
	}
	res.Action = Written
	return res, nil
}
