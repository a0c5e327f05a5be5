// Package walk enumerates the source files and snippet files of a project
// tree.
package walk

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/signadot/grovel/debug"
	"github.com/signadot/grovel/snipfile"
)

var (
	DefaultExtensions = []string{".c", ".cc", ".cpp", ".h", ".hh", ".hpp"}
	DefaultSkipDirs   = []string{".git", ".hg", ".svn", "node_modules", ".cache"}
)

// File is one selected file.
type File struct {
	// Filesystem path (root joined with Rel).
	Path string
	// Root-relative path using forward slashes (e.g. "Core/Src/main.c").
	Rel string
	// Size in bytes.
	Size int64
}

// Walker selects files by extension. The zero value uses
// DefaultExtensions, DefaultSkipDirs and the default snippet naming.
type Walker struct {
	Extensions []string
	SkipDirs   []string
	Naming     snipfile.Naming
	// Filter further restricts selection. For snippet files it is evaluated
	// against the original file name.
	Filter *Filter
	// OnError receives errors for entries below the root. The walk continues
	// with the next entry. When nil such errors end the walk.
	OnError func(path string, err error)
}

func (w *Walker) extensions() []string {
	if len(w.Extensions) == 0 {
		return DefaultExtensions
	}
	return w.Extensions
}

func (w *Walker) skipDirs() []string {
	if w.SkipDirs == nil {
		return DefaultSkipDirs
	}
	return w.SkipDirs
}

// Eligible reports whether rel names a primary source: its extension is in
// the allow-list (case-insensitive) and it is not a snippet file.
func (w *Walker) Eligible(rel string) bool {
	if w.Naming.IsSnip(rel) {
		return false
	}
	ext := strings.ToLower(path.Ext(rel))
	for _, e := range w.extensions() {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Sources calls fn for every eligible source below root in lexical order.
func (w *Walker) Sources(root string, fn func(File) error) error {
	return w.walk(root, func(f File) (bool, error) {
		if !w.Eligible(f.Rel) {
			return false, nil
		}
		return w.Filter.Match(env(f.Rel, f.Size))
	}, fn)
}

// Snips calls fn for every snippet file below root whose original would be
// an eligible source.
func (w *Walker) Snips(root string, fn func(File) error) error {
	return w.walk(root, func(f File) (bool, error) {
		orig, ok := w.Naming.OriginalPath(f.Rel)
		if !ok || !w.Eligible(orig) {
			return false, nil
		}
		return w.Filter.Match(env(orig, -1))
	}, fn)
}

func env(rel string, size int64) Env {
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	return Env{
		Path: rel,
		Name: path.Base(rel),
		Dir:  dir,
		Ext:  strings.ToLower(path.Ext(rel)),
		Size: size,
	}
}

func (w *Walker) walk(root string, sel func(File) (bool, error), fn func(File) error) error {
	skip := w.skipDirs()
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root || w.OnError == nil {
				return err
			}
			w.OnError(p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && slices.Contains(skip, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		fi, err := regular(p, d)
		if err != nil {
			if w.OnError == nil {
				return err
			}
			w.OnError(p, err)
			return nil
		}
		if fi == nil {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		f := File{Path: p, Rel: filepath.ToSlash(rel), Size: fi.Size()}
		ok, err := sel(f)
		if err != nil {
			return err
		}
		if debug.Walk() {
			debug.Logf("walk %s selected=%t\n", f.Rel, ok)
		}
		if !ok {
			return nil
		}
		return fn(f)
	})
}

// regular returns the info of the regular file at p, following a symlink
// entry to its target. It returns nil for anything else.
func regular(p string, d fs.DirEntry) (fs.FileInfo, error) {
	switch {
	case d.Type().IsRegular():
		return d.Info()
	case d.Type()&fs.ModeSymlink != 0:
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if fi.Mode().IsRegular() {
			return fi, nil
		}
	}
	return nil, nil
}
