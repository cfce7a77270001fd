// Package termfile implements ports.TermSource over an fs.FS: the embedded
// default lists, or a directory of <language>.txt files on disk.
package termfile

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/corey/termcheck/internal/lists"
	"github.com/corey/termcheck/internal/ports"
)

// ext is the file extension of a term list.
const ext = ".txt"

// Source reads <language>.txt lists from the root of an fs.FS.
type Source struct {
	fsys fs.FS
}

// New returns a Source over fsys.
func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Embedded returns a Source over the lists compiled into the binary.
func Embedded() *Source {
	return New(lists.FS)
}

// Dir returns a Source over a directory on disk.
func Dir(dir string) *Source {
	return New(os.DirFS(dir))
}

// Locate maps a language code to "<code>.txt" if that file exists.
// Codes that would escape the root or name a nested path are absent.
func (s *Source) Locate(language string) (string, bool) {
	if language == "" || strings.ContainsAny(language, `/\.`) {
		return "", false
	}
	name := language + ext
	if !fs.ValidPath(name) {
		return "", false
	}
	info, err := fs.Stat(s.fsys, name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}

// Read returns the raw content of a located list.
func (s *Source) Read(id string) ([]byte, error) {
	b, err := fs.ReadFile(s.fsys, id)
	if err != nil {
		return nil, fmt.Errorf("read term list %s: %w", id, err)
	}
	return b, nil
}

// Languages returns the codes of every list in the source, sorted.
func (s *Source) Languages() ([]string, error) {
	matches, err := fs.Glob(s.fsys, "*"+ext)
	if err != nil {
		return nil, err
	}
	langs := make([]string, 0, len(matches))
	for _, m := range matches {
		langs = append(langs, strings.TrimSuffix(path.Base(m), ext))
	}
	sort.Strings(langs)
	return langs, nil
}

// Chain tries each source in order. The first source that can locate a
// language owns it, so earlier sources override later ones.
type Chain []ports.TermSource

// Locate returns an identifier of the form "<index>:<inner id>".
func (c Chain) Locate(language string) (string, bool) {
	for i, src := range c {
		if id, ok := src.Locate(language); ok {
			return strconv.Itoa(i) + ":" + id, true
		}
	}
	return "", false
}

// Read dispatches to the source that located id.
func (c Chain) Read(id string) ([]byte, error) {
	idx, inner, ok := strings.Cut(id, ":")
	if !ok {
		return nil, fmt.Errorf("term list %q: %w", id, ports.ErrNotFound)
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(c) {
		return nil, fmt.Errorf("term list %q: %w", id, ports.ErrNotFound)
	}
	return c[i].Read(inner)
}
