// Package rewrite recomputes version file paths when their document is
// renamed.
//
// A version path conventionally ends in <folder>/<filename>, where both the
// folder and the filename stem carry the document's name:
//
//	docs/Report/Report_v2.docx
//
// Renaming the document to "Final" rewrites that path to
//
//	docs/Final/Final_v2.docx
//
// The ancestor prefix ("docs") and the extension are never touched. Path is
// the pure transform; Cascade applies it to every version of one document
// through a caller-supplied transaction.
package rewrite

import (
	"errors"
	"strings"
	"unicode"

	"github.com/jpl-au/docver/internal/path"
)

var (
	// ErrNoVersions is reported as a warning when a renamed document owns no
	// versions. Every document is created with one, so this flags damage.
	ErrNoVersions = errors.New("document has no versions")
	// ErrEmptyPath is returned for a version path with no filename segment.
	ErrEmptyPath = errors.New("empty version path")
	// ErrPathCollision is reported as a warning when two different paths of
	// one document still rewrite to the same new path.
	ErrPathCollision = errors.New("rewritten paths collide")
)

// Path returns the rewritten form of oldPath for a document renamed from
// oldName to newName.
//
// The old folder segment (or oldName when the path has no folder) is matched
// against the start of the filename stem. A match is replaced by newName and
// any suffix is kept, so "Report_v2" becomes "Final_v2". A stem that does not
// start with the old name is rebuilt as newName plus the original extension.
func Path(oldPath, oldName, newName string) (string, error) {
	np, _, err := rewrite(oldPath, oldName, newName)
	return np, err
}

// rewrite is Path that also reports whether the stem started with the old
// name. Stems that did not are replaced wholesale and may collide.
func rewrite(oldPath, oldName, newName string) (string, bool, error) {
	segs := path.Split(slashed(oldPath))

	file := segs[len(segs)-1]
	if file == "" {
		return "", false, ErrEmptyPath
	}
	segs = segs[:len(segs)-1]

	// The folder is absent for bare filenames and for files directly under
	// the root of an absolute path, where the only remaining segment is the
	// empty marker Split leaves before the leading slash.
	match := oldName
	if n := len(segs); n > 0 && !(n == 1 && segs[0] == "") {
		match = segs[n-1]
		segs = segs[:n-1]
	}

	stem, ext := path.SplitExt(file)
	stem, matched := replacePrefix(stem, match, newName)

	segs = append(segs, newName, stem+ext)
	return path.Join(segs), matched, nil
}

// replacePrefix swaps a leading old for new in stem. A following letter
// means the match is part of a longer word, so "Reports" is not "Report"
// plus "s". Digits and punctuation are kept as a suffix: "A2" becomes "B2".
func replacePrefix(stem, old, new string) (string, bool) {
	if old == "" || !strings.HasPrefix(stem, old) {
		return new, false
	}
	rest := stem[len(old):]
	if rest != "" && unicode.IsLetter([]rune(rest)[0]) {
		return new, false
	}
	return new + rest, true
}

// keepStem rebuilds the filename of np as newName_<old stem>, keeping the
// extension. It separates a replaced stem from another version that already
// claimed the plain name.
func keepStem(np, oldPath, newName string) string {
	oldStem, _ := path.SplitExt(path.Base(slashed(oldPath)))
	segs := path.Split(np)
	_, ext := path.SplitExt(segs[len(segs)-1])
	segs[len(segs)-1] = newName + "_" + oldStem + ext
	return path.Join(segs)
}

func slashed(p string) string {
	return strings.ReplaceAll(p, "\\", path.Sep)
}
