// Package path provides normalisation and segment handling for the file
// paths stored against each version.
//
// Version paths point at artifacts held outside docver (a file share, an
// object store, a directory on disk). docver never touches those bytes; it
// only keeps the path strings consistent with the owning document's name.
//
// Normalisation rules:
//   - Separators are forward slashes (backslashes are converted)
//   - Duplicate separators and "." components are collapsed
//   - A leading slash is kept (absolute storage locations are valid)
//   - Trailing slashes are removed
//   - Empty paths and paths escaping their root via ".." are rejected
package path

import (
	"errors"
	stdpath "path"
	"strings"
)

// Sep separates the segments of a stored file path.
const Sep = "/"

// ErrInvalid indicates the provided file path is invalid.
var ErrInvalid = errors.New("invalid file path")

// Normalise cleans and validates a version file path.
func Normalise(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrInvalid
	}

	// Explicitly convert backslashes so paths recorded on Windows hosts
	// split the same way everywhere.
	p = strings.ReplaceAll(p, "\\", Sep)
	p = stdpath.Clean(p)

	if p == "." || p == Sep {
		return "", ErrInvalid
	}
	for _, seg := range Split(p) {
		if seg == ".." {
			return "", ErrInvalid
		}
	}
	return p, nil
}

// Split returns the segments of a normalised path. An absolute path yields
// an empty first segment so that Join restores the leading slash.
func Split(p string) []string {
	return strings.Split(p, Sep)
}

// Join is the inverse of Split.
func Join(segs []string) string {
	return strings.Join(segs, Sep)
}

// Base returns the last segment of p.
func Base(p string) string {
	segs := Split(p)
	return segs[len(segs)-1]
}

// Folder returns the segment directly above the filename, or "" when the
// path has no parent segment.
func Folder(p string) string {
	segs := Split(p)
	if len(segs) < 2 {
		return ""
	}
	return segs[len(segs)-2]
}

// SplitExt splits a filename into stem and extension. The extension keeps
// its leading dot. Dotfiles such as ".env" have no extension.
func SplitExt(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}
