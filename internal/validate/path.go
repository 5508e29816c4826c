package validate

import (
	"strings"

	"github.com/jpl-au/docver/internal/path"
)

// FilePath validates a version's stored path and returns the normalised
// form.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected
//   - Max length enforced if maxLen > 0 (checked before normalisation)
//   - Normalisation via path.Normalise (separators, traversal)
func FilePath(p string, maxLen int) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fail("file_path", ErrRequired)
	}
	if strings.ContainsRune(p, 0) {
		return "", fail("file_path", ErrInvalidPath)
	}
	if maxLen > 0 && len(p) > maxLen {
		return "", fail("file_path", ErrTooLong)
	}

	norm, err := path.Normalise(p)
	if err != nil {
		return "", fail("file_path", ErrInvalidPath)
	}
	return norm, nil
}
