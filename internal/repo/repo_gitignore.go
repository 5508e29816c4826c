// repo_gitignore.go keeps .docver/.gitignore in step with which registry
// databases are local (never committed) and which are shared.
//
// Only the lines docver owns are touched. Anything a user adds by hand is
// kept in place, and local databases are grouped under localDBHeader.

package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// defaultGitignore is written by Init. The databases themselves are the
// record and are committed unless marked local.
const defaultGitignore = `# docver - ignore local config and WAL side files
# Database files (*.db) are the source of truth and should be committed
config.yaml
*.db-wal
*.db-shm
`

// gitignore is the parsed .docver/.gitignore. lines keep their original
// text; matching trims whitespace.
type gitignore struct {
	path  string
	lines []string
}

// loadGitignore reads the .gitignore in the .docver directory dir, or in the
// discovered one when dir is empty. A missing file loads as empty.
func loadGitignore(dir string) (*gitignore, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, err
		}
	}
	g := &gitignore{path: filepath.Join(dir, ".gitignore")}
	content, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read gitignore: %w", err)
	}
	g.lines = strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	return g, nil
}

func (g *gitignore) index(entry string) int {
	return slices.IndexFunc(g.lines, func(l string) bool { return strings.TrimSpace(l) == entry })
}

func (g *gitignore) has(entry string) bool { return g.index(entry) >= 0 }

// addLocal appends a database under the local header, adding the header
// the first time.
func (g *gitignore) addLocal(dbFile string) bool {
	if g.has(dbFile) {
		return false
	}
	if !g.has(localDBHeader) {
		g.lines = append(g.lines, "", localDBHeader)
	}
	g.lines = append(g.lines, dbFile)
	return true
}

// remove drops a database entry. The local header goes too once no local
// database follows it.
func (g *gitignore) remove(dbFile string) bool {
	i := g.index(dbFile)
	if i < 0 {
		return false
	}
	g.lines = slices.Delete(g.lines, i, i+1)

	h := g.index(localDBHeader)
	if h < 0 {
		return true
	}
	for _, l := range g.lines[h+1:] {
		if strings.HasSuffix(strings.TrimSpace(l), ".db") {
			return true
		}
	}
	g.lines = g.lines[:h]
	for len(g.lines) > 0 && strings.TrimSpace(g.lines[len(g.lines)-1]) == "" {
		g.lines = g.lines[:len(g.lines)-1]
	}
	return true
}

func (g *gitignore) save() error {
	s := strings.Join(g.lines, "\n") + "\n"
	if err := os.WriteFile(g.path, []byte(s), 0644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}

// writeDefaultGitignore creates .gitignore in dvDir unless one exists, so
// local database markers survive a forced reinit.
func writeDefaultGitignore(dvDir string) error {
	path := filepath.Join(dvDir, ".gitignore")
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(path, []byte(defaultGitignore), 0644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}

// IgnoreDB marks a database local by listing it in .gitignore.
// If dir is empty, the .docver directory is discovered from the working
// directory.
func IgnoreDB(name, dir string) error {
	g, err := loadGitignore(dir)
	if err != nil {
		return err
	}
	if !g.addLocal(DBFileName(name)) {
		return nil
	}
	return g.save()
}

// UnignoreDB marks a database shared by removing it from .gitignore.
func UnignoreDB(name, dir string) error {
	g, err := loadGitignore(dir)
	if err != nil {
		return err
	}
	if !g.remove(DBFileName(name)) {
		return nil
	}
	return g.save()
}

// IsIgnored reports whether a database is listed in .gitignore.
func IsIgnored(name, dir string) (bool, error) {
	g, err := loadGitignore(dir)
	if err != nil {
		return false, err
	}
	return g.has(DBFileName(name)), nil
}
