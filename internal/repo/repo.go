// Package repo finds and creates docver repositories.
//
// A repository is a .docver directory holding one or more registry
// databases: docver.db by default, docver-<name>.db for named ones. Commands
// find it the way git finds .git, walking up from the working directory
// until a .docver directory with the wanted database turns up. Which
// databases are committed is controlled through .docver/.gitignore (see
// repo_gitignore.go).
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/docver/internal/store"
)

const (
	// Dir is the directory name for the docver repository.
	Dir = ".docver"
	// DBFile is the default database filename.
	DBFile = "docver.db"

	dbPrefix = "docver-"
	dbSuffix = ".db"
)

var (
	// ErrNotInitialised is returned when no docver repository is found.
	ErrNotInitialised = errors.New("docver not initialised (run 'docver init')")

	// ErrInvalidDBName is returned for a database name that would place the
	// file outside .docver.
	ErrInvalidDBName = errors.New("invalid database name")
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "docver.db".
// A name like "docs" returns "docver-docs.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, dbSuffix) {
		return name
	}
	return dbPrefix + name + dbSuffix
}

// dbName is the inverse of DBFileName for files found in .docver. ok is
// false for files that are not docver databases.
func dbName(file string) (name string, ok bool) {
	switch {
	case file == DBFile:
		return "", true
	case strings.HasPrefix(file, dbPrefix) && strings.HasSuffix(file, dbSuffix):
		return strings.TrimSuffix(strings.TrimPrefix(file, dbPrefix), dbSuffix), true
	default:
		return "", false
	}
}

// CheckDBName rejects names containing path separators or dot segments.
func CheckDBName(name string) error {
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidDBName, name)
	}
	return nil
}

// Init creates dir/.docver (dir defaults to the working directory) with an
// empty database named db, and a default .gitignore. An existing database
// is only replaced when force is set. local lists the database in
// .gitignore. Settings are left to "docver config".
func Init(force bool, db string, local bool, dir string) error {
	if err := CheckDBName(db); err != nil {
		return err
	}
	if dir == "" {
		dir = "."
	}
	dvDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(dvDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := removeDB(dbPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(dvDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	if err := writeDefaultGitignore(dvDir); err != nil {
		return err
	}
	if local {
		if err := IgnoreDB(db, dvDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}
	return nil
}

// removeDB deletes a database with its WAL side files.
func removeDB(dbPath string) error {
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("remove database: %w", err)
	}
	for _, side := range []string{"-wal", "-shm"} {
		if err := os.Remove(dbPath + side); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove database: %w", err)
		}
	}
	return nil
}

// walkUp calls found for the working directory and each parent in turn
// and returns the first path it reports.
func walkUp(found func(dir string) (string, bool)) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		if p, ok := found(dir); ok {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Discover walks up from the working directory to the nearest .docver
// holding database db and returns the database path.
func Discover(db string) (string, error) {
	if err := CheckDBName(db); err != nil {
		return "", err
	}
	dbFile := DBFileName(db)
	return walkUp(func(dir string) (string, bool) {
		p := filepath.Join(dir, Dir, dbFile)
		_, err := os.Stat(p)
		return p, err == nil
	})
}

// DiscoverDir walks up from the working directory to the nearest .docver
// directory and returns its path.
func DiscoverDir() (string, error) {
	return walkUp(func(dir string) (string, bool) {
		p := filepath.Join(dir, Dir)
		info, err := os.Stat(p)
		return p, err == nil && info.IsDir()
	})
}

// Locate resolves the database path. An explicit dir (the project directory
// holding .docver) skips discovery.
func Locate(db, dir string) (string, error) {
	if dir == "" {
		return Discover(db)
	}
	if err := CheckDBName(db); err != nil {
		return "", err
	}
	dbPath := filepath.Join(dir, Dir, DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInitialised, dbPath)
	}
	return dbPath, nil
}

// DBInfo describes one database in a .docver directory.
type DBInfo struct {
	Name  string // Short name (empty for default, "docs" for docver-docs.db)
	File  string // Filename (docver.db, docver-docs.db)
	Path  string // Full path
	Local bool   // True if gitignored
}

// ListDBs returns the databases in the .docver directory dir, or in the
// discovered one when dir is empty, in filename order. An unreadable
// .gitignore reports every database as shared.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, fmt.Errorf("discover .docver directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .docver directory: %w", err)
	}
	g, err := loadGitignore(dir)
	if err != nil {
		g = &gitignore{}
	}

	var dbs []DBInfo
	for _, e := range entries {
		name, ok := dbName(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: g.has(e.Name()),
		})
	}
	return dbs, nil
}
