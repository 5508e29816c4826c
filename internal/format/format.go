// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and tree rendering.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jpl-au/docver/internal/log"
	"github.com/jpl-au/docver/internal/path"
	"github.com/jpl-au/docver/internal/rewrite"
	"github.com/jpl-au/docver/internal/store"
)

const dateLayout = "2006-01-02"

// date formats a unix timestamp as a UTC calendar date.
func date(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(dateLayout)
}

// List prints documents one per line: id, name and an archived marker.
func List(w io.Writer, docs []store.DocumentView) error {
	for _, doc := range docs {
		suffix := ""
		if doc.Archived() {
			suffix = " [archived]"
		}
		fmt.Fprintf(w, "%4d  %s%s\n", doc.ID, doc.Name, suffix)
	}
	return nil
}

// Long prints documents with version count, latest version date and path.
//
// Column order is ID, VER, UPDATED, ARCHIVED, NAME, LATEST. Fixed-width
// columns come first so variable-length names don't disrupt alignment.
func Long(w io.Writer, docs []store.DocumentView) error {
	if len(docs) == 0 {
		return nil
	}

	maxName := 4 // minimum "NAME"
	for _, doc := range docs {
		if len(doc.Name) > maxName {
			maxName = len(doc.Name)
		}
	}

	fmt.Fprintf(w, "%4s  %3s  %-10s  %-10s  %-*s  %s\n", "ID", "VER", "UPDATED", "ARCHIVED", maxName, "NAME", "LATEST")

	for _, doc := range docs {
		updated, latest := "-", "-"
		if n := len(doc.Versions); n > 0 {
			updated = date(doc.Versions[n-1].CreatedAt)
			latest = doc.Versions[n-1].FilePath
		}
		archived := "-"
		if doc.ArchivedAt != nil {
			archived = date(*doc.ArchivedAt)
		}
		fmt.Fprintf(w, "%4d  %3d  %-10s  %-10s  %-*s  %s\n",
			doc.ID, len(doc.Versions), updated, archived, maxName, doc.Name, latest)
	}
	return nil
}

// Document prints one document and its versions, oldest first.
func Document(w io.Writer, doc store.DocumentView) error {
	fmt.Fprintf(w, "Document %d: %s\n", doc.ID, doc.Name)
	if doc.ArchivedAt != nil {
		fmt.Fprintf(w, "Archived: %s\n", date(*doc.ArchivedAt))
	}
	fmt.Fprintf(w, "Versions: %d\n", len(doc.Versions))
	for _, v := range doc.Versions {
		fmt.Fprintf(w, "  %4d  %s  %s\n", v.ID, date(v.CreatedAt), v.FilePath)
	}
	return nil
}

// Tree prints version paths as a directory tree.
func Tree(w io.Writer, docs []store.DocumentView) error {
	type node struct {
		name     string
		children map[string]*node
		isFile   bool
	}

	root := &node{children: make(map[string]*node)}

	for _, doc := range docs {
		for _, v := range doc.Versions {
			current := root
			parts := path.Split(v.FilePath)
			for i, part := range parts {
				if part == "" {
					part = path.Sep
				}
				if current.children[part] == nil {
					current.children[part] = &node{
						name:     part,
						children: make(map[string]*node),
					}
				}
				current = current.children[part]
				if i == len(parts)-1 {
					current.isFile = true
				}
			}
		}
	}

	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}

			suffix := ""
			if !child.isFile && len(child.children) > 0 && name != path.Sep {
				suffix = "/"
			}

			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}

			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}

// Changes prints the path changes of a rename, one version per line.
// Unchanged paths are marked so a dry run shows every version it visited.
func Changes(w io.Writer, r *rewrite.Report) error {
	for _, c := range r.Changes {
		if c.Unchanged() {
			fmt.Fprintf(w, "  %4d  %s (unchanged)\n", c.VersionID, c.OldPath)
			continue
		}
		fmt.Fprintf(w, "  %4d  %s -> %s\n", c.VersionID, c.OldPath, c.NewPath)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning: %v\n", warn)
	}
	return nil
}

// Issues prints consistency issues, one per line.
func Issues(w io.Writer, issues []store.Issue) error {
	for _, is := range issues {
		var b strings.Builder
		fmt.Fprintf(&b, "%-14s  document %d", is.Kind, is.DocumentID)
		if is.VersionID != 0 {
			fmt.Fprintf(&b, " version %d", is.VersionID)
		}
		if is.Detail != "" {
			b.WriteString(": " + is.Detail)
		}
		fmt.Fprintln(w, b.String())
	}
	return nil
}

// Audit prints audit entries, newest first, one per line: time, outcome,
// source, author, target and the error of failed operations.
func Audit(w io.Writer, entries []log.Entry) error {
	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "FAIL"
		}
		author := e.Author
		if author == "" {
			author = "-"
		}
		target := ""
		switch {
		case e.Document != 0:
			target = fmt.Sprintf("doc %d", e.Document)
		case e.Result != 0:
			target = fmt.Sprintf("-> %d", e.Result)
		}
		line := fmt.Sprintf("%s  %-4s  %-20s  %-12s  %s",
			e.Start.UTC().Format("2006-01-02 15:04:05"), status, e.Source, author, target)
		if e.Error != "" {
			line += "  " + e.Error
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return nil
}
