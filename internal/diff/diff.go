// Package diff renders the path changes of a rename for review, used by
// "docver rename --dry-run" and the MCP rename preview.
//
// Each version gets one hunk. Within a hunk the old and new paths are
// compared character by character so the changed segments can be
// highlighted on a terminal.
package diff

import (
	"fmt"
	"strings"

	"github.com/jpl-au/docver/internal/rewrite"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	red   = "\033[31m"
	green = "\033[32m"
	bold  = "\033[1m"
	reset = "\033[0m"
)

// Hunk is the path change of one version.
type Hunk struct {
	VersionID int64
	Old       string
	New       string
	segments  []diffmatchpatch.Diff
}

// Result holds the hunks of a rename, in version order.
type Result struct {
	Old   string // old document name
	New   string // new document name
	Hunks []Hunk
	// Same counts versions whose path the rename leaves untouched.
	Same int
}

// Empty reports whether no version path changes.
func (r Result) Empty() bool {
	return len(r.Hunks) == 0
}

// Rename builds the diff of version paths before and after a rename.
func Rename(r *rewrite.Report) Result {
	dmp := diffmatchpatch.New()
	res := Result{Old: r.OldName, New: r.NewName}
	for _, c := range r.Changes {
		if c.Unchanged() {
			res.Same++
			continue
		}
		segs := dmp.DiffMain(c.OldPath, c.NewPath, false)
		res.Hunks = append(res.Hunks, Hunk{
			VersionID: c.VersionID,
			Old:       c.OldPath,
			New:       c.NewPath,
			segments:  dmp.DiffCleanupSemantic(segs),
		})
	}
	return res
}

// line renders one side of a hunk. keep is the segment type shown on that
// side besides the shared text; it is highlighted when colour is set.
func (h Hunk) line(keep diffmatchpatch.Operation, colour string) string {
	var b strings.Builder
	for _, s := range h.segments {
		switch s.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(s.Text)
		case keep:
			if colour != "" {
				b.WriteString(bold + s.Text + reset + colour)
			} else {
				b.WriteString(s.Text)
			}
		}
	}
	return b.String()
}

// Format returns the diff with a header line per document name. With
// colour the removed and added segments of each path are emphasised.
func (r Result) Format(colour bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", r.Old, r.New)
	for _, h := range r.Hunks {
		fmt.Fprintf(&b, "@@ version %d @@\n", h.VersionID)
		if !colour {
			fmt.Fprintf(&b, "- %s\n+ %s\n", h.Old, h.New)
			continue
		}
		fmt.Fprintf(&b, "%s- %s%s\n", red, h.line(diffmatchpatch.DiffDelete, red), reset)
		fmt.Fprintf(&b, "%s+ %s%s\n", green, h.line(diffmatchpatch.DiffInsert, green), reset)
	}
	if r.Same > 0 {
		fmt.Fprintf(&b, "(%d unchanged)\n", r.Same)
	}
	return b.String()
}
