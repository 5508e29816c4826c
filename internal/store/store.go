// Package store defines document persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Document is a named entity owning one or more versions. Documents are
// never deleted; archiving is the only terminal transition.
type Document struct {
	ID         int64  // Database primary key
	Name       string // Logical name, mirrored into version paths
	ArchivedAt *int64 // Unix timestamp of archival, nil if active
}

// Archived reports whether the document has been archived.
func (d *Document) Archived() bool {
	return d.ArchivedAt != nil
}

// Version is one artifact revision of a document. Only the path string is
// stored; the bytes live wherever the path points.
type Version struct {
	ID         int64  // Database primary key
	DocumentID int64  // Owning document, never reassigned
	FilePath   string // e.g. "docs/Report/Report_v2.docx"
	CreatedAt  int64  // Caller-supplied Unix timestamp
}

// DocumentView is a document together with its versions ordered by
// creation date.
type DocumentView struct {
	Document
	Versions []Version
}

// VersionJSON is the API-friendly representation of a Version.
type VersionJSON struct {
	ID        int64  `json:"id"`
	FilePath  string `json:"file_path"`
	CreatedAt string `json:"created_at"`
}

// DocumentJSON is the API-friendly representation of a DocumentView with
// RFC3339 timestamps.
type DocumentJSON struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	ArchivedAt string        `json:"archived_at,omitempty"`
	Versions   []VersionJSON `json:"versions"`
}

// Latest returns the most recent version, or false if there are none.
// Versions are ordered by created date, so this is the last one.
func (d *DocumentView) Latest() (Version, bool) {
	if len(d.Versions) == 0 {
		return Version{}, false
	}
	return d.Versions[len(d.Versions)-1], true
}

// ToJSON converts a DocumentView to its API representation.
func (d *DocumentView) ToJSON() DocumentJSON {
	j := DocumentJSON{
		ID:       d.ID,
		Name:     d.Name,
		Versions: make([]VersionJSON, 0, len(d.Versions)),
	}
	if d.ArchivedAt != nil {
		j.ArchivedAt = FormatTime(*d.ArchivedAt)
	}
	for _, v := range d.Versions {
		j.Versions = append(j.Versions, VersionJSON{
			ID:        v.ID,
			FilePath:  v.FilePath,
			CreatedAt: FormatTime(v.CreatedAt),
		})
	}
	return j
}

// FormatTime renders a stored Unix timestamp as RFC3339 in UTC.
func FormatTime(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ListOptions filters List by archive state. The zero value lists every
// document.
type ListOptions struct {
	ActiveOnly   bool // Exclude archived documents
	ArchivedOnly bool // Only archived documents
}

// Stats provides aggregate counts for operational visibility.
type Stats struct {
	Documents     int64 // All documents, archived included
	Archived      int64 // Documents with an archived date
	Versions      int64 // All versions
	OldestVersion int64 // Earliest created date (0 if none)
	NewestVersion int64 // Latest created date (0 if none)
}

// StatsJSON is the API representation of Stats.
type StatsJSON struct {
	Documents     int64  `json:"documents"`
	Active        int64  `json:"active"`
	Archived      int64  `json:"archived"`
	Versions      int64  `json:"versions"`
	OldestVersion string `json:"oldest_version,omitempty"`
	NewestVersion string `json:"newest_version,omitempty"`
}

// ToJSON converts Stats to its API representation.
func (s *Stats) ToJSON() StatsJSON {
	j := StatsJSON{
		Documents: s.Documents,
		Active:    s.Documents - s.Archived,
		Archived:  s.Archived,
		Versions:  s.Versions,
	}
	if s.Versions > 0 {
		j.OldestVersion = FormatTime(s.OldestVersion)
		j.NewestVersion = FormatTime(s.NewestVersion)
	}
	return j
}

// Issue kinds reported by Check.
const (
	IssueNoVersions   = "no_versions"
	IssuePathMismatch = "path_mismatch"
)

// Issue is a consistency problem found by Check. VersionID is zero for
// document-level issues.
type Issue struct {
	Kind       string `json:"kind"`
	DocumentID int64  `json:"document_id"`
	VersionID  int64  `json:"version_id,omitempty"`
	Detail     string `json:"detail"`
}
