package cmd

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type versionOut struct {
	ID        int64  `json:"id"`
	FilePath  string `json:"file_path"`
	CreatedAt string `json:"created_at"`
}

type documentOut struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	ArchivedAt string       `json:"archived_at"`
	Versions   []versionOut `json:"versions"`
}

type changeOut struct {
	VersionID int64  `json:"version_id"`
	OldPath   string `json:"old_path"`
	NewPath   string `json:"new_path"`
}

type reportOut struct {
	DocumentID int64       `json:"document_id"`
	OldName    string      `json:"old_name"`
	NewName    string      `json:"new_name"`
	Changes    []changeOut `json:"changes"`
	Warnings   []string    `json:"warnings"`
}

func (e *testEnv) show(id string) documentOut {
	e.t.Helper()
	var doc documentOut
	e.runJSON(&doc, "show", id)
	return doc
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")
	env.contains(out, "Created document 1: Report")

	doc := env.show("1")
	assert.Equal(t, "Report", doc.Name)
	assert.Empty(t, doc.ArchivedAt)
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, "docs/Report/Report.docx", doc.Versions[0].FilePath)
	assert.Equal(t, "2024-01-01T00:00:00Z", doc.Versions[0].CreatedAt)
}

func TestCreate_JSON(t *testing.T) {
	env := newTestEnv(t)

	var res struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		FilePath string `json:"file_path"`
	}
	env.runJSON(&res, "create", "Plan", "2024-03-01", "Plan/Plan.pdf")
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, "Plan", res.Name)
}

func TestCreate_BackslashPath(t *testing.T) {
	env := newTestEnv(t)

	var created struct {
		ID       int64  `json:"id"`
		FilePath string `json:"file_path"`
	}
	env.runJSON(&created, "create", "Report", "2024-01-01", `docs\Report\Report.docx`)
	assert.Equal(t, "docs/Report/Report.docx", created.FilePath)

	doc := env.show("1")
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, created.FilePath, doc.Versions[0].FilePath)

	var added struct {
		FilePath string `json:"file_path"`
	}
	env.runJSON(&added, "add-version", "1", "2024-02-01", `docs\Report\.\Report_v2.docx`)
	assert.Equal(t, "docs/Report/Report_v2.docx", added.FilePath)
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty name", []string{"create", "", "2024-01-01", "a/a.txt"}},
		{"padded name", []string{"create", " Report ", "2024-01-01", "a/a.txt"}},
		{"bad date", []string{"create", "Report", "yesterday", "a/a.txt"}},
		{"empty path", []string{"create", "Report", "2024-01-01", ""}},
		{"missing args", []string{"create", "Report"}},
	}

	env := newTestEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.runErr(tt.args...)
			assert.Error(t, err)
		})
	}

	var docs []documentOut
	env.runJSON(&docs, "ls")
	assert.Empty(t, docs, "failed creates must not write")
}

func TestShow_NotFound(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("show", "99")
	assert.Error(t, err)
	env.contains(out, "document not found")
}

func TestShow_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("show", "abc")
	assert.Error(t, err)
	env.contains(out, "invalid document id")
}

func TestShow_Text(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("show", "1")
	env.contains(out, "Document 1: Report")
	env.contains(out, "Versions: 1")
	env.contains(out, "2024-01-01")
	env.contains(out, "docs/Report/Report.docx")
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")
	env.run("create", "Budget", "2024-01-02", "finance/Budget/Budget.xlsx")

	out := env.run("ls")
	env.contains(out, "Report")
	env.contains(out, "Budget")

	var docs []documentOut
	env.runJSON(&docs, "ls")
	require.Len(t, docs, 2)
	assert.Equal(t, int64(1), docs[0].ID)
	assert.Equal(t, int64(2), docs[1].ID)
}

func TestLs_Long(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("ls", "-l")
	env.contains(out, "NAME")
	env.contains(out, "docs/Report/Report.docx")
}

func TestLs_Tree(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("ls", "-t")
	env.contains(out, "docs")
	env.contains(out, "Report.docx")
}

func TestLs_ActiveArchived(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")
	env.run("create", "Old", "2023-01-01", "docs/Old/Old.docx")
	env.run("archive", "2")

	var active, archived, all []documentOut
	env.runJSON(&active, "ls", "--active")
	env.runJSON(&archived, "ls", "--archived")
	env.runJSON(&all, "ls")

	require.Len(t, active, 1)
	assert.Equal(t, "Report", active[0].Name)
	require.Len(t, archived, 1)
	assert.Equal(t, "Old", archived[0].Name)
	assert.NotEmpty(t, archived[0].ArchivedAt)
	assert.Len(t, all, 2)

	_, err := env.runErr("ls", "--active", "--archived")
	assert.Error(t, err)
}

func TestLs_Stale(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Ancient", "2000-01-01", "Ancient/Ancient.txt")

	var docs []documentOut
	env.runJSON(&docs, "ls", "--stale", "4w")
	require.Len(t, docs, 1)
	assert.Equal(t, "Ancient", docs[0].Name)

	_, err := env.runErr("ls", "--stale", "soon")
	assert.Error(t, err)
}

func TestRename(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("rename", "1", "Report2")
	env.contains(out, "Renamed Report -> Report2")
	env.contains(out, "docs/Report2/Report2.docx")

	doc := env.show("1")
	assert.Equal(t, "Report2", doc.Name)
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, "docs/Report2/Report2.docx", doc.Versions[0].FilePath)
}

func TestRename_AllVersions(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")
	env.run("add-version", "1", "2024-02-01", "docs/Report/Report_v2.docx")

	var report reportOut
	env.runJSON(&report, "rename", "1", "Final")
	assert.Equal(t, "Report", report.OldName)
	assert.Equal(t, "Final", report.NewName)
	require.Len(t, report.Changes, 2)

	doc := env.show("1")
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, "docs/Final/Final.docx", doc.Versions[0].FilePath)
	assert.Equal(t, "docs/Final/Final_v2.docx", doc.Versions[1].FilePath)
}

func TestRename_DryRun(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("rename", "1", "Final", "--dry-run")
	env.contains(out, "docs/Final/Final.docx")

	doc := env.show("1")
	assert.Equal(t, "Report", doc.Name, "dry run must not write")
	assert.Equal(t, "docs/Report/Report.docx", doc.Versions[0].FilePath)
}

func TestRename_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out, err := env.runErr("rename", "7", "Other")
	assert.Error(t, err)
	env.contains(out, "document not found")

	_, err = env.runErr("rename", "1", "")
	assert.Error(t, err)

	assert.Equal(t, "Report", env.show("1").Name)
}

func TestAddVersion(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("add-version", "1", "2024-02-01", "docs/Report/Report_v2.docx")
	env.contains(out, "to document 1")

	doc := env.show("1")
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, "docs/Report/Report_v2.docx", doc.Versions[1].FilePath)

	_, err := env.runErr("add-version", "42", "2024-02-01", "x/x.txt")
	assert.Error(t, err)
}

func TestArchive(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("archive", "1")
	env.contains(out, "Archived document 1")
	first := env.show("1").ArchivedAt
	require.NotEmpty(t, first)

	// archiving again is accepted and the document stays archived
	env.run("archive", "1")
	assert.GreaterOrEqual(t, env.show("1").ArchivedAt, first)

	_, err := env.runErr("archive", "5")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("check")
	env.contains(out, "No issues found")

	env.run("add-version", "1", "2024-02-01", "elsewhere/Draft/Draft.docx")

	out, err := env.runErr("check")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode(), "issues exit with status 2")
	env.contains(out, "path_mismatch")

	var issues []struct {
		Kind       string `json:"kind"`
		DocumentID int64  `json:"document_id"`
		VersionID  int64  `json:"version_id"`
	}
	env.runJSON(&issues, "check")
	require.Len(t, issues, 1)
	assert.Equal(t, "path_mismatch", issues[0].Kind)
	assert.Equal(t, int64(2), issues[0].VersionID)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")
	env.run("create", "Old", "2023-01-01", "Old/Old.txt")
	env.run("add-version", "1", "2024-02-01", "docs/Report/Report_v2.docx")
	env.run("archive", "2")

	out := env.run("stats")
	env.contains(out, "Documents: 2 (1 active, 1 archived)")
	env.contains(out, "Versions:  3")

	var st struct {
		Documents     int64  `json:"documents"`
		Versions      int64  `json:"versions"`
		OldestVersion string `json:"oldest_version"`
		NewestVersion string `json:"newest_version"`
	}
	env.runJSON(&st, "stats")
	assert.Equal(t, int64(2), st.Documents)
	assert.Equal(t, int64(3), st.Versions)
	assert.Equal(t, "2023-01-01T00:00:00Z", st.OldestVersion)
	assert.Equal(t, "2024-02-01T00:00:00Z", st.NewestVersion)
}

// TestLifecycle walks a document from creation through rename, a second
// version, a second rename and archive.
func TestLifecycle(t *testing.T) {
	env := newTestEnv(t)

	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")
	env.run("rename", "1", "Report2")
	assert.Equal(t, "docs/Report2/Report2.docx", env.show("1").Versions[0].FilePath)

	env.run("add-version", "1", "2024-06-01", "docs/Report2/Report2_final.docx")
	env.run("rename", "1", "Annual")

	doc := env.show("1")
	assert.Equal(t, "Annual", doc.Name)
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, "docs/Annual/Annual.docx", doc.Versions[0].FilePath)
	assert.Equal(t, "docs/Annual/Annual_final.docx", doc.Versions[1].FilePath)

	env.run("archive", "1")

	var active []documentOut
	env.runJSON(&active, "ls", "--active")
	assert.Empty(t, active)

	out := env.run("check")
	env.contains(out, "No issues found")
}

func TestVerboseLogsDiagnostics(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("-v", "archive", "99")
	assert.Error(t, err)
	env.contains(out, "level=DEBUG")
	env.contains(out, "component=document")

	out, err = env.runErr("archive", "99")
	assert.Error(t, err)
	assert.NotContains(t, out, "level=DEBUG")
}

func TestJSONErrors(t *testing.T) {
	env := newTestEnv(t)

	var e struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	env.runJSON(&e, "show", "99")
	assert.Equal(t, "not_found", e.Kind)
	assert.Contains(t, e.Error, "document not found")

	env.runJSON(&e, "create", "", "2024-01-01", "a/a.txt")
	assert.Equal(t, "invalid", e.Kind)
}
