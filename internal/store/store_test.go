package store_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jpl-au/docver/internal/rewrite"
	"github.com/jpl-au/docver/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "docver-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func day(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// --- Create and Get ---

func TestStore_CreateAndGet(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "Report", day(2024, 1, 1), "docs/Report/Report.docx")
	require.NoError(t, err)
	assert.Positive(t, id)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "Report", doc.Name)
	assert.Nil(t, doc.ArchivedAt)
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, id, doc.Versions[0].DocumentID)
	assert.Equal(t, "docs/Report/Report.docx", doc.Versions[0].FilePath)
	assert.Equal(t, day(2024, 1, 1), doc.Versions[0].CreatedAt)
}

func TestStore_GetMissing(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	doc, err := s.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestStore_GetIsStable(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)
	_, err = s.AddVersion(ctx, id, day(2024, 1, 2), "docs/A/A_v2.pdf")
	require.NoError(t, err)

	first, err := s.Get(ctx, id)
	require.NoError(t, err)
	second, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// Create must leave nothing behind when the version insert fails.
func TestStore_CreateRollsBack(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.DB().Exec(`CREATE TRIGGER block_version_insert BEFORE INSERT ON version
		BEGIN SELECT RAISE(ABORT, 'blocked'); END`)
	require.NoError(t, err)

	_, err = s.Create(ctx, "Report", day(2024, 1, 1), "docs/Report/Report.docx")
	require.Error(t, err)

	docs, err := s.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

// --- List ---

func TestStore_List(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	a, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)
	b, err := s.Create(ctx, "B", day(2024, 1, 1), "docs/B/B.pdf")
	require.NoError(t, err)

	// Versions come back in created-date order regardless of insert order.
	_, err = s.AddVersion(ctx, a, day(2024, 3, 1), "docs/A/A_v3.pdf")
	require.NoError(t, err)
	_, err = s.AddVersion(ctx, a, day(2024, 2, 1), "docs/A/A_v2.pdf")
	require.NoError(t, err)

	docs, err := s.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, a, docs[0].ID)
	assert.Equal(t, b, docs[1].ID)

	require.Len(t, docs[0].Versions, 3)
	assert.Equal(t, "docs/A/A.pdf", docs[0].Versions[0].FilePath)
	assert.Equal(t, "docs/A/A_v2.pdf", docs[0].Versions[1].FilePath)
	assert.Equal(t, "docs/A/A_v3.pdf", docs[0].Versions[2].FilePath)
	assert.Len(t, docs[1].Versions, 1)
}

func TestStore_ListArchiveFilters(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	a, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)
	b, err := s.Create(ctx, "B", day(2024, 1, 1), "docs/B/B.pdf")
	require.NoError(t, err)
	require.NoError(t, s.Archive(ctx, a))

	all, err := s.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := s.List(ctx, store.ListOptions{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b, active[0].ID)

	archived, err := s.List(ctx, store.ListOptions{ArchivedOnly: true})
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, a, archived[0].ID)
}

// --- AddVersion and Archive ---

func TestStore_AddVersion(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)

	vid, err := s.AddVersion(ctx, id, day(2024, 2, 1), "docs/A/A_v2.pdf")
	require.NoError(t, err)
	assert.Positive(t, vid)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, vid, doc.Versions[1].ID)
}

func TestStore_NotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.AddVersion(ctx, 42, day(2024, 1, 1), "x/y.pdf")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.Archive(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Rename(ctx, 42, "B")
	assert.ErrorIs(t, err, store.ErrNotFound)

	ok, err := s.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Archive(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)

	require.NoError(t, s.Archive(ctx, id))
	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, doc.ArchivedAt)
	first := *doc.ArchivedAt

	// Re-archiving refreshes the timestamp and touches nothing else.
	require.NoError(t, s.Archive(ctx, id))
	doc, err = s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, doc.ArchivedAt)
	assert.GreaterOrEqual(t, *doc.ArchivedAt, first)
	assert.Equal(t, "A", doc.Name)
	assert.Len(t, doc.Versions, 1)
}

// --- Rename ---

func TestStore_Rename(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)

	report, err := s.Rename(ctx, id, "B")
	require.NoError(t, err)
	assert.False(t, report.HasWarnings())
	require.Len(t, report.Changes, 1)
	assert.Equal(t, "docs/A/A.pdf", report.Changes[0].OldPath)
	assert.Equal(t, "docs/B/B.pdf", report.Changes[0].NewPath)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "B", doc.Name)
	assert.Equal(t, "docs/B/B.pdf", doc.Versions[0].FilePath)
}

func TestStore_PreviewRenameWritesNothing(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)

	report, err := s.PreviewRename(ctx, id, "B")
	require.NoError(t, err)
	require.Len(t, report.Changes, 1)
	assert.Equal(t, "docs/B/B.pdf", report.Changes[0].NewPath)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Name)
	assert.Equal(t, "docs/A/A.pdf", doc.Versions[0].FilePath)
}

// A failing version update must roll back the name and every path.
func TestStore_RenameRollsBack(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)
	_, err = s.AddVersion(ctx, id, day(2024, 1, 2), "docs/A/A_v2.pdf")
	require.NoError(t, err)
	last, err := s.AddVersion(ctx, id, day(2024, 1, 3), "docs/A/A_v3.pdf")
	require.NoError(t, err)

	_, err = s.DB().Exec(`CREATE TRIGGER block_update BEFORE UPDATE OF file_path ON version
		WHEN NEW.id = `+itoa(last)+` BEGIN SELECT RAISE(ABORT, 'blocked'); END`)
	require.NoError(t, err)

	_, err = s.Rename(ctx, id, "B")
	require.Error(t, err)

	var cerr *rewrite.CascadeError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, last, cerr.VersionID)
	assert.Len(t, cerr.Applied, 2)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Name)
	for _, v := range doc.Versions {
		assert.Contains(t, v.FilePath, "docs/A/")
	}
}

func TestStore_RenameWithoutVersions(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	// Only reachable by writing around the store, which always creates a
	// first version.
	res, err := s.DB().Exec(`INSERT INTO document (file_name) VALUES ('Orphan')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	report, err := s.Rename(ctx, id, "Adopted")
	require.NoError(t, err)
	assert.True(t, report.HasWarnings())
	assert.ErrorIs(t, report.Warnings[0], rewrite.ErrNoVersions)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Adopted", doc.Name)
	assert.Empty(t, doc.Versions)
}

// --- Integrity ---

func TestStore_ForeignKeysEnforced(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.DB().Exec(`INSERT INTO version (doc_id, file_path, created_date) VALUES (999, 'x/y.pdf', 0)`)
	assert.Error(t, err)
}

func TestStore_ReleasesConnections(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)
	_, _ = s.Rename(ctx, id, "B")
	_, _ = s.List(ctx, store.ListOptions{})
	_ = s.Archive(ctx, 999)
	_ = s.Conn(ctx, func(q store.Querier) error { return assert.AnError })

	assert.Equal(t, 0, s.DB().Stats().InUse)
}

func TestStore_Transaction(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO document (file_name) VALUES ('tx-test')`)
		if err != nil {
			return err
		}
		// Return error to trigger rollback
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	docs, err := s.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_InitIdempotent(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	assert.NoError(t, s.Init())
}

// --- Stats and Check ---

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	a, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)
	_, err = s.Create(ctx, "B", day(2024, 1, 5), "docs/B/B.pdf")
	require.NoError(t, err)
	_, err = s.AddVersion(ctx, a, day(2024, 2, 1), "docs/A/A_v2.pdf")
	require.NoError(t, err)
	require.NoError(t, s.Archive(ctx, a))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Documents)
	assert.Equal(t, int64(1), st.Archived)
	assert.Equal(t, int64(3), st.Versions)
	assert.Equal(t, day(2024, 1, 1), st.OldestVersion)
	assert.Equal(t, day(2024, 2, 1), st.NewestVersion)
}

func TestStore_Check(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.Create(ctx, "A", day(2024, 1, 1), "docs/A/A.pdf")
	require.NoError(t, err)
	stray, err := s.Create(ctx, "B", day(2024, 1, 1), "docs/Other/B.pdf")
	require.NoError(t, err)
	res, err := s.DB().Exec(`INSERT INTO document (file_name) VALUES ('Empty')`)
	require.NoError(t, err)
	empty, err := res.LastInsertId()
	require.NoError(t, err)

	issues, err := s.Check(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, store.IssuePathMismatch, issues[0].Kind)
	assert.Equal(t, stray, issues[0].DocumentID)
	assert.Equal(t, store.IssueNoVersions, issues[1].Kind)
	assert.Equal(t, empty, issues[1].DocumentID)
}

func TestCheckView_BareFilename(t *testing.T) {
	v := store.DocumentView{
		Document: store.Document{ID: 1, Name: "Lib"},
		Versions: []store.Version{
			{ID: 1, DocumentID: 1, FilePath: "Lib.pdf"},
			{ID: 2, DocumentID: 1, FilePath: "/Lib_v2.pdf"},
		},
	}
	assert.Empty(t, store.CheckView(v))

	v.Versions = append(v.Versions, store.Version{ID: 3, DocumentID: 1, FilePath: "docs/Other/Lib.pdf"})
	issues := store.CheckView(v)
	require.Len(t, issues, 1)
	assert.Equal(t, store.IssuePathMismatch, issues[0].Kind)
	assert.Equal(t, int64(3), issues[0].VersionID)
}

func TestDocumentView_ToJSON(t *testing.T) {
	archived := day(2024, 3, 1)
	v := store.DocumentView{
		Document: store.Document{ID: 1, Name: "A", ArchivedAt: &archived},
		Versions: []store.Version{{ID: 7, DocumentID: 1, FilePath: "docs/A/A.pdf", CreatedAt: day(2024, 1, 1)}},
	}

	j := v.ToJSON()
	assert.Equal(t, "2024-03-01T00:00:00Z", j.ArchivedAt)
	require.Len(t, j.Versions, 1)
	assert.Equal(t, "2024-01-01T00:00:00Z", j.Versions[0].CreatedAt)
	assert.Equal(t, int64(7), j.Versions[0].ID)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func TestStore_SchemaVersion(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	v, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "one step per sql/ file")

	require.NoError(t, s.Init())
	v, err = s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestStore_SchemaTooNew(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.DB().Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Init(), store.ErrSchemaTooNew)
}
