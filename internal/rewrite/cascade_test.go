package rewrite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jpl-au/docver/internal/rewrite"
	"github.com/jpl-au/docver/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "cascade.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCascade_FanOut(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "A", 100, "docs/A/A.pdf")
	require.NoError(t, err)
	other, err := s.Create(ctx, "A", 100, "docs/A/A.pdf")
	require.NoError(t, err)
	for i, p := range []string{"docs/A/A_v2.pdf", "docs/A/A_v3.pdf", "docs/A/A_v2.pdf"} {
		_, err := s.AddVersion(ctx, id, int64(200+i), p)
		require.NoError(t, err)
	}

	var report *rewrite.Report
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var err error
		report, err = rewrite.Cascade(ctx, tx, id, "A", "B", false)
		return err
	})
	require.NoError(t, err)
	require.Len(t, report.Changes, 4)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, doc.Versions, 4)
	want := []string{"docs/B/B.pdf", "docs/B/B_v2.pdf", "docs/B/B_v3.pdf", "docs/B/B_v2.pdf"}
	for i, v := range doc.Versions {
		assert.Equal(t, want[i], v.FilePath)
		assert.Equal(t, id, v.DocumentID)
	}

	// Another document with identical paths is untouched.
	untouched, err := s.Get(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "docs/A/A.pdf", untouched.Versions[0].FilePath)
}

func TestCascade_DistinctPathsStayDistinct(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "A", 100, "docs/A/A1.pdf")
	require.NoError(t, err)
	for i, p := range []string{"docs/A/A2.pdf", "docs/A/scan.pdf"} {
		_, err := s.AddVersion(ctx, id, int64(200+i), p)
		require.NoError(t, err)
	}

	var report *rewrite.Report
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var err error
		report, err = rewrite.Cascade(ctx, tx, id, "A", "B", false)
		return err
	})
	require.NoError(t, err)
	assert.False(t, report.HasWarnings())

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	var got []string
	for _, v := range doc.Versions {
		got = append(got, v.FilePath)
	}
	assert.Equal(t, []string{"docs/B/B1.pdf", "docs/B/B2.pdf", "docs/B/B.pdf"}, got)
}

func TestCascade_ReplacedStemKeepsOldStem(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "A", 100, "docs/A/A.pdf")
	require.NoError(t, err)
	_, err = s.AddVersion(ctx, id, 200, "docs/A/scan.pdf")
	require.NoError(t, err)

	var report *rewrite.Report
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var err error
		report, err = rewrite.Cascade(ctx, tx, id, "A", "B", false)
		return err
	})
	require.NoError(t, err)
	assert.False(t, report.HasWarnings())

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, "docs/B/B.pdf", doc.Versions[0].FilePath)
	assert.Equal(t, "docs/B/B_scan.pdf", doc.Versions[1].FilePath)
}

func TestCascade_CollisionWarning(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "A", 100, "docs/A/A.pdf")
	require.NoError(t, err)
	_, err = s.AddVersion(ctx, id, 200, `docs\A\A.pdf`)
	require.NoError(t, err)

	var report *rewrite.Report
	err = s.Conn(ctx, func(q store.Querier) error {
		var err error
		report, err = rewrite.Cascade(ctx, q, id, "A", "B", true)
		return err
	})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.ErrorIs(t, report.Warnings[0], rewrite.ErrPathCollision)
	require.Len(t, report.Changes, 2)
}

func TestCascade_DryRun(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "A", 100, "docs/A/A.pdf")
	require.NoError(t, err)

	var report *rewrite.Report
	err = s.Conn(ctx, func(q store.Querier) error {
		var err error
		report, err = rewrite.Cascade(ctx, q, id, "A", "B", true)
		return err
	})
	require.NoError(t, err)
	require.Len(t, report.Changes, 1)
	assert.Equal(t, "docs/B/B.pdf", report.Changes[0].NewPath)

	doc, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "docs/A/A.pdf", doc.Versions[0].FilePath)
}

func TestCascade_NoVersions(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	var report *rewrite.Report
	err := s.Conn(ctx, func(q store.Querier) error {
		var err error
		report, err = rewrite.Cascade(ctx, q, 77, "A", "B", false)
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
	require.True(t, report.HasWarnings())
	assert.ErrorIs(t, report.Warnings[0], rewrite.ErrNoVersions)
}
