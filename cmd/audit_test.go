package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditOut struct {
	Source   string `json:"source"`
	Action   string `json:"action"`
	Author   string `json:"author"`
	Document int64  `json:"document_id"`
	Success  bool   `json:"success"`
	Error    string `json:"error"`
}

func TestAudit(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "-a", "alice", "Report", "2024-01-01", "docs/Report/Report.docx")
	env.run("archive", "-a", "bob", "1")
	_, err := env.runErr("archive", "99")
	require.Error(t, err)

	var all []auditOut
	env.runJSON(&all, "audit")
	require.Len(t, all, 4)
	assert.Equal(t, int64(99), all[0].Document, "newest first")
	assert.False(t, all[0].Success)
	assert.Equal(t, "bob", all[1].Author)
	assert.Equal(t, "document:create", all[2].Source)
	assert.Equal(t, "alice", all[2].Author)
	assert.Equal(t, "core:init", all[3].Source)

	var doc []auditOut
	env.runJSON(&doc, "audit", "1")
	require.Len(t, doc, 2)
	assert.Equal(t, "archive", doc[0].Action)
	assert.Equal(t, "create", doc[1].Action)

	out := env.run("audit", "--failed")
	env.contains(out, "FAIL")
	env.contains(out, "document:archive")
	assert.NotContains(t, out, "document:create")

	var limited []auditOut
	env.runJSON(&limited, "audit", "--limit", "1")
	assert.Len(t, limited, 1)
}

func TestAudit_Projects(t *testing.T) {
	env := newTestEnv(t)
	other := filepath.Join(env.dir, "other")
	env.run("init", "--dir", other)
	env.run("create", "--dir", other, "Elsewhere", "2024-01-01", "x/Elsewhere.txt")

	out := env.run("audit")
	env.contains(out, "core:init")
	assert.NotContains(t, out, "document:create")

	var all []auditOut
	env.runJSON(&all, "audit", "--all")
	require.NotEmpty(t, all)
	assert.Equal(t, "document:create", all[0].Source)
}

func TestAudit_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.contains(env.run("audit", "42"), "No audit entries")

	out, err := env.runErr("audit", "--since", "soon")
	require.Error(t, err)
	env.contains(out, "audit --since")

	out, err = env.runErr("audit", "abc")
	require.Error(t, err)
	env.contains(out, "invalid document id")

	_, err = env.runErr("audit", "--limit", "-1")
	require.Error(t, err)
}
