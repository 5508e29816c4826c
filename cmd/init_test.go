package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("init")
	env.contains(out, "Initialised docver registry")

	assert.DirExists(t, filepath.Join(env.dir, ".docver"))
	assert.FileExists(t, filepath.Join(env.dir, ".docver", "docver.db"))
	// init does not create config
	assert.NoFileExists(t, filepath.Join(env.dir, ".docver", "config.yaml"))
}

func TestInit_AlreadyInitialised(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("init")
	assert.Error(t, err)
}

func TestInit_Force(t *testing.T) {
	env := newTestEnv(t)
	env.run("create", "Report", "2024-01-01", "docs/Report/Report.docx")

	out := env.run("init", "--force")
	env.contains(out, "Discarded 1 existing documents")

	var docs []map[string]any
	env.runJSON(&docs, "ls")
	assert.Empty(t, docs, "force reinit starts from an empty registry")
}

func TestInit_Dir(t *testing.T) {
	env := newBareEnv(t)
	target := t.TempDir()

	env.run("init", "--dir", target)
	assert.FileExists(t, filepath.Join(target, ".docver", "docver.db"))

	env.run("create", "Plan", "2024-01-01", "Plan/Plan.pdf", "--dir", target)
	out := env.run("ls", "--dir", target)
	env.contains(out, "Plan")
}

func TestInit_DirAndLocalIncompatible(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("init", "--dir", t.TempDir(), "--local")
	assert.Error(t, err)
	env.contains(out, "cannot use --local with --dir")
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("ls")
	assert.Error(t, err)
	env.contains(out, "docver not initialised")
}

func TestInit_Local(t *testing.T) {
	env := newBareEnv(t)

	env.run("init", "--db", "scratch", "--local")

	gitignore, err := os.ReadFile(filepath.Join(env.dir, ".docver", ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "docver-scratch.db")
}

func TestHelpWithoutStore(t *testing.T) {
	env := newBareEnv(t)
	env.contains(env.run("help"), "Tracks documents")
	env.contains(env.run("completion", "bash"), "bash completion")
}
