package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuide(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("guide")
	env.contains(out, "# docver")
}

func TestGuide_Topic(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("guide", "rename")
	env.contains(out, "rename")
}

func TestGuide_NotFound(t *testing.T) {
	env := newBareEnv(t)

	out, err := env.runErr("guide", "nope")
	assert.Error(t, err)
	env.contains(out, "Available:")
}

func TestGuide_List(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("guide", "--list")
	env.contains(out, "rename")
	env.contains(out, "docver config")
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("version")
	env.contains(out, "Go Version:")
	env.contains(out, "Extensions: core, document")

	var info struct {
		GoVersion  string   `json:"go_version"`
		Extensions []string `json:"extensions"`
	}
	env.runJSON(&info, "version")
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, []string{"core", "document"}, info.Extensions)
}

func TestVersion_Short(t *testing.T) {
	env := newBareEnv(t)

	env.equals(env.run("version", "--short"), "dev")
}
