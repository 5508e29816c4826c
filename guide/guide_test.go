package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Default(t *testing.T) {
	content, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, content, "# docver")
}

func TestGet_Topic(t *testing.T) {
	content, err := Get("rename")
	require.NoError(t, err)
	assert.Contains(t, content, "docs/Final/Final_v2.docx")
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"audit", "config", "mcp", "rename"}, names)
}

func TestGet_UnknownIsTyped(t *testing.T) {
	_, err := Get("nope")
	assert.ErrorIs(t, err, ErrUnknownTopic)
}

func TestTopics(t *testing.T) {
	topics, err := Topics()
	require.NoError(t, err)
	require.Len(t, topics, 4)
	assert.Equal(t, Topic{Name: "audit", Title: "docver audit"}, topics[0])
	assert.Equal(t, Topic{Name: "config", Title: "docver config"}, topics[1])
	assert.Equal(t, "docver rename", topics[3].Title)
}
