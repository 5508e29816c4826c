// Package guide holds the embedded help pages served by "docver guide" and
// the docver_guide MCP tool.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var files embed.FS

// index is the page served for an empty topic. It is not listed as a topic.
const index = "guide"

// ErrUnknownTopic is returned by Get for a topic with no page.
var ErrUnknownTopic = errors.New("unknown guide topic")

// Topic is a listed guide page.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Get returns the markdown of a topic, or the index page when topic is
// empty.
func Get(topic string) (string, error) {
	if topic == "" {
		topic = index
	}
	data, err := files.ReadFile(topic + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns topic names, sorted, without the index page.
func List() ([]string, error) {
	topics, err := Topics()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names, nil
}

// Topics returns every topic with the text of its first heading.
func Topics() ([]Topic, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var out []Topic
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name == index {
			continue
		}
		data, err := files.ReadFile(e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Topic{Name: name, Title: title(string(data))})
	}
	return out, nil
}

// title returns the first markdown heading without its hashes.
func title(md string) string {
	for line := range strings.SplitSeq(md, "\n") {
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
