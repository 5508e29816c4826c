// tools_guide.go implements docver_guide, serving the same embedded pages
// as "docver guide". It needs no store, so it works before docver_init.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/docver/guide"
	"github.com/jpl-au/docver/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles docver_guide tool calls. topic "list" returns the topics.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")

	if topic == "list" {
		topics, err := guide.Topics()
		log.Event("mcp:guide", "list").Author("mcp").Write(err)
		if err != nil {
			return nil, fmt.Errorf("listing guides: %w", err)
		}
		return jsonResult(topics)
	}

	content, err := guide.Get(topic)

	log.Event("mcp:guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if errors.Is(err, guide.ErrUnknownTopic) {
		names, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return mcp.NewToolResultError(fmt.Sprintf("%v (available: %s)", err, strings.Join(names, ", "))), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading guide %q: %w", topic, err)
	}
	return mcp.NewToolResultText(content), nil
}
