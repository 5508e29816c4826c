// resources.go implements MCP resource handlers for document access.
//
// Resources give clients read-only access to a document by URI without a
// tool call, which suits context loading. The URI pattern is
// docver://documents/{id} and the body is the same JSON as docver_get.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/docver/internal/store"
	"github.com/jpl-au/docver/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

const documentURIPrefix = "docver://documents/"

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrNoDocument indicates the URI names a document that does not exist.
	ErrNoDocument = errors.New("document does not exist")
)

// readDocumentResource reads a document and returns it as resource contents.
func (h *handlers) readDocumentResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, err := parseDocumentURI(uri)
	if err != nil {
		return nil, err
	}

	doc, err := h.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoDocument, id)
	}

	data, err := store.MarshalJSON(doc.ToJSON())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseDocumentURI extracts the document id from docver://documents/{id}.
func parseDocumentURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, documentURIPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id, err := validate.ParseID(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	return id, nil
}
