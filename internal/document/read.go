// read.go implements document retrieval operations for the Service layer.
//
// Separated from service.go to isolate read-only operations. Reads never
// fire events and never return partial results.

package document

import (
	"context"

	"github.com/jpl-au/docver/internal/store"
	"github.com/jpl-au/docver/internal/validate"
)

// List returns documents with their versions.
func (s *Service) List(ctx context.Context, opts store.ListOptions) ([]store.DocumentView, error) {
	docs, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, s.fail(ctx, "list", 0, err)
	}
	return docs, nil
}

// Get returns one document with its versions, or nil if it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*store.DocumentView, error) {
	if err := validate.ID(id); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get", id, err)
	}
	return doc, nil
}

// Stats returns aggregate counts.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, s.fail(ctx, "stats", 0, err)
	}
	return st, nil
}

// Check reports consistency issues: documents without versions and version
// paths whose folder no longer matches the document name.
func (s *Service) Check(ctx context.Context) ([]store.Issue, error) {
	issues, err := s.store.Check(ctx)
	if err != nil {
		return nil, s.fail(ctx, "check", 0, err)
	}
	for _, is := range issues {
		s.logger.InfoContext(ctx, "consistency issue", "kind", is.Kind, "document", is.DocumentID, "version", is.VersionID)
	}
	return issues, nil
}
