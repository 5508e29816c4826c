// write.go implements document creation, version append and archival.
//
// Separated from service.go to isolate mutating operations. Every input is
// validated before the store is touched, so a rejected call writes nothing.
// Events fire only after the store call has committed.

package document

import (
	"context"
	"time"

	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/validate"
)

type createInput struct {
	Title    string    `json:"title" validate:"required,nonempty"`
	Created  time.Time `json:"date" validate:"required"`
	FilePath string    `json:"file_path" validate:"required,nonempty"`
}

type versionInput struct {
	ID       int64     `json:"id" validate:"gt=0"`
	Created  time.Time `json:"date" validate:"required"`
	FilePath string    `json:"file_path" validate:"required,nonempty"`
}

// Create inserts a document named title with its first version and returns
// the new document id. Both rows are written in one transaction.
func (s *Service) Create(ctx context.Context, title string, created time.Time, filePath string) (int64, error) {
	if err := validate.Struct(createInput{Title: title, Created: created, FilePath: filePath}); err != nil {
		return 0, err
	}
	if err := validate.Name(title, s.maxName); err != nil {
		return 0, err
	}
	p, err := validate.FilePath(filePath, s.maxPath)
	if err != nil {
		return 0, err
	}

	id, err := s.store.Create(ctx, title, created.Unix(), p)
	if err != nil {
		return 0, s.fail(ctx, "create", 0, err)
	}

	s.logger.DebugContext(ctx, "document created", "document", id, "name", title)
	s.fireEvent(extension.DocumentCreateEvent{ID: id, Name: title, FilePath: p})
	return id, nil
}

// AddVersion appends a version to document id and returns the version id.
// Returns store.ErrNotFound if the document does not exist.
func (s *Service) AddVersion(ctx context.Context, id int64, created time.Time, filePath string) (int64, error) {
	if err := validate.Struct(versionInput{ID: id, Created: created, FilePath: filePath}); err != nil {
		return 0, err
	}
	p, err := validate.FilePath(filePath, s.maxPath)
	if err != nil {
		return 0, err
	}

	vid, err := s.store.AddVersion(ctx, id, created.Unix(), p)
	if err != nil {
		return 0, s.fail(ctx, "add version", id, err)
	}

	s.fireEvent(extension.VersionAddEvent{DocumentID: id, VersionID: vid, FilePath: p})
	return vid, nil
}

// Archive sets the archived date of document id to now.
// Returns store.ErrNotFound if the document does not exist.
func (s *Service) Archive(ctx context.Context, id int64) error {
	if err := validate.ID(id); err != nil {
		return err
	}
	if err := s.store.Archive(ctx, id); err != nil {
		return s.fail(ctx, "archive", id, err)
	}

	s.fireEvent(extension.DocumentArchiveEvent{ID: id})
	return nil
}
