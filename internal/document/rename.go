// rename.go implements document rename for the Service layer.
//
// The store performs the name update and the version path cascade in one
// transaction. This layer validates the new name, surfaces non-fatal
// warnings in the diagnostic log and notifies extensions.

package document

import (
	"context"

	"github.com/jpl-au/docver/extension"
	"github.com/jpl-au/docver/internal/rewrite"
	"github.com/jpl-au/docver/internal/validate"
)

// Rename changes the name of document id and rewrites every version path to
// match. On failure nothing is changed. Returns store.ErrNotFound if the
// document does not exist.
func (s *Service) Rename(ctx context.Context, id int64, newName string) (*rewrite.Report, error) {
	if err := s.validateRename(id, newName); err != nil {
		return nil, err
	}

	report, err := s.store.Rename(ctx, id, newName)
	if err != nil {
		return nil, s.fail(ctx, "rename", id, err)
	}

	for _, w := range report.Warnings {
		s.logger.WarnContext(ctx, "rename completed with warning", "document", id, "warning", w)
	}
	s.fireEvent(extension.DocumentRenameEvent{ID: id, Report: report})
	return report, nil
}

// PreviewRename returns the changes Rename would make without writing.
func (s *Service) PreviewRename(ctx context.Context, id int64, newName string) (*rewrite.Report, error) {
	if err := s.validateRename(id, newName); err != nil {
		return nil, err
	}

	report, err := s.store.PreviewRename(ctx, id, newName)
	if err != nil {
		return nil, s.fail(ctx, "preview rename", id, err)
	}
	return report, nil
}

func (s *Service) validateRename(id int64, newName string) error {
	if err := validate.ID(id); err != nil {
		return err
	}
	return validate.Name(newName, s.maxName)
}
