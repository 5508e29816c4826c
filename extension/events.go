// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events enable
// extensions to react to document changes without modifying core logic.
//
// Design: Events are fire-and-forget notifications, not approval requests.
// They fire only after the operation's transaction has committed, so a
// handler never observes a change that was later rolled back.

package extension

import "github.com/jpl-au/docver/internal/rewrite"

// EventType identifies the kind of event.
type EventType string

const (
	EventDocumentCreate  EventType = "document:create"
	EventDocumentRename  EventType = "document:rename"
	EventDocumentArchive EventType = "document:archive"
	EventVersionAdd      EventType = "version:add"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventDocument() int64
}

// DocumentCreateEvent is fired after a document and its first version are
// committed.
type DocumentCreateEvent struct {
	ID       int64
	Name     string
	FilePath string
}

func (e DocumentCreateEvent) EventType() EventType { return EventDocumentCreate }
func (e DocumentCreateEvent) EventDocument() int64 { return e.ID }

// DocumentRenameEvent is fired after a rename and its path cascade commit.
type DocumentRenameEvent struct {
	ID     int64
	Report *rewrite.Report
}

func (e DocumentRenameEvent) EventType() EventType { return EventDocumentRename }
func (e DocumentRenameEvent) EventDocument() int64 { return e.ID }

// DocumentArchiveEvent is fired after a document is archived.
type DocumentArchiveEvent struct {
	ID int64
}

func (e DocumentArchiveEvent) EventType() EventType { return EventDocumentArchive }
func (e DocumentArchiveEvent) EventDocument() int64 { return e.ID }

// VersionAddEvent is fired after a version is appended.
type VersionAddEvent struct {
	DocumentID int64
	VersionID  int64
	FilePath   string
}

func (e VersionAddEvent) EventType() EventType { return EventVersionAdd }
func (e VersionAddEvent) EventDocument() int64 { return e.DocumentID }
