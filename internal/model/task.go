package model

import "time"

// TaskStatus is the remote service's task state enumeration.
// The numeric values are the wire values and must not be renumbered.
type TaskStatus int

const (
	StatusUnCompleted TaskStatus = 0
	StatusAbandoned   TaskStatus = -1
	StatusCompleted   TaskStatus = 2
)

// Valid reports whether s is one of the three defined states.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusUnCompleted, StatusAbandoned, StatusCompleted:
		return true
	}
	return false
}

func (s TaskStatus) String() string {
	switch s {
	case StatusUnCompleted:
		return "UnCompleted"
	case StatusAbandoned:
		return "Abandoned"
	case StatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

// Task is a task item owned by the remote service. The pipeline only reads
// and filters; an in-memory copy is discarded after rendering.
type Task struct {
	ID          string       // stable identity, opaque
	ProjectID   string       // owning project/list
	Title       string
	Content     string       // markdown body
	Status      TaskStatus
	Tags        []string
	CreatedTime time.Time
	DueDate     *time.Time   // optional
	Attachments []Attachment // source order
	Items       []SubItem    // checklist sub-items, source order
	Deleted     bool
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the task carries at least one of the given tags.
func (t Task) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		if t.HasTag(want) {
			return true
		}
	}
	return false
}

// Attachment describes a binary attachment owned by the remote service.
// A local materialized copy is a derived artifact keyed by ID.
type Attachment struct {
	ID          string
	Path        string // remote-relative path, encodes the file extension
	FileName    string // display name
	Size        int64
	CreatedTime time.Time
}

// SubItem is a checklist entry inside a task.
type SubItem struct {
	Title  string
	Status TaskStatus
}

// ResolvedAttachment is an attachment materialized into the local vault.
type ResolvedAttachment struct {
	ID   string // attachment id, also the local artifact's base name
	Name string // display file name shown for file embeds
	Path string // vault-relative path of the local artifact
}
