package notes

import (
	"errors"
	"time"
)

const (
	// DefaultTitle is assigned to newly created notes.
	DefaultTitle = "Untitled Note"

	// copyTitleSuffix is appended to the title of a duplicated note.
	copyTitleSuffix = " (Copy)"
)

// Error sentinels for content edit operations.
var (
	// ErrNoMatch is returned when old_string is not found in note content.
	ErrNoMatch = errors.New("string to replace not found in note")

	// ErrAmbiguousMatch is returned when old_string matches multiple locations.
	ErrAmbiguousMatch = errors.New("found multiple matches of the string to replace")
)

// Note is the atomic unit of user content. UpdatedAt is epoch milliseconds;
// the JSON field names are the persisted wire shape and must not change
// without picking a new storage key.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"`
}

// UpdatedTime returns UpdatedAt as a time.Time in UTC.
func (n Note) UpdatedTime() time.Time {
	return time.UnixMilli(n.UpdatedAt).UTC()
}

// Patch contains partial field updates for a note. Both fields are optional
// (pointer to distinguish empty string from omitted); omitted fields are
// left unchanged.
type Patch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
