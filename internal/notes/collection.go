package notes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/errs"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/kv"
)

// Collection owns the ordered note list and the current selection for the
// lifetime of the running session. Every successful mutation writes one
// full snapshot to the persistent store; the store holds a serialized
// copy, never a live reference.
//
// The original design assumed a single thread of execution. HTTP serving
// is not single-threaded, so a mutex makes each operation atomic; the
// operation-at-a-time, last-write-wins semantics are unchanged.
//
// Operations given an id that is not in the collection are structural
// no-ops: they return (nil, nil) rather than an error, since a stale id
// has no user-visible effect. Save failures are surfaced: the in-memory
// change is applied and the error is returned for the caller to report.
type Collection struct {
	mu         sync.Mutex
	store      kv.Store
	notes      []Note
	selectedID string
	query      string

	// Seams for deterministic tests.
	now   func() time.Time
	newID func() string
}

// NewCollection builds a collection from whatever the store holds.
// Selection starts on the first loaded note, or empty.
func NewCollection(ctx context.Context, store kv.Store) *Collection {
	loaded := LoadNotes(ctx, store)
	c := &Collection{
		store: store,
		notes: loaded,
		now:   time.Now,
		newID: NewID,
	}
	if len(loaded) > 0 {
		c.selectedID = loaded[0].ID
	}
	return c
}

// Create prepends a new note with the default title and empty content,
// selects it, and persists the collection.
func (c *Collection) Create(ctx context.Context) (*Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note := Note{
		ID:        c.newID(),
		Title:     DefaultTitle,
		Content:   "",
		UpdatedAt: c.now().UnixMilli(),
	}
	c.notes = append([]Note{note}, c.notes...)
	c.selectedID = note.ID

	if err := c.save(ctx); err != nil {
		return &note, err
	}
	return &note, nil
}

// Update merges patch into the note with the given id and refreshes its
// UpdatedAt. Returns the updated note, or (nil, nil) if id is unknown.
func (c *Collection) Update(ctx context.Context, id string, patch Patch) (*Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	if patch.Title != nil {
		c.notes[idx].Title = *patch.Title
	}
	if patch.Content != nil {
		c.notes[idx].Content = *patch.Content
	}
	c.notes[idx].UpdatedAt = c.now().UnixMilli()

	updated := c.notes[idx]
	if err := c.save(ctx); err != nil {
		return &updated, err
	}
	return &updated, nil
}

// Delete removes the note with the given id. When the deleted note was
// selected, selection moves to the note now occupying the deleted note's
// index, clamped to the new last element; an emptied collection clears
// the selection. Unknown ids are a no-op.
func (c *Collection) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return nil
	}

	wasSelected := c.selectedID == id
	c.notes = append(c.notes[:idx], c.notes[idx+1:]...)

	if wasSelected {
		if len(c.notes) == 0 {
			c.selectedID = ""
		} else {
			next := idx
			if next > len(c.notes)-1 {
				next = len(c.notes) - 1
			}
			c.selectedID = c.notes[next].ID
		}
	}

	return c.save(ctx)
}

// Duplicate copies the note with the given id, inserting the copy
// immediately after the source (not at the head) with a fresh id, the
// title suffixed with " (Copy)", and a refreshed UpdatedAt. The copy
// becomes the selection. Returns (nil, nil) if id is unknown.
func (c *Collection) Duplicate(ctx context.Context, id string) (*Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	source := c.notes[idx]
	dup := Note{
		ID:        c.newID(),
		Title:     source.Title + copyTitleSuffix,
		Content:   source.Content,
		UpdatedAt: c.now().UnixMilli(),
	}

	c.notes = append(c.notes, Note{})
	copy(c.notes[idx+2:], c.notes[idx+1:])
	c.notes[idx+1] = dup
	c.selectedID = dup.ID

	if err := c.save(ctx); err != nil {
		return &dup, err
	}
	return &dup, nil
}

// ReplaceInContent performs exact string replacement in a note's content.
// When replaceAll is false the old string must match exactly one location:
// ErrNoMatch if absent, ErrAmbiguousMatch if found more than once. Returns
// the updated note and the number of replacements made.
func (c *Collection) ReplaceInContent(ctx context.Context, id, oldStr, newStr string, replaceAll bool) (*Note, int, error) {
	if oldStr == "" {
		return nil, 0, errs.New(errs.InvalidArgument, "old string is required")
	}

	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return nil, 0, errs.New(errs.NotFound, fmt.Sprintf("note not found: %s", id))
	}
	content := c.notes[idx].Content
	c.mu.Unlock()

	count := strings.Count(content, oldStr)
	if count == 0 {
		return nil, 0, ErrNoMatch
	}
	if count > 1 && !replaceAll {
		return nil, 0, fmt.Errorf("found %d matches of the string to replace, but replace_all is false: %w", count, ErrAmbiguousMatch)
	}

	replacements := count
	var newContent string
	if replaceAll {
		newContent = strings.ReplaceAll(content, oldStr, newStr)
	} else {
		newContent = strings.Replace(content, oldStr, newStr, 1)
		replacements = 1
	}

	updated, err := c.Update(ctx, id, Patch{Content: &newContent})
	if err != nil {
		return updated, replacements, err
	}
	if updated == nil {
		// The note vanished between the read and the update.
		return nil, 0, errs.New(errs.NotFound, fmt.Sprintf("note not found: %s", id))
	}
	return updated, replacements, nil
}

// Select moves the selection to the note with the given id. Selection
// never touches UpdatedAt and never persists. Unknown ids are ignored so
// a stale link cannot break the current selection invariant.
func (c *Collection) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(id) < 0 {
		return false
	}
	c.selectedID = id
	return true
}

// SetQuery sets the active search query.
func (c *Collection) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// Query returns the active search query.
func (c *Collection) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Notes returns a snapshot of the full collection in order.
func (c *Collection) Notes() []Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Filtered returns the collection filtered by the active query,
// preserving order.
func (c *Collection) Filtered() []Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter(c.snapshot(), c.query)
}

// Selected returns the selected note, looked up in the full collection so
// the selection survives a search query it does not match. Nil when
// nothing is selected.
func (c *Collection) Selected() *Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(c.selectedID)
	if idx < 0 {
		return nil
	}
	selected := c.notes[idx]
	return &selected
}

// SelectedID returns the id of the selected note, or "".
func (c *Collection) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// Get returns the note with the given id from the full collection, or nil.
func (c *Collection) Get(id string) *Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return nil
	}
	note := c.notes[idx]
	return &note
}

// Len returns the number of notes in the collection.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.notes)
}

// indexOf returns the position of id in the collection, or -1.
// Callers must hold c.mu.
func (c *Collection) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, n := range c.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies the note slice. Callers must hold c.mu.
func (c *Collection) snapshot() []Note {
	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// save writes the full collection snapshot. Callers must hold c.mu.
func (c *Collection) save(ctx context.Context) error {
	return SaveNotes(ctx, c.store, c.notes)
}
