package notes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/kv"
)

// newTestCollection returns a collection over a fresh in-memory store with
// deterministic ids (n1, n2, ...) and a ticking millisecond clock.
func newTestCollection(t testing.TB) (*Collection, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	c := NewCollection(context.Background(), store)

	seq := 0
	c.newID = func() string {
		seq++
		return fmt.Sprintf("n%d", seq)
	}
	clock := time.UnixMilli(1_700_000_000_000)
	c.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return c, store
}

func titles(collection []Note) []string {
	out := make([]string, len(collection))
	for i, n := range collection {
		out[i] = n.Title
	}
	return out
}

func ids(collection []Note) []string {
	out := make([]string, len(collection))
	for i, n := range collection {
		out[i] = n.ID
	}
	return out
}

func TestCreate_PrependsAndSelects(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	first, err := c.Create(ctx)
	require.NoError(t, err)
	second, err := c.Create(ctx)
	require.NoError(t, err)

	require.Equal(t, []string{second.ID, first.ID}, ids(c.Notes()))
	require.Equal(t, second.ID, c.SelectedID())
	require.Equal(t, DefaultTitle, second.Title)
	require.Empty(t, second.Content)
	require.NotZero(t, second.UpdatedAt)
}

func TestCreate_PersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCollection(t)

	note, err := c.Create(ctx)
	require.NoError(t, err)

	reloaded := LoadNotes(ctx, store)
	require.Len(t, reloaded, 1)
	require.Equal(t, note.ID, reloaded[0].ID)
}

func TestUpdate_MergesPatchFields(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	note, err := c.Create(ctx)
	require.NoError(t, err)
	content := "some body"
	_, err = c.Update(ctx, note.ID, Patch{Content: &content})
	require.NoError(t, err)
	before := c.Get(note.ID).UpdatedAt

	title := "X"
	updated, err := c.Update(ctx, note.ID, Patch{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated)

	require.Equal(t, "X", updated.Title)
	require.Equal(t, "some body", updated.Content, "content must be untouched by a title-only patch")
	require.Greater(t, updated.UpdatedAt, before, "updatedAt must refresh on every mutation")
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCollection(t)
	_, err := c.Create(ctx)
	require.NoError(t, err)
	persisted := LoadNotes(ctx, store)

	title := "ghost"
	updated, err := c.Update(ctx, "missing", Patch{Title: &title})
	require.NoError(t, err)
	require.Nil(t, updated)
	require.Equal(t, persisted, LoadNotes(ctx, store), "a no-op must not write a new snapshot")
}

func TestDelete_SelectedLastElementSelectsNewLast(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	// Build [A, B, C] by creating C, B, A (create prepends).
	for _, title := range []string{"C", "B", "A"} {
		note, err := c.Create(ctx)
		require.NoError(t, err)
		_, err = c.Update(ctx, note.ID, Patch{Title: &title})
		require.NoError(t, err)
	}
	all := c.Notes()
	require.Equal(t, []string{"A", "B", "C"}, titles(all))

	require.True(t, c.Select(all[2].ID))
	require.NoError(t, c.Delete(ctx, all[2].ID))

	require.Equal(t, []string{"A", "B"}, titles(c.Notes()))
	require.Equal(t, all[1].ID, c.SelectedID(), "selection moves to the new last element")
}

func TestDelete_SelectedMiddleElementKeepsIndex(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	for _, title := range []string{"C", "B", "A"} {
		note, err := c.Create(ctx)
		require.NoError(t, err)
		_, err = c.Update(ctx, note.ID, Patch{Title: &title})
		require.NoError(t, err)
	}
	all := c.Notes()

	require.True(t, c.Select(all[1].ID))
	require.NoError(t, c.Delete(ctx, all[1].ID))

	// The note that slid into index 1 is selected.
	require.Equal(t, all[2].ID, c.SelectedID())
}

func TestDelete_LastRemainingNoteClearsSelection(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	note, err := c.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, note.ID))

	require.Empty(t, c.Notes())
	require.Empty(t, c.SelectedID())
	require.Nil(t, c.Selected())
}

func TestDelete_UnselectedNoteKeepsSelection(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	older, err := c.Create(ctx)
	require.NoError(t, err)
	newer, err := c.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, older.ID))
	require.Equal(t, newer.ID, c.SelectedID())
}

func TestDuplicate_InsertsImmediatelyAfterSource(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	// Build [A, B].
	for _, title := range []string{"B", "A"} {
		note, err := c.Create(ctx)
		require.NoError(t, err)
		_, err = c.Update(ctx, note.ID, Patch{Title: &title})
		require.NoError(t, err)
	}
	all := c.Notes()
	require.Equal(t, []string{"A", "B"}, titles(all))

	dup, err := c.Duplicate(ctx, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, dup)

	require.Equal(t, []string{"A", "A (Copy)", "B"}, titles(c.Notes()))
	require.Equal(t, dup.ID, c.SelectedID())
	require.NotEqual(t, all[0].ID, dup.ID)
	require.Equal(t, all[0].Content, dup.Content)
}

func TestDuplicate_UnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)
	_, err := c.Create(ctx)
	require.NoError(t, err)

	dup, err := c.Duplicate(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, dup)
	require.Equal(t, 1, c.Len())
}

func TestSelect_DoesNotTouchUpdatedAtOrStore(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCollection(t)

	a, err := c.Create(ctx)
	require.NoError(t, err)
	newest, err := c.Create(ctx)
	require.NoError(t, err)
	require.Equal(t, newest.ID, c.SelectedID())
	persisted := LoadNotes(ctx, store)

	require.True(t, c.Select(a.ID))
	require.Equal(t, a.ID, c.SelectedID())
	require.Equal(t, a.UpdatedAt, c.Get(a.ID).UpdatedAt)
	require.Equal(t, persisted, LoadNotes(ctx, store), "selection must not persist")

	require.False(t, c.Select("missing"))
	require.Equal(t, a.ID, c.SelectedID(), "unknown id leaves selection untouched")
}

func TestSelected_LookupUsesFullCollectionNotFilteredView(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	note, err := c.Create(ctx)
	require.NoError(t, err)
	title, content := "Shopping", "milk"
	_, err = c.Update(ctx, note.ID, Patch{Title: &title, Content: &content})
	require.NoError(t, err)

	c.SetQuery("does-not-match-anything")
	require.Empty(t, c.Filtered())

	selected := c.Selected()
	require.NotNil(t, selected, "selection resolves against the full collection")
	require.Equal(t, note.ID, selected.ID)
}

func TestNewCollection_InitializesFromStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	seed := []Note{
		{ID: "a", Title: "first", Content: "", UpdatedAt: 1},
		{ID: "b", Title: "second", Content: "", UpdatedAt: 2},
	}
	require.NoError(t, SaveNotes(ctx, store, seed))

	c := NewCollection(ctx, store)
	require.Equal(t, seed, c.Notes())
	require.Equal(t, "a", c.SelectedID(), "selection starts on the first loaded note")

	empty := NewCollection(ctx, kv.NewMemory())
	require.Empty(t, empty.SelectedID())
}

func TestReplaceInContent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	note, err := c.Create(ctx)
	require.NoError(t, err)
	content := "alpha beta alpha"
	_, err = c.Update(ctx, note.ID, Patch{Content: &content})
	require.NoError(t, err)

	_, _, err = c.ReplaceInContent(ctx, note.ID, "gamma", "x", false)
	require.ErrorIs(t, err, ErrNoMatch)

	_, _, err = c.ReplaceInContent(ctx, note.ID, "alpha", "x", false)
	require.ErrorIs(t, err, ErrAmbiguousMatch)

	updated, count, err := c.ReplaceInContent(ctx, note.ID, "alpha", "omega", true)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Equal(t, "omega beta omega", updated.Content)

	updated, count, err = c.ReplaceInContent(ctx, note.ID, "beta", "delta", false)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, "omega delta omega", updated.Content)
}

// failingStore wraps a Store and fails every Set.
type failingStore struct {
	kv.Store
}

func (f *failingStore) Set(context.Context, string, []byte) error {
	return fmt.Errorf("disk full")
}

func TestMutations_SurfaceSaveFailures(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)
	c.store = &failingStore{Store: c.store}

	note, err := c.Create(ctx)
	require.Error(t, err)
	require.NotNil(t, note, "the in-memory change still applies")
	require.Equal(t, 1, c.Len())
}

// =============================================================================
// Property-based tests
// =============================================================================

func testRandomOperationSequence_Invariants(t *rapid.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := NewCollection(ctx, store)

	ops := rapid.IntRange(1, 40).Draw(t, "ops")
	for i := 0; i < ops; i++ {
		all := c.Notes()
		pickID := func() string {
			if len(all) == 0 {
				return "missing"
			}
			return all[rapid.IntRange(0, len(all)-1).Draw(t, "pick")].ID
		}

		switch rapid.IntRange(0, 4).Draw(t, "op") {
		case 0:
			if _, err := c.Create(ctx); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		case 1:
			if err := c.Delete(ctx, pickID()); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
		case 2:
			title := rapid.StringMatching(`[A-Za-z0-9 ]{0,20}`).Draw(t, "title")
			if _, err := c.Update(ctx, pickID(), Patch{Title: &title}); err != nil {
				t.Fatalf("Update failed: %v", err)
			}
		case 3:
			if _, err := c.Duplicate(ctx, pickID()); err != nil {
				t.Fatalf("Duplicate failed: %v", err)
			}
		case 4:
			c.Select(pickID())
		}

		// Invariant: every id is unique.
		seen := make(map[string]bool)
		for _, n := range c.Notes() {
			if seen[n.ID] {
				t.Fatalf("duplicate id in collection: %s", n.ID)
			}
			seen[n.ID] = true
		}

		// Invariant: a non-empty selection references a present id.
		if sel := c.SelectedID(); sel != "" && !seen[sel] {
			t.Fatalf("selection %q references a missing note", sel)
		}
		// Starting from an empty store, any note implies a prior create,
		// and creates and deletes both keep the selection pointing at a
		// live note. So a non-empty collection always has a selection.
		if len(seen) > 0 && c.SelectedID() == "" {
			t.Fatal("non-empty collection lost its selection")
		}

		// Invariant: the persisted snapshot mirrors the live collection.
		if got := LoadNotes(ctx, store); len(got) != c.Len() {
			t.Fatalf("persisted snapshot out of sync: store=%d live=%d", len(got), c.Len())
		}
	}
}

func TestRandomOperationSequence_Invariants(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testRandomOperationSequence_Invariants)
}
