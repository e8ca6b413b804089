package notes

import (
	"context"
	"encoding/json"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/errs"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/kv"
)

// StorageKey is the single key under which the whole collection is
// persisted. The v1 suffix is the informal schema version: changing the
// Note wire shape means picking a new key.
const StorageKey = "notes_app.v1.items"

// LoadNotes reads the persisted collection from the store. A missing key,
// a read failure, or a value that does not decode as a JSON array of notes
// all degrade to an empty collection; corruption is treated as "no data",
// never as a fatal error.
func LoadNotes(ctx context.Context, store kv.Store) []Note {
	raw, ok, err := store.Get(ctx, StorageKey)
	if err != nil || !ok {
		return []Note{}
	}

	var loaded []Note
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return []Note{}
	}
	if loaded == nil {
		// The value was JSON "null", not an array.
		return []Note{}
	}
	return loaded
}

// SaveNotes serializes the full collection and overwrites the stored value.
// Always a complete snapshot; there are no partial writes or merges.
func SaveNotes(ctx context.Context, store kv.Store, collection []Note) error {
	if collection == nil {
		collection = []Note{}
	}
	data, err := json.Marshal(collection)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to encode notes", err)
	}
	return store.Set(ctx, StorageKey, data)
}
