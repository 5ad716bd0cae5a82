package catalog

import (
	"encoding/json"
	"sort"

	"github.com/hookewild/curator/internal/db"
)

// Store namespaces in the shared kv table. Each collection is independently
// tolerant of corrupt values: a value that fails to decode is treated as
// absent, never surfaced as an error.
const (
	nsOverrides = "overrides"
	nsTags      = "tag_overrides"
	nsCustom    = "custom"
	nsVisited   = "visited"

	customKey  = "entries"
	visitedKey = "ids"
)

// Store persists curator state for the catalog: per-entry field overrides,
// per-entry tag overrides, the custom entry list, and the visited set.
type Store struct {
	db *db.DB
}

// NewStore creates a catalog store over the shared database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// decode unmarshals a stored value, collapsing decode failure to absence.
func decode(raw []byte, found bool, dest any) bool {
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

// Override returns the override record for an entry, or nil if none is
// stored (or the stored value is corrupt).
func (s *Store) Override(id string) (*Override, error) {
	raw, found, err := s.db.GetValue(nsOverrides, id)
	if err != nil {
		return nil, err
	}
	var o Override
	if !decode(raw, found, &o) {
		return nil, nil
	}
	return &o, nil
}

// SaveOverride writes the override record for an entry.
func (s *Store) SaveOverride(id string, o Override) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return s.db.SetValue(nsOverrides, id, raw)
}

// ClearOverride removes the override record for an entry.
func (s *Store) ClearOverride(id string) error {
	return s.db.DeleteValue(nsOverrides, id)
}

// TagOverride returns the tag-override list for an entry. The second return
// distinguishes "no record" from an empty replacement list: an empty stored
// list still suppresses all base tags.
func (s *Store) TagOverride(id string) ([]string, bool, error) {
	raw, found, err := s.db.GetValue(nsTags, id)
	if err != nil {
		return nil, false, err
	}
	var tags []string
	if !decode(raw, found, &tags) {
		return nil, false, nil
	}
	clean := tags[:0]
	for _, t := range tags {
		if t != "" {
			clean = append(clean, t)
		}
	}
	return clean, true, nil
}

// SaveTagOverride writes a full-replacement tag list for an entry.
func (s *Store) SaveTagOverride(id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	return s.db.SetValue(nsTags, id, raw)
}

// ClearTagOverride removes the tag-override record, reverting to base tags.
func (s *Store) ClearTagOverride(id string) error {
	return s.db.DeleteValue(nsTags, id)
}

// CustomEntries returns the stored custom entry list. Records without an id
// are dropped; a corrupt list reads as empty.
func (s *Store) CustomEntries() ([]Entry, error) {
	raw, found, err := s.db.GetValue(nsCustom, customKey)
	if err != nil {
		return nil, err
	}
	var list []Entry
	if !decode(raw, found, &list) {
		return nil, nil
	}
	out := make([]Entry, 0, len(list))
	for _, e := range list {
		if e.ID == "" {
			continue
		}
		e.IsCustom = true
		out = append(out, e)
	}
	return out, nil
}

// SaveCustomEntries replaces the stored custom entry list.
func (s *Store) SaveCustomEntries(list []Entry) error {
	if list == nil {
		list = []Entry{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.db.SetValue(nsCustom, customKey, raw)
}

// Visited returns the set of entry ids that have been opened.
func (s *Store) Visited() (map[string]bool, error) {
	raw, found, err := s.db.GetValue(nsVisited, visitedKey)
	if err != nil {
		return nil, err
	}
	var ids []string
	set := map[string]bool{}
	if !decode(raw, found, &ids) {
		return set, nil
	}
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set, nil
}

// MarkVisited inserts an id into the visited set and persists it. It
// reports whether the id was newly added.
func (s *Store) MarkVisited(id string) (bool, error) {
	set, err := s.Visited()
	if err != nil {
		return false, err
	}
	if set[id] {
		return false, nil
	}
	set[id] = true
	ids := make([]string, 0, len(set))
	for v := range set {
		ids = append(ids, v)
	}
	sort.Strings(ids)
	raw, err := json.Marshal(ids)
	if err != nil {
		return false, err
	}
	if err := s.db.SetValue(nsVisited, visitedKey, raw); err != nil {
		return false, err
	}
	return true, nil
}
