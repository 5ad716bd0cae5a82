package catalog

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
)

// Catalog holds the live entry list: the shipped base entries plus the
// currently stored custom entries. Refresh re-reads the store wholesale;
// there is no incremental diffing, so a refreshed catalog can never show a
// partially applied mutation.
type Catalog struct {
	mu      sync.RWMutex
	store   *Store
	base    []Entry
	entries []Entry
}

// New builds a catalog over the shipped base entries and refreshes it from
// the store.
func New(store *Store, base []Entry) (*Catalog, error) {
	copied := make([]Entry, len(base))
	copy(copied, base)
	for i := range copied {
		copied[i].IsCustom = false
	}
	c := &Catalog{store: store, base: copied}
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

// Store exposes the underlying catalog store for collaborating subsystems.
func (c *Catalog) Store() *Store { return c.store }

// Refresh re-derives the entry list from base entries and stored custom
// entries. Callers invoke it after every store mutation.
func (c *Catalog) Refresh() error {
	custom, err := c.store.CustomEntries()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make([]Entry, 0, len(c.base)+len(custom))
	c.entries = append(c.entries, c.base...)
	c.entries = append(c.entries, custom...)
	return nil
}

// Entries returns a snapshot of the current entry list.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Find returns the entry with the given id.
func (c *Catalog) Find(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// UsedIDs returns the set of all entry ids, for collision-free id synthesis.
func (c *Catalog) UsedIDs() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	used := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		used[e.ID] = true
	}
	return used
}

// Resolve applies the override and tag-override layers to an entry.
func (c *Catalog) Resolve(e Entry) (Resolved, error) {
	o, err := c.store.Override(e.ID)
	if err != nil {
		return Resolved{}, err
	}
	tags, hasTags, err := c.store.TagOverride(e.ID)
	if err != nil {
		return Resolved{}, err
	}
	return Resolve(e, o, tags, hasTags, DefaultPin(e.ID)), nil
}

// ResolveID resolves the entry with the given id.
func (c *Catalog) ResolveID(id string) (Resolved, bool, error) {
	e, ok := c.Find(id)
	if !ok {
		return Resolved{}, false, nil
	}
	r, err := c.Resolve(e)
	if err != nil {
		return Resolved{}, false, err
	}
	return r, true, nil
}

// Filter returns the entries matching a free-text query and tag set, in
// catalog order. Hidden and deleted entries never match. An entry matches
// when the query (case-insensitive) appears in its effective title, base
// text, effective tags, or source label, and its effective tags intersect
// the requested set.
func (c *Catalog) Filter(query string, tags []string) ([]Resolved, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	want := map[string]bool{}
	for _, t := range tags {
		if t != "" {
			want[t] = true
		}
	}

	var out []Resolved
	for _, e := range c.Entries() {
		r, err := c.Resolve(e)
		if err != nil {
			return nil, err
		}
		if r.Deleted || r.Hidden {
			continue
		}
		if !matches(r, q, want) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func matches(r Resolved, q string, want map[string]bool) bool {
	if q != "" {
		hay := strings.ToLower(strings.Join([]string{r.Title, r.Text, strings.Join(r.Tags, " "), r.Source}, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if len(want) > 0 {
		found := false
		for _, t := range r.Tags {
			if want[t] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AdminList returns non-deleted entries (hidden included) whose effective
// title contains the query, sorted by effective title. This feeds the
// admin entry picker.
func (c *Catalog) AdminList(query string) ([]Resolved, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Resolved
	for _, e := range c.Entries() {
		r, err := c.Resolve(e)
		if err != nil {
			return nil, err
		}
		if r.Deleted {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Title), q) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// AllTags returns every effective tag across visible entries, sorted.
func (c *Catalog) AllTags() ([]string, error) {
	seen := map[string]bool{}
	for _, e := range c.Entries() {
		r, err := c.Resolve(e)
		if err != nil {
			return nil, err
		}
		if r.Deleted || r.Hidden {
			continue
		}
		for _, t := range r.Tags {
			seen[t] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// Random picks one entry from the current filter results.
func (c *Catalog) Random(query string, tags []string) (Resolved, bool, error) {
	list, err := c.Filter(query, tags)
	if err != nil {
		return Resolved{}, false, err
	}
	if len(list) == 0 {
		return Resolved{}, false, nil
	}
	return list[rand.Intn(len(list))], true, nil
}
