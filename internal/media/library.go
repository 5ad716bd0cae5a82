package media

import (
	"sort"
	"strings"
	"time"
)

// Sort orders for the media library.
const (
	SortDateDesc = "date_desc"
	SortDateAsc  = "date_asc"
	SortTitleAsc = "title_asc"
)

// FilterOptions selects and orders library items.
type FilterOptions struct {
	Query string
	Types []ItemType
	Tags  []string
	From  string
	To    string
	Sort  string
}

// Library holds the normalized media items and answers filtered views,
// overlaying cached oEmbed metadata on each read.
type Library struct {
	store    *Store
	featured *Item
	items    []Item
}

// NewLibrary normalizes the bundle's media section: YouTube ids and stock
// thumbnails are derived up front, and each item remembers its bundle
// position for stable ordering.
func NewLibrary(store *Store, data *Data) *Library {
	lib := &Library{store: store}
	if data == nil {
		return lib
	}

	lib.items = make([]Item, len(data.Items))
	for i, item := range data.Items {
		lib.items[i] = normalize(item, i)
	}
	if data.Featured != nil {
		f := normalize(*data.Featured, 0)
		lib.featured = &f
	}
	return lib
}

func normalize(item Item, order int) Item {
	item.Order = order
	if item.Type == TypeYouTube {
		if item.YouTubeID == "" {
			item.YouTubeID = YouTubeID(item.URL)
		}
		if item.Thumbnail == "" {
			item.Thumbnail = ThumbURL(item.YouTubeID)
		}
	}
	return item
}

// Featured returns the featured item with metadata applied, or nil.
func (l *Library) Featured() (*Item, error) {
	if l.featured == nil {
		return nil, nil
	}
	item, err := l.applyMeta(*l.featured)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Items returns every library item with metadata applied, in bundle order.
func (l *Library) Items() ([]Item, error) {
	out := make([]Item, 0, len(l.items))
	for _, item := range l.items {
		enriched, err := l.applyMeta(item)
		if err != nil {
			return nil, err
		}
		out = append(out, enriched)
	}
	return out, nil
}

// applyMeta fills empty fields from the metadata cache. Bundle-supplied
// values always win over cached ones.
func (l *Library) applyMeta(item Item) (Item, error) {
	switch item.Type {
	case TypeYouTube:
		if item.YouTubeID == "" {
			return item, nil
		}
		m, err := l.store.VideoMeta(item.YouTubeID)
		if err != nil || m == nil {
			return item, err
		}
		if item.Title == "" {
			item.Title = m.Title
		}
		if item.Author == "" {
			item.Author = m.Author
		}
		if item.Thumbnail == "" || item.Thumbnail == ThumbURL(item.YouTubeID) {
			if m.Thumbnail != "" {
				item.Thumbnail = m.Thumbnail
			}
		}
	case TypeBlog:
		m, err := l.store.BlogMeta(item.URL)
		if err != nil || m == nil {
			return item, err
		}
		if item.Title == "" {
			item.Title = m.Title
		}
		if item.Author == "" {
			item.Author = m.Author
		}
		if item.Publisher == "" {
			item.Publisher = m.Publisher
		}
		if item.Thumbnail == "" {
			item.Thumbnail = m.Thumbnail
		}
	}
	return item, nil
}

// Filter returns the items matching the options, sorted as requested.
func (l *Library) Filter(opts FilterOptions) ([]Item, error) {
	items, err := l.Items()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(opts.Query))
	types := map[ItemType]bool{}
	for _, t := range opts.Types {
		types[t] = true
	}
	tags := map[string]bool{}
	for _, t := range opts.Tags {
		if t != "" {
			tags[t] = true
		}
	}
	from, hasFrom := parseDate(opts.From)
	to, hasTo := parseDate(opts.To)

	var out []Item
	for _, item := range items {
		if len(types) > 0 && !types[item.Type] {
			continue
		}
		if q != "" {
			hay := strings.ToLower(strings.Join([]string{
				item.Title, item.Author, item.Publisher, strings.Join(item.Tags, " "),
			}, " "))
			if !strings.Contains(hay, q) {
				continue
			}
		}
		if len(tags) > 0 && !hasAnyTag(item.Tags, tags) {
			continue
		}
		if hasFrom || hasTo {
			d, ok := parseDate(item.Date)
			if !ok {
				continue
			}
			if hasFrom && d.Before(from) {
				continue
			}
			if hasTo && d.After(to) {
				continue
			}
		}
		out = append(out, item)
	}

	sortItems(out, opts.Sort)
	return out, nil
}

// AllTags returns every tag used across the library, sorted.
func (l *Library) AllTags() []string {
	seen := map[string]bool{}
	for _, item := range l.items {
		for _, t := range item.Tags {
			if t != "" {
				seen[t] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func hasAnyTag(itemTags []string, want map[string]bool) bool {
	for _, t := range itemTags {
		if want[t] {
			return true
		}
	}
	return false
}

// parseDate reads an ISO date (or full timestamp) as UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// sortItems orders items by the requested sort. Items with unparseable
// dates sink to the end of date sorts; ties keep bundle order.
func sortItems(items []Item, order string) {
	switch order {
	case SortTitleAsc:
		sort.SliceStable(items, func(i, j int) bool {
			a := strings.ToLower(items[i].Title)
			b := strings.ToLower(items[j].Title)
			if a != b {
				return a < b
			}
			return items[i].Order < items[j].Order
		})
	case SortDateAsc:
		sort.SliceStable(items, func(i, j int) bool { return dateLess(items[i], items[j], false) })
	default:
		sort.SliceStable(items, func(i, j int) bool { return dateLess(items[i], items[j], true) })
	}
}

func dateLess(a, b Item, desc bool) bool {
	da, okA := parseDate(a.Date)
	db, okB := parseDate(b.Date)
	if okA != okB {
		return okA
	}
	if !okA {
		return a.Order < b.Order
	}
	if !da.Equal(db) {
		if desc {
			return da.After(db)
		}
		return da.Before(db)
	}
	return a.Order < b.Order
}
