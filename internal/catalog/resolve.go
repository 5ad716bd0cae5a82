package catalog

import (
	"sort"
	"strings"
)

// FallbackTitle is displayed when neither override nor base supplies one.
const FallbackTitle = "Untitled feature"

// Resolve computes the effective projection of an entry from its base
// fields, its override record (nil for none), and its tag-override layer.
// It is a pure function of its inputs: resolving twice from the same stored
// state yields identical output. defaultPin is the static pin for known
// shipped entries (nil for none); it is ignored for custom entries, whose
// own pin field plays the same role.
//
// hasTagOverride distinguishes "no tag record" from an empty replacement
// list: an empty list still suppresses all base tags.
func Resolve(e Entry, o *Override, tagOverride []string, hasTagOverride bool, defaultPin *Pin) Resolved {
	if o == nil {
		o = &Override{}
	}

	r := Resolved{
		ID:       e.ID,
		IsCustom: e.IsCustom,
		Text:     e.Text,
		Source:   e.Source,
	}
	if len(e.Pages) > 0 {
		r.Preview = e.Pages[0].TextPreview
	}

	// Title: override (trimmed, non-empty) > base > fixed fallback.
	r.Title = strings.TrimSpace(o.Title)
	if r.Title == "" {
		r.Title = e.Title
	}
	if r.Title == "" {
		r.Title = FallbackTitle
	}

	// Tags: a tag-override record replaces base tags entirely, even when
	// empty. Always deduplicated and sorted for deterministic display.
	if hasTagOverride {
		r.Tags = normalizeTags(tagOverride)
	} else {
		r.Tags = normalizeTags(e.Tags)
	}

	// Story: override > base > empty (callers generate a narrative).
	r.Story = o.Story
	if r.Story == "" {
		r.Story = e.Story
	}

	// Primary image: override data URL > first page image > thumbnail.
	r.Image = o.ImageDataURL
	if r.Image == "" && len(e.Pages) > 0 {
		r.Image = e.Pages[0].Image
	}
	if r.Image == "" {
		r.Image = e.Thumb
	}
	if r.Image == "" {
		r.Image = e.ImageDataURL
	}

	r.Gallery = mergeGallery(e.Gallery, o.Gallery)
	r.Pin = resolvePin(e, o, defaultPin, r.Title)

	// Hidden/deleted are sticky: true in either layer wins until the
	// override is explicitly cleared.
	r.Hidden = e.Hidden || o.Hidden
	r.Deleted = e.Deleted || o.Deleted

	return r
}

// normalizeTags drops empties, deduplicates, and sorts by ordinal compare.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// mergeGallery appends override images after the base gallery and
// deduplicates by URL, keeping the first occurrence.
func mergeGallery(base, override []GalleryImage) []GalleryImage {
	seen := map[string]bool{}
	out := make([]GalleryImage, 0, len(base)+len(override))
	for _, g := range append(append([]GalleryImage{}, base...), override...) {
		if g.URL == "" || seen[g.URL] {
			continue
		}
		seen[g.URL] = true
		out = append(out, g)
	}
	return out
}

// resolvePin picks coordinates from the first source that defines a pair:
// override pin, then the entry's own pin (custom) or the static default
// (shipped). Sources are never mixed field by field, except the label,
// which falls back independently: override label > source label > title.
func resolvePin(e Entry, o *Override, defaultPin *Pin, title string) *Pin {
	base := defaultPin
	if e.IsCustom {
		base = e.Pin
	}

	var coords *Pin
	switch {
	case o.Pin != nil:
		coords = o.Pin
	case base != nil:
		coords = base
	default:
		return nil
	}

	label := ""
	if o.Pin != nil {
		label = o.Pin.Label
	}
	if label == "" && base != nil {
		label = base.Label
	}
	if label == "" {
		label = title
	}

	return &Pin{EntryID: e.ID, Label: label, XPct: coords.XPct, YPct: coords.YPct}
}
