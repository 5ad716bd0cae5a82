package catalog

// Entry is a place record in the catalog. Shipped entries come from the
// data bundle and are never mutated; custom entries live entirely in the
// store and are edited in place.
type Entry struct {
	ID           string         `json:"id"`
	IsCustom     bool           `json:"-"`
	Title        string         `json:"title"`
	Tags         []string       `json:"tags,omitempty"`
	Story        string         `json:"story,omitempty"`
	Text         string         `json:"text,omitempty"`
	Source       string         `json:"source,omitempty"`
	ImageDataURL string         `json:"imageDataUrl,omitempty"`
	Thumb        string         `json:"thumb,omitempty"`
	Pages        []Page         `json:"pages,omitempty"`
	Pin          *Pin           `json:"pin,omitempty"`
	Gallery      []GalleryImage `json:"gallery,omitempty"`
	Hidden       bool           `json:"hidden,omitempty"`
	Deleted      bool           `json:"deleted,omitempty"`
}

// Page is one extracted page of a shipped entry's source document.
type Page struct {
	Image       string `json:"image,omitempty"`
	TextPreview string `json:"textPreview,omitempty"`
}

// GalleryImage is one photo attached to an entry.
type GalleryImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Pin places an entry on the map at percentage coordinates.
type Pin struct {
	EntryID string  `json:"entryId,omitempty"`
	Label   string  `json:"label"`
	XPct    float64 `json:"xPct"`
	YPct    float64 `json:"yPct"`
}

// Override is a sparse patch layered over a shipped entry. A zero field
// means "inherit from the base entry". Gallery entries are appended after
// the base gallery, never replacing it.
type Override struct {
	Title        string         `json:"title,omitempty"`
	Story        string         `json:"story,omitempty"`
	ImageDataURL string         `json:"imageDataUrl,omitempty"`
	Gallery      []GalleryImage `json:"gallery,omitempty"`
	Pin          *Pin           `json:"pin,omitempty"`
	Hidden       bool           `json:"hidden,omitempty"`
	Deleted      bool           `json:"deleted,omitempty"`
}

// IsZero reports whether the override patches nothing.
func (o Override) IsZero() bool {
	return o.Title == "" && o.Story == "" && o.ImageDataURL == "" &&
		len(o.Gallery) == 0 && o.Pin == nil && !o.Hidden && !o.Deleted
}

// Resolved is the effective, display-ready projection of an entry after
// applying the override and tag-override layers. Every consumer (grid,
// detail view, map, tour, admin form) reads this shape.
type Resolved struct {
	ID       string         `json:"id"`
	IsCustom bool           `json:"custom"`
	Title    string         `json:"title"`
	Tags     []string       `json:"tags"`
	Story    string         `json:"story,omitempty"`
	Image    string         `json:"image,omitempty"`
	Gallery  []GalleryImage `json:"gallery,omitempty"`
	Pin      *Pin           `json:"pin,omitempty"`
	Hidden   bool           `json:"hidden,omitempty"`
	Deleted  bool           `json:"deleted,omitempty"`
	Text     string         `json:"text,omitempty"`
	Source   string         `json:"source,omitempty"`
	Preview  string         `json:"preview,omitempty"`
}
