package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hookewild/curator/internal/catalog"
)

// DeletePhrase must be typed verbatim to confirm any entry deletion.
const DeletePhrase = "DELETE"

var (
	// ErrNotFound is returned when a mutation targets an unknown entry.
	ErrNotFound = errors.New("entry not found")
	// ErrNotConfirmed is returned when a delete lacks both confirmations.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// EntryInput carries the admin form fields for create and save. Pin
// coordinates are pointers so "no pin" and "pin at zero" stay distinct;
// TagsSet distinguishes "leave tags alone" from "replace with this list".
type EntryInput struct {
	Title        string   `json:"title"`
	Story        string   `json:"story"`
	ImageDataURL string   `json:"imageDataUrl"`
	Tags         []string `json:"tags"`
	TagsSet      bool     `json:"tagsSet"`
	PinLabel     string   `json:"pinLabel"`
	PinX         *float64 `json:"pinX"`
	PinY         *float64 `json:"pinY"`
	GalleryAdd   []string `json:"galleryAdd"`
}

// Service applies admin mutations to the catalog. Shipped entries are
// edited through the override layer; custom entries are edited in place.
type Service struct {
	cat *catalog.Catalog
}

// NewService creates the admin mutation service.
func NewService(cat *catalog.Catalog) *Service {
	return &Service{cat: cat}
}

func (s *Service) store() *catalog.Store { return s.cat.Store() }

// Create validates the form and appends a new custom entry. Title, image,
// and a full coordinate pair are all required.
func (s *Service) Create(in EntryInput) (catalog.Resolved, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return catalog.Resolved{}, fmt.Errorf("title is required")
	}
	if in.ImageDataURL == "" {
		return catalog.Resolved{}, fmt.Errorf("image is required")
	}
	if in.PinX == nil || in.PinY == nil {
		return catalog.Resolved{}, fmt.Errorf("map position is required")
	}

	entry := catalog.Entry{
		ID:           catalog.UniqueID(title, s.cat.UsedIDs()),
		Title:        title,
		Story:        in.Story,
		ImageDataURL: in.ImageDataURL,
		Tags:         in.Tags,
		Pin: &catalog.Pin{
			Label: strings.TrimSpace(in.PinLabel),
			XPct:  *in.PinX,
			YPct:  *in.PinY,
		},
		Gallery: newGalleryImages(in.GalleryAdd),
	}

	list, err := s.store().CustomEntries()
	if err != nil {
		return catalog.Resolved{}, err
	}
	if err := s.store().SaveCustomEntries(append(list, entry)); err != nil {
		return catalog.Resolved{}, err
	}
	if err := s.cat.Refresh(); err != nil {
		return catalog.Resolved{}, err
	}

	r, _, err := s.cat.ResolveID(entry.ID)
	return r, err
}

// Save applies the edit form to an entry. Shipped entries get an override
// patch; custom entries are rewritten in place, and any stray override or
// tag records for them are cleared so the entry itself stays the single
// source of truth.
func (s *Service) Save(id string, in EntryInput) (catalog.Resolved, error) {
	e, ok := s.cat.Find(id)
	if !ok {
		return catalog.Resolved{}, ErrNotFound
	}

	var err error
	if e.IsCustom {
		err = s.saveCustom(e, in)
	} else {
		err = s.saveShipped(e, in)
	}
	if err != nil {
		return catalog.Resolved{}, err
	}
	if err := s.cat.Refresh(); err != nil {
		return catalog.Resolved{}, err
	}

	r, _, err := s.cat.ResolveID(id)
	return r, err
}

func (s *Service) saveShipped(e catalog.Entry, in EntryInput) error {
	existing, err := s.store().Override(e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		existing = &catalog.Override{}
	}

	o := catalog.Override{
		Title:        strings.TrimSpace(in.Title),
		Story:        in.Story,
		ImageDataURL: existing.ImageDataURL,
		Gallery:      append(existing.Gallery, newGalleryImages(in.GalleryAdd)...),
		Hidden:       existing.Hidden,
		Deleted:      existing.Deleted,
	}
	if in.ImageDataURL != "" {
		o.ImageDataURL = in.ImageDataURL
	}
	// An incomplete coordinate pair drops the pin override entirely.
	if in.PinX != nil && in.PinY != nil {
		o.Pin = &catalog.Pin{
			Label: strings.TrimSpace(in.PinLabel),
			XPct:  *in.PinX,
			YPct:  *in.PinY,
		}
	}

	if o.IsZero() {
		if err := s.store().ClearOverride(e.ID); err != nil {
			return err
		}
	} else if err := s.store().SaveOverride(e.ID, o); err != nil {
		return err
	}

	if in.TagsSet {
		if len(in.Tags) > 0 {
			return s.store().SaveTagOverride(e.ID, in.Tags)
		}
		return s.store().ClearTagOverride(e.ID)
	}
	return nil
}

func (s *Service) saveCustom(e catalog.Entry, in EntryInput) error {
	list, err := s.store().CustomEntries()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID != e.ID {
			continue
		}
		if t := strings.TrimSpace(in.Title); t != "" {
			list[i].Title = t
		}
		list[i].Story = in.Story
		if in.ImageDataURL != "" {
			list[i].ImageDataURL = in.ImageDataURL
		}
		if in.TagsSet {
			list[i].Tags = in.Tags
		}
		if in.PinX != nil && in.PinY != nil {
			list[i].Pin = &catalog.Pin{
				Label: strings.TrimSpace(in.PinLabel),
				XPct:  *in.PinX,
				YPct:  *in.PinY,
			}
		}
		list[i].Gallery = append(list[i].Gallery, newGalleryImages(in.GalleryAdd)...)

		if err := s.store().SaveCustomEntries(list); err != nil {
			return err
		}
		// Custom entries never carry layered records.
		if err := s.store().ClearOverride(e.ID); err != nil {
			return err
		}
		return s.store().ClearTagOverride(e.ID)
	}
	return ErrNotFound
}

// Reset clears the override and tag-override records for an entry,
// reverting a shipped entry to its bundle state. Edits saved into a custom
// entry itself are untouched; only the layered records go.
func (s *Service) Reset(id string) (catalog.Resolved, error) {
	if _, ok := s.cat.Find(id); !ok {
		return catalog.Resolved{}, ErrNotFound
	}
	if err := s.store().ClearOverride(id); err != nil {
		return catalog.Resolved{}, err
	}
	if err := s.store().ClearTagOverride(id); err != nil {
		return catalog.Resolved{}, err
	}
	if err := s.cat.Refresh(); err != nil {
		return catalog.Resolved{}, err
	}
	r, _, err := s.cat.ResolveID(id)
	return r, err
}

// ToggleHidden flips an entry's visibility and returns the new state.
func (s *Service) ToggleHidden(id string) (bool, error) {
	e, ok := s.cat.Find(id)
	if !ok {
		return false, ErrNotFound
	}

	if e.IsCustom {
		list, err := s.store().CustomEntries()
		if err != nil {
			return false, err
		}
		for i := range list {
			if list[i].ID == id {
				list[i].Hidden = !list[i].Hidden
				if err := s.store().SaveCustomEntries(list); err != nil {
					return false, err
				}
				return list[i].Hidden, s.cat.Refresh()
			}
		}
		return false, ErrNotFound
	}

	o, err := s.store().Override(id)
	if err != nil {
		return false, err
	}
	if o == nil {
		o = &catalog.Override{}
	}
	o.Hidden = !o.Hidden
	if err := s.store().SaveOverride(id, *o); err != nil {
		return false, err
	}
	return o.Hidden, s.cat.Refresh()
}

// Delete removes an entry. Both confirmations are required: the confirm
// flag and the typed phrase. Shipped entries are soft-deleted through an
// override; custom entries are removed outright along with any records.
func (s *Service) Delete(id string, confirm bool, phrase string) error {
	if !confirm || phrase != DeletePhrase {
		return ErrNotConfirmed
	}
	e, ok := s.cat.Find(id)
	if !ok {
		return ErrNotFound
	}

	if e.IsCustom {
		list, err := s.store().CustomEntries()
		if err != nil {
			return err
		}
		kept := list[:0]
		for _, c := range list {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if err := s.store().SaveCustomEntries(kept); err != nil {
			return err
		}
		if err := s.store().ClearOverride(id); err != nil {
			return err
		}
		if err := s.store().ClearTagOverride(id); err != nil {
			return err
		}
		return s.cat.Refresh()
	}

	o, err := s.store().Override(id)
	if err != nil {
		return err
	}
	if o == nil {
		o = &catalog.Override{}
	}
	o.Deleted = true
	o.Hidden = true
	if err := s.store().SaveOverride(id, *o); err != nil {
		return err
	}
	return s.cat.Refresh()
}

// AddTag appends a tag to an entry's effective tags and stores the full
// list as a tag override.
func (s *Service) AddTag(id, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("tag is required")
	}
	r, ok, err := s.cat.ResolveID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if err := s.store().SaveTagOverride(id, append(r.Tags, tag)); err != nil {
		return nil, err
	}
	r, _, err = s.cat.ResolveID(id)
	return r.Tags, err
}

// RemoveTag drops a tag from an entry's effective tags. Removing the last
// tag leaves an empty override in place, which keeps suppressing any base
// tags until the entry is reset.
func (s *Service) RemoveTag(id, tag string) ([]string, error) {
	r, ok, err := s.cat.ResolveID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	kept := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	if err := s.store().SaveTagOverride(id, kept); err != nil {
		return nil, err
	}
	r, _, err = s.cat.ResolveID(id)
	return r.Tags, err
}

// RemoveGalleryImage deletes a gallery image by its id. For shipped
// entries only override-layer images can be removed; bundle images are
// immutable.
func (s *Service) RemoveGalleryImage(id, imageID string) error {
	e, ok := s.cat.Find(id)
	if !ok {
		return ErrNotFound
	}

	if e.IsCustom {
		list, err := s.store().CustomEntries()
		if err != nil {
			return err
		}
		for i := range list {
			if list[i].ID != id {
				continue
			}
			kept, removed := dropImage(list[i].Gallery, imageID)
			if !removed {
				return fmt.Errorf("gallery image not found")
			}
			list[i].Gallery = kept
			if err := s.store().SaveCustomEntries(list); err != nil {
				return err
			}
			return s.cat.Refresh()
		}
		return ErrNotFound
	}

	o, err := s.store().Override(id)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("gallery image not found")
	}
	kept, removed := dropImage(o.Gallery, imageID)
	if !removed {
		return fmt.Errorf("gallery image not found")
	}
	o.Gallery = kept
	if o.IsZero() {
		if err := s.store().ClearOverride(id); err != nil {
			return err
		}
	} else if err := s.store().SaveOverride(id, *o); err != nil {
		return err
	}
	return s.cat.Refresh()
}

func dropImage(gallery []catalog.GalleryImage, imageID string) ([]catalog.GalleryImage, bool) {
	kept := make([]catalog.GalleryImage, 0, len(gallery))
	removed := false
	for _, g := range gallery {
		if g.ID == imageID {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	return kept, removed
}

func newGalleryImages(urls []string) []catalog.GalleryImage {
	var out []catalog.GalleryImage
	for _, u := range urls {
		if u == "" {
			continue
		}
		out = append(out, catalog.GalleryImage{ID: uuid.New().String(), URL: u})
	}
	return out
}
