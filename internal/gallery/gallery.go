package gallery

import (
	"sort"
	"strings"
)

// Image is one photo in the site gallery.
type Image struct {
	Src      string `json:"src"`
	Label    string `json:"label,omitempty"`
	Category string `json:"category,omitempty"`
}

// Gallery answers filtered views over the photo manifest.
type Gallery struct {
	images []Image
}

// New builds a gallery over a photo manifest.
func New(images []Image) *Gallery {
	return &Gallery{images: images}
}

// Images returns all photos in manifest order.
func (g *Gallery) Images() []Image {
	return g.images
}

// Filter returns the photos matching a free-text query over label and
// source path, restricted to the given categories when any are named.
func (g *Gallery) Filter(query string, categories []string) []Image {
	q := strings.ToLower(strings.TrimSpace(query))
	want := map[string]bool{}
	for _, c := range categories {
		if c != "" {
			want[strings.ToLower(c)] = true
		}
	}

	var out []Image
	for _, img := range g.images {
		if len(want) > 0 && !want[strings.ToLower(img.Category)] {
			continue
		}
		if q != "" {
			hay := strings.ToLower(img.Label + " " + img.Src)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, img)
	}
	return out
}

// Categories returns every category used across the gallery, sorted.
func (g *Gallery) Categories() []string {
	seen := map[string]bool{}
	for _, img := range g.images {
		if img.Category != "" {
			seen[img.Category] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
