package bundle

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hookewild/curator/internal/catalog"
	"github.com/hookewild/curator/internal/gallery"
	"github.com/hookewild/curator/internal/guide"
	"github.com/hookewild/curator/internal/media"
)

// Bundle is the shipped content file: the base feature entries plus the
// optional media, field guide, and photo gallery sections.
type Bundle struct {
	Features []catalog.Entry `json:"features"`
	Media    *media.Data     `json:"media,omitempty"`
	Guide    *guide.Data     `json:"guide,omitempty"`
	Gallery  []gallery.Image `json:"gallery,omitempty"`
}

// Load reads and validates the content bundle. A missing or malformed
// bundle is a startup error; the features section must exist even when
// empty, since everything else hangs off it.
func Load(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parsing bundle %s: %w", path, err)
	}
	if b.Features == nil {
		return nil, fmt.Errorf("bundle %s has no features section", path)
	}
	for i, e := range b.Features {
		if e.ID == "" {
			return nil, fmt.Errorf("bundle %s: feature %d has no id", path, i)
		}
	}
	return &b, nil
}
