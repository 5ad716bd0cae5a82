package gallery

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scan walks a photo directory and builds a manifest. The first path
// segment under root becomes the category and the filename becomes the
// label. Only files matching one of the glob patterns are included.
func Scan(root string, patterns []string) ([]Image, error) {
	var images []Image

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(patterns, rel) {
			return nil
		}
		images = append(images, Image{
			Src:      rel,
			Label:    labelFromFilename(path.Base(rel)),
			Category: categoryFromPath(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(images, func(i, j int) bool { return images[i].Src < images[j].Src })
	return images, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// categoryFromPath takes the first directory segment; files sitting
// directly under root have no category.
func categoryFromPath(rel string) string {
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return ""
}

// labelFromFilename turns "bee-orchid_close-up.jpg" into "bee orchid close up".
func labelFromFilename(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
