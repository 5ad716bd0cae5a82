package media

import (
	"encoding/json"

	"github.com/hookewild/curator/internal/db"
)

const (
	nsVideoMeta = "media_meta"
	nsBlogMeta  = "blog_meta"
)

// Store caches oEmbed metadata so enrichment survives restarts and each
// URL is only fetched once. Corrupt cached values read as absent.
type Store struct {
	db *db.DB
}

// NewStore creates a media metadata store over the shared database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// VideoMeta returns cached metadata for a YouTube video id.
func (s *Store) VideoMeta(id string) (*VideoMeta, error) {
	raw, found, err := s.db.GetValue(nsVideoMeta, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var m VideoMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil
	}
	return &m, nil
}

// SaveVideoMeta caches metadata for a YouTube video id.
func (s *Store) SaveVideoMeta(id string, m VideoMeta) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.SetValue(nsVideoMeta, id, raw)
}

// BlogMeta returns cached metadata for a blog post URL.
func (s *Store) BlogMeta(url string) (*BlogMeta, error) {
	raw, found, err := s.db.GetValue(nsBlogMeta, url)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var m BlogMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil
	}
	return &m, nil
}

// SaveBlogMeta caches metadata for a blog post URL.
func (s *Store) SaveBlogMeta(url string, m BlogMeta) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.SetValue(nsBlogMeta, url, raw)
}
