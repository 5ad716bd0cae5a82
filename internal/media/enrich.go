package media

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// oEmbed is the subset of the oEmbed response both providers share.
type oEmbed struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Enricher fetches oEmbed metadata for library items and caches it.
// Enrichment is best effort: a provider that is down or does not expose
// oEmbed just leaves the item as the bundle shipped it.
type Enricher struct {
	store  *Store
	client *http.Client

	// Endpoint templates, swappable in tests.
	youtubeEndpoint string
}

// NewEnricher creates an enricher with a short-timeout HTTP client.
func NewEnricher(store *Store) *Enricher {
	return &Enricher{
		store:           store,
		client:          &http.Client{Timeout: 10 * time.Second},
		youtubeEndpoint: "https://www.youtube.com/oembed",
	}
}

// EnrichItem fetches and caches metadata for one item. It reports whether
// anything new was cached.
func (e *Enricher) EnrichItem(item Item) (bool, error) {
	switch item.Type {
	case TypeYouTube:
		if item.YouTubeID == "" {
			return false, nil
		}
		cached, err := e.store.VideoMeta(item.YouTubeID)
		if err != nil {
			return false, err
		}
		if cached != nil {
			return false, nil
		}
		meta, err := e.fetchOEmbed(e.youtubeEndpoint + "?format=json&url=" + url.QueryEscape(item.URL))
		if err != nil {
			return false, nil
		}
		return true, e.store.SaveVideoMeta(item.YouTubeID, VideoMeta{
			Title:     meta.Title,
			Author:    meta.AuthorName,
			Thumbnail: meta.ThumbnailURL,
		})
	case TypeBlog:
		cached, err := e.store.BlogMeta(item.URL)
		if err != nil {
			return false, err
		}
		if cached != nil {
			return false, nil
		}
		endpoint, err := wordpressEndpoint(item.URL)
		if err != nil {
			return false, nil
		}
		meta, err := e.fetchOEmbed(endpoint)
		if err != nil {
			return false, nil
		}
		return true, e.store.SaveBlogMeta(item.URL, BlogMeta{
			Title:     meta.Title,
			Author:    meta.AuthorName,
			Publisher: meta.ProviderName,
			Thumbnail: meta.ThumbnailURL,
		})
	}
	return false, nil
}

// EnrichAll walks every item (featured included), calling progress after
// each one. It returns how many items gained fresh metadata.
func (e *Enricher) EnrichAll(lib *Library, progress func(done, total int)) (int, error) {
	items := make([]Item, 0, len(lib.items)+1)
	items = append(items, lib.items...)
	if lib.featured != nil {
		items = append(items, *lib.featured)
	}

	fetched := 0
	for i, item := range items {
		added, err := e.EnrichItem(item)
		if err != nil {
			return fetched, err
		}
		if added {
			fetched++
		}
		if progress != nil {
			progress(i+1, len(items))
		}
	}
	return fetched, nil
}

// wordpressEndpoint builds the WordPress oEmbed discovery URL for a post.
func wordpressEndpoint(post string) (string, error) {
	u, err := url.Parse(post)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("not an absolute url: %s", post)
	}
	return fmt.Sprintf("%s://%s/wp-json/oembed/1.0/embed?url=%s",
		u.Scheme, u.Host, url.QueryEscape(post)), nil
}

func (e *Enricher) fetchOEmbed(endpoint string) (*oEmbed, error) {
	resp, err := e.client.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed status %d", resp.StatusCode)
	}
	var meta oEmbed
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
