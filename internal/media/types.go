package media

// ItemType distinguishes the two kinds of library items.
type ItemType string

const (
	TypeYouTube ItemType = "youtube"
	TypeBlog    ItemType = "blog"
)

// Item is one media library entry: a YouTube video or a blog post.
// Title, Author, Publisher, and Thumbnail may arrive from the bundle or be
// filled in later by oEmbed enrichment.
type Item struct {
	Type      ItemType `json:"type"`
	URL       string   `json:"url"`
	Title     string   `json:"title,omitempty"`
	Author    string   `json:"author,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Date      string   `json:"date,omitempty"`
	YouTubeID string   `json:"youtubeId,omitempty"`
	Order     int      `json:"order"`
}

// Data is the media section of the content bundle.
type Data struct {
	Featured *Item  `json:"featured,omitempty"`
	Items    []Item `json:"items"`
}

// VideoMeta is cached oEmbed metadata for a YouTube video, keyed by id.
type VideoMeta struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// BlogMeta is cached oEmbed metadata for a blog post, keyed by URL.
type BlogMeta struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}
