package media

import (
	"net/url"
	"regexp"
	"strings"
)

var embedPath = regexp.MustCompile(`/embed/([a-zA-Z0-9_-]{6,})`)

// YouTubeID extracts the video id from the URL shapes YouTube hands out:
// youtu.be short links, watch?v= links, and /embed/ links. Returns an
// empty string for anything else.
func YouTubeID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	if host == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}
	if !strings.HasSuffix(host, "youtube.com") {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if m := embedPath.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	return ""
}

// ThumbURL returns YouTube's stock thumbnail for a video id.
func ThumbURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
