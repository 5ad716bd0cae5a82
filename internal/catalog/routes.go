package catalog

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// RegisterRoutes mounts the public catalog endpoints. onOpen is invoked with
// the entry id whenever a detail view is served, so callers can record the
// visit and keep the tour in sync.
func RegisterRoutes(r chi.Router, cat *Catalog, onOpen func(id string)) {
	r.Get("/api/entries", handleList(cat))
	r.Get("/api/entries/random", handleRandom(cat))
	r.Get("/api/entries/{id}", handleGet(cat, onOpen))
	r.Get("/api/tags", handleTags(cat))
}

// queryTags collects tag filters from repeated and comma-separated params.
func queryTags(r *http.Request) []string {
	var tags []string
	for _, chunk := range r.URL.Query()["tags"] {
		for _, t := range strings.Split(chunk, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func handleList(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := cat.Filter(r.URL.Query().Get("query"), queryTags(r))
		if err != nil {
			http.Error(w, `{"error":"failed to list entries"}`, http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []Resolved{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"entries": list,
			"count":   len(list),
		})
	}
}

// EntryDetail is the full detail-view payload for one entry.
type EntryDetail struct {
	Resolved
	StoryHTML  string            `json:"storyHtml,omitempty"`
	Generated  bool              `json:"generated"`
	Seasonal   map[string]string `json:"seasonal"`
	Highlights []Match           `json:"highlights,omitempty"`
}

func handleGet(cat *Catalog, onOpen func(id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		resolved, ok, err := cat.ResolveID(id)
		if err != nil {
			http.Error(w, `{"error":"failed to resolve entry"}`, http.StatusInternalServerError)
			return
		}
		if !ok || resolved.Deleted {
			http.Error(w, `{"error":"entry not found"}`, http.StatusNotFound)
			return
		}

		detail := EntryDetail{Resolved: resolved}
		story := resolved.Story
		if story == "" {
			story = GenerateNarrative(resolved)
			detail.Generated = true
		}
		detail.StoryHTML = renderMarkdown(story)
		detail.Seasonal = SeasonalNotes(resolved)
		if q := r.URL.Query().Get("query"); q != "" {
			detail.Highlights = Highlight(resolved.Text, q)
		}

		if onOpen != nil {
			onOpen(resolved.ID)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detail)
	}
}

func handleRandom(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolved, ok, err := cat.Random(r.URL.Query().Get("query"), queryTags(r))
		if err != nil {
			http.Error(w, `{"error":"failed to pick entry"}`, http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, `{"error":"no entries match the current filters"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resolved)
	}
}

func handleTags(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := cat.AllTags()
		if err != nil {
			http.Error(w, `{"error":"failed to collect tags"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"tags": tags})
	}
}

func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		log.Printf("markdown render failed: %v", err)
		return ""
	}
	return buf.String()
}
